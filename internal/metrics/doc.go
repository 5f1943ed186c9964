// Package metrics provides build and preview metrics for blogsite.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. The serve command swaps in a PrometheusRecorder and exposes its
// registry through Handler.
package metrics

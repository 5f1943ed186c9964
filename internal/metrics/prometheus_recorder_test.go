package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("generate_config", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("generate_config", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddBrokenLinks(3)
	pr.AddBrokenLinks(0)
	pr.SetMissingTranslations("en", 4)
	pr.IncRebuild("fs")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 3, values["blogsite_broken_links_total"], 0.001)
	assert.InDelta(t, 4, values["blogsite_missing_translations"], 0.001)
	assert.InDelta(t, 1, values["blogsite_build_outcomes_total"], 0.001)
	assert.InDelta(t, 1, values["blogsite_preview_rebuilds_total"], 0.001)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncRebuild("fs")
		pr.ObserveBuildDuration(time.Second)
	})
}

func TestHandlerServesRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRebuild("config")

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `blogsite_preview_rebuilds_total{trigger="config"} 1`)
}

var _ Recorder = NoopRecorder{}
var _ Exporter = (*PrometheusRecorder)(nil)

package hugo

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
	"git.home.luguber.info/chenyuan/blogsite/internal/metrics"
)

// BuildObserver receives callbacks around stage execution and the build
// lifecycle. Observers must not fail the build.
type BuildObserver interface {
	OnBuildStart(report *BuildReport)
	OnStageComplete(report *BuildReport, stage StageName, duration time.Duration, result StageResult, err error)
	OnBuildComplete(report *BuildReport)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

func (NoopObserver) OnBuildStart(*BuildReport)                                                  {}
func (NoopObserver) OnStageComplete(*BuildReport, StageName, time.Duration, StageResult, error) {}
func (NoopObserver) OnBuildComplete(*BuildReport)                                               {}

// recorderObserver adapts metrics.Recorder into a BuildObserver.
type recorderObserver struct{ rec metrics.Recorder }

func (recorderObserver) OnBuildStart(*BuildReport) {}

func (r recorderObserver) OnStageComplete(_ *BuildReport, stage StageName, d time.Duration, res StageResult, _ error) {
	r.rec.ObserveStageDuration(string(stage), d)
	r.rec.IncStageResult(string(stage), res.label())
}

func (r recorderObserver) OnBuildComplete(report *BuildReport) {
	r.rec.ObserveBuildDuration(report.Duration())
	r.rec.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))
	r.rec.AddBrokenLinks(len(report.BrokenLinks))
}

// historyObserver appends build entries to the ledger. Write failures are
// logged; the build result does not depend on history.
type historyObserver struct {
	ledger eventstore.Ledger
	apply  func(eventstore.Entry)
}

// NewHistoryObserver records builds into ledger. apply, when non-nil, receives
// every stored entry (e.g. a live projection).
func NewHistoryObserver(ledger eventstore.Ledger, apply func(eventstore.Entry)) BuildObserver {
	return historyObserver{ledger: ledger, apply: apply}
}

func (h historyObserver) record(e eventstore.Entry, err error) {
	if err == nil {
		e, err = h.ledger.Append(context.Background(), e)
	}
	if err != nil {
		slog.Warn("Failed to record build history", logfields.BuildID(e.BuildID), logfields.Error(err))
		return
	}
	if h.apply != nil {
		h.apply(e)
	}
}

func (h historyObserver) OnBuildStart(r *BuildReport) {
	e, err := eventstore.BuildStarted(r.BuildID, eventstore.BuildStartedMeta{
		Snapshot: r.Snapshot,
		Commit:   r.Commit,
		Trigger:  r.Trigger,
		Locales:  r.Locales,
	})
	h.record(e, err)
}

func (h historyObserver) OnStageComplete(r *BuildReport, stage StageName, d time.Duration, res StageResult, stageErr error) {
	e, err := eventstore.StageCompleted(r.BuildID, string(stage), string(res), d, stageErr)
	h.record(e, err)
}

func (h historyObserver) OnBuildComplete(r *BuildReport) {
	meta := eventstore.BuildFinishedMeta{
		Outcome:     string(r.Outcome),
		DurationMS:  r.Duration().Milliseconds(),
		FailedStage: string(r.FailedStage()),
		BrokenLinks: len(r.BrokenLinks),
		Snapshot:    r.Snapshot,
		Commit:      r.Commit,
	}
	if len(r.Errors) > 0 {
		meta.Error = r.Errors[0].Error()
	}
	e, err := eventstore.BuildFinished(r.BuildID, meta)
	h.record(e, err)
}

// observers fans callbacks out in registration order.
type observers []BuildObserver

func (o observers) OnBuildStart(r *BuildReport) {
	for _, ob := range o {
		ob.OnBuildStart(r)
	}
}

func (o observers) OnStageComplete(r *BuildReport, stage StageName, d time.Duration, res StageResult, err error) {
	for _, ob := range o {
		ob.OnStageComplete(r, stage, d, res, err)
	}
}

func (o observers) OnBuildComplete(r *BuildReport) {
	for _, ob := range o {
		ob.OnBuildComplete(r)
	}
}

package hugo

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// errStageSkipped lets a stage report that it had nothing to do.
var errStageSkipped = stderrors.New("stage skipped")

// BuildState carries mutable state across stages.
type BuildState struct {
	Generator *Generator
	Report    *BuildReport
	Catalog   *i18n.Catalog // set by the i18n stage
	start     time.Time
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{Generator: g, Report: report, start: time.Now()}
}

// Root is the directory stages write into.
func (bs *BuildState) Root() string { return bs.Generator.buildRoot() }

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef, obs BuildObserver) error {
	for _, st := range stages {
		log := slog.With(logfields.BuildID(bs.Report.BuildID), logfields.Stage(string(st.Name)))
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.AddIssue(IssueCanceled, st.Name, SeverityError, se.Error(), false, se)
			bs.Report.countStage(st.Name, StageResultCanceled)
			obs.OnStageComplete(bs.Report, st.Name, 0, StageResultCanceled, se)
			log.Warn("Build canceled")
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur

		if stderrors.Is(err, errStageSkipped) {
			bs.Report.countStage(st.Name, StageResultSkipped)
			obs.OnStageComplete(bs.Report, st.Name, dur, StageResultSkipped, nil)
			log.Debug("Stage skipped")
			continue
		}

		out := classifyStageResult(st.Name, err)
		if out.Error != nil {
			bs.Report.StageErrorKinds[st.Name] = out.Error.Kind
			bs.Report.AddIssue(out.IssueCode, out.Stage, out.Severity, out.Error.Error(), out.Transient, out.Error)
		}
		bs.Report.countStage(st.Name, out.Result)

		var stageErr error
		if out.Error != nil {
			stageErr = out.Error
		}
		obs.OnStageComplete(bs.Report, st.Name, dur, out.Result, stageErr)

		ms := logfields.DurationMS(float64(dur.Microseconds()) / 1000)
		switch out.Result {
		case StageResultSuccess:
			log.Debug("Stage completed", ms)
		case StageResultWarning:
			log.Warn("Stage completed with warning", ms, logfields.Error(out.Error.Err))
		default:
			log.Error("Stage failed", ms, logfields.Error(out.Error.Err))
		}

		if out.Abort {
			if out.Error != nil {
				return out.Error
			}
			return fmt.Errorf("stage %s aborted", st.Name)
		}
	}
	return nil
}

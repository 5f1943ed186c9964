package hugo

import (
	"context"
	stderrors "errors"
)

func stageRunHugo(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	if g.runMode == RunHugoNever {
		return errStageSkipped
	}
	r := g.renderer
	if r == nil {
		r = &BinaryRenderer{Binary: g.config.Hugo.Binary}
	}
	if err := r.Execute(ctx, bs.Root()); err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageRunHugo, ctx.Err())
		}
		if stderrors.Is(err, ErrHugoNotFound) && g.runMode == RunHugoAuto {
			// the generated project is still usable with a hugo installed later
			return newWarnStageError(StageRunHugo, err)
		}
		return newFatalStageError(StageRunHugo, err)
	}
	bs.Report.StaticRendered = true
	return nil
}

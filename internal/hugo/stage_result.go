package hugo

import "git.home.luguber.info/chenyuan/blogsite/internal/metrics"

// StageResult is how one stage ended. The values are also the metric labels.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
	StageResultSkipped  StageResult = "skipped"
)

func (r StageResult) label() metrics.ResultLabel { return metrics.ResultLabel(r) }

// add counts one more stage run ending in res.
func (c StageCount) add(res StageResult) StageCount {
	switch res {
	case StageResultSuccess:
		c.Success++
	case StageResultWarning:
		c.Warning++
	case StageResultFatal:
		c.Fatal++
	case StageResultCanceled:
		c.Canceled++
	case StageResultSkipped:
		c.Skipped++
	}
	return c
}

func (r *BuildReport) countStage(stage StageName, res StageResult) {
	r.StageCounts[stage] = r.StageCounts[stage].add(res)
}

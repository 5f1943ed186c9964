package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// BuildStartedMeta describes the inputs of a build.
type BuildStartedMeta struct {
	Snapshot string   `json:"snapshot"`
	Commit   string   `json:"commit,omitempty"`
	Trigger  string   `json:"trigger"`
	Locales  []string `json:"locales"`
}

// StageCompletedMeta is the outcome of one stage.
type StageCompletedMeta struct {
	Stage      string `json:"stage"`
	Result     string `json:"result"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// BuildFinishedMeta is the final outcome of a build.
type BuildFinishedMeta struct {
	Outcome     string `json:"outcome"`
	DurationMS  int64  `json:"duration_ms"`
	FailedStage string `json:"failed_stage,omitempty"`
	Error       string `json:"error,omitempty"`
	BrokenLinks int    `json:"broken_links"`
	Snapshot    string `json:"snapshot"`
	Commit      string `json:"commit,omitempty"`
}

// BuildStarted is the first entry of every build.
func BuildStarted(buildID string, meta BuildStartedMeta) (Entry, error) {
	return newEntry(buildID, KindBuildStarted, meta)
}

// StageCompleted is written after each stage, whatever its result.
func StageCompleted(buildID, stage, result string, d time.Duration, stageErr error) (Entry, error) {
	meta := StageCompletedMeta{Stage: stage, Result: result, DurationMS: d.Milliseconds()}
	if stageErr != nil {
		meta.Error = stageErr.Error()
	}
	return newEntry(buildID, KindStageCompleted, meta)
}

// BuildFinished closes a build.
func BuildFinished(buildID string, meta BuildFinishedMeta) (Entry, error) {
	return newEntry(buildID, KindBuildFinished, meta)
}

func newEntry(buildID string, kind Kind, meta any) (Entry, error) {
	body, err := json.Marshal(meta)
	if err != nil {
		return Entry{}, errors.EventStoreError("failed to encode "+string(kind)+" entry").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	return Entry{BuildID: buildID, Kind: kind, Body: body}, nil
}

package eventstore

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names a build history entry.
type Kind string

// Entry kinds written by the build observer.
const (
	KindBuildStarted   Kind = "build_started"
	KindStageCompleted Kind = "stage_completed"
	KindBuildFinished  Kind = "build_finished"
)

// Entry is one row of the build ledger. Seq is assigned on append and
// orders entries across builds.
type Entry struct {
	Seq     int64
	BuildID string
	Kind    Kind
	At      time.Time
	Body    json.RawMessage
}

// Decode unmarshals the entry body into v.
func (e Entry) Decode(v any) error {
	if len(e.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Body, v); err != nil {
		return storeErr(ErrUnmarshalPayloadFailed, err)
	}
	return nil
}

// Ledger is the append-only build history.
type Ledger interface {
	// Append stores e and returns it with Seq and At filled in.
	Append(ctx context.Context, e Entry) (Entry, error)
	// Build returns the entries of one build in append order.
	Build(ctx context.Context, buildID string) ([]Entry, error)
	// Replay calls fn for every entry in append order and stops at the first error.
	Replay(ctx context.Context, fn func(Entry) error) error
	Close() error
}

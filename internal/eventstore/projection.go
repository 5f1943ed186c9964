// Package eventstore keeps the build history: an append-only SQLite event log
// and an in-memory projection of per-build summaries.
package eventstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Build statuses reported by BuildSummary.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StageSummary is one stage of a build.
type StageSummary struct {
	Stage    string        `json:"stage"`
	Result   string        `json:"result"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// BuildSummary is a read model of one build.
type BuildSummary struct {
	BuildID      string         `json:"build_id"`
	Status       string         `json:"status"`
	Trigger      string         `json:"trigger,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	Duration     time.Duration  `json:"duration,omitempty"`
	Snapshot     string         `json:"snapshot,omitempty"`
	Commit       string         `json:"commit,omitempty"`
	Stages       []StageSummary `json:"stages,omitempty"`
	ErrorStage   string         `json:"error_stage,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	BrokenLinks  int            `json:"broken_links"`
}

// Succeeded reports whether the build produced a site.
func (b *BuildSummary) Succeeded() bool {
	return b.Status == StatusSuccess || b.Status == StatusWarning
}

// BuildHistoryProjection is the in-memory view of the ledger that `history`
// and --skip-unchanged read from.
type BuildHistoryProjection struct {
	mu      sync.RWMutex
	ledger  Ledger
	builds  map[string]*BuildSummary
	history []*BuildSummary // finished builds, newest first
	maxSize int
}

// NewBuildHistoryProjection keeps at most maxHistorySize finished builds of ledger.
func NewBuildHistoryProjection(ledger Ledger, maxHistorySize int) *BuildHistoryProjection {
	if maxHistorySize <= 0 {
		maxHistorySize = 100
	}
	return &BuildHistoryProjection{
		ledger:  ledger,
		builds:  make(map[string]*BuildSummary),
		history: make([]*BuildSummary, 0, maxHistorySize),
		maxSize: maxHistorySize,
	}
}

// Rebuild replays the whole ledger into a fresh projection.
func (p *BuildHistoryProjection) Rebuild(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.builds = make(map[string]*BuildSummary)
	p.history = make([]*BuildSummary, 0, p.maxSize)
	err := p.ledger.Replay(ctx, func(e Entry) error {
		p.applyLocked(e)
		return nil
	})
	if err != nil {
		return err
	}
	sort.SliceStable(p.history, func(i, j int) bool {
		return p.history[i].StartedAt.After(p.history[j].StartedAt)
	})
	if len(p.history) > p.maxSize {
		p.history = p.history[:p.maxSize]
	}
	p.pruneBuildsLocked()
	return nil
}

// Apply folds one freshly appended entry into the projection.
func (p *BuildHistoryProjection) Apply(e Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyLocked(e)
}

func (p *BuildHistoryProjection) applyLocked(e Entry) {
	buildID := e.BuildID
	if buildID == "" {
		return
	}

	summary, exists := p.builds[buildID]
	if !exists {
		summary = &BuildSummary{BuildID: buildID, Status: StatusRunning, StartedAt: e.At}
		p.builds[buildID] = summary
	}

	switch e.Kind {
	case KindBuildStarted:
		summary.StartedAt = e.At
		summary.Status = StatusRunning
		var meta BuildStartedMeta
		if err := e.Decode(&meta); err == nil {
			summary.Snapshot = meta.Snapshot
			summary.Commit = meta.Commit
			summary.Trigger = meta.Trigger
		}

	case KindStageCompleted:
		var meta StageCompletedMeta
		if err := e.Decode(&meta); err == nil {
			summary.Stages = append(summary.Stages, StageSummary{
				Stage:    meta.Stage,
				Result:   meta.Result,
				Duration: time.Duration(meta.DurationMS) * time.Millisecond,
				Error:    meta.Error,
			})
		}

	case KindBuildFinished:
		done := e.At
		summary.CompletedAt = &done
		summary.Duration = done.Sub(summary.StartedAt)
		summary.Status = StatusFailed
		var meta BuildFinishedMeta
		if err := e.Decode(&meta); err == nil {
			if meta.Outcome != "" {
				summary.Status = meta.Outcome
			}
			if meta.DurationMS > 0 {
				summary.Duration = time.Duration(meta.DurationMS) * time.Millisecond
			}
			summary.ErrorStage = meta.FailedStage
			summary.ErrorMessage = meta.Error
			summary.BrokenLinks = meta.BrokenLinks
			if meta.Snapshot != "" {
				summary.Snapshot = meta.Snapshot
			}
			if meta.Commit != "" {
				summary.Commit = meta.Commit
			}
		}
		p.addToHistoryLocked(summary)
	}
}

func (p *BuildHistoryProjection) addToHistoryLocked(summary *BuildSummary) {
	for _, h := range p.history {
		if h.BuildID == summary.BuildID {
			return
		}
	}
	p.history = append([]*BuildSummary{summary}, p.history...)
	if len(p.history) > p.maxSize {
		p.history = p.history[:p.maxSize]
	}
	p.pruneBuildsLocked()
}

// pruneBuildsLocked drops finished builds that fell out of the bounded history.
// Caller must hold p.mu (write lock).
func (p *BuildHistoryProjection) pruneBuildsLocked() {
	keep := make(map[string]struct{}, len(p.history))
	for _, h := range p.history {
		keep[h.BuildID] = struct{}{}
	}
	for id, summary := range p.builds {
		if summary.Status == StatusRunning {
			continue
		}
		if _, ok := keep[id]; !ok {
			delete(p.builds, id)
		}
	}
}

// GetHistory returns up to limit finished builds, newest first. A limit of zero
// or less returns all of them.
func (p *BuildHistoryProjection) GetHistory(limit int) []BuildSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := len(p.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]BuildSummary, n)
	for i := 0; i < n; i++ {
		out[i] = copySummary(p.history[i])
	}
	return out
}

// GetBuild returns the summary for a specific build.
func (p *BuildHistoryProjection) GetBuild(buildID string) (BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	summary, ok := p.builds[buildID]
	if !ok {
		return BuildSummary{}, false
	}
	return copySummary(summary), true
}

// LastSuccessful returns the newest build that produced a site.
func (p *BuildHistoryProjection) LastSuccessful() (BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, h := range p.history {
		if h.Succeeded() {
			return copySummary(h), true
		}
	}
	return BuildSummary{}, false
}

func copySummary(s *BuildSummary) BuildSummary {
	cp := *s
	cp.Stages = append([]StageSummary(nil), s.Stages...)
	return cp
}

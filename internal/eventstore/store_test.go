package eventstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

const testBuildID = "0b6f3c4e-6a43-4c0e-9d55-2b1c2f3f9a10"

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLedgerAppendAssignsSequence(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return at }

	first, err := store.Append(ctx, Entry{BuildID: testBuildID, Kind: KindBuildStarted, Body: []byte(`{"snapshot":"s1"}`)})
	require.NoError(t, err)
	second, err := store.Append(ctx, Entry{BuildID: "other", Kind: KindBuildStarted})
	require.NoError(t, err)

	assert.Less(t, first.Seq, second.Seq)
	assert.True(t, first.At.Equal(at))

	entries, err := store.Build(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KindBuildStarted, entries[0].Kind)
	var meta BuildStartedMeta
	require.NoError(t, entries[0].Decode(&meta))
	assert.Equal(t, "s1", meta.Snapshot)
}

func TestLedgerReplayInAppendOrder(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, Entry{BuildID: id, Kind: KindBuildStarted})
		require.NoError(t, err)
	}

	var ids []string
	require.NoError(t, store.Replay(ctx, func(e Entry) error {
		ids = append(ids, e.BuildID)
		assert.JSONEq(t, `{}`, string(e.Body))
		return nil
	}))
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	stop := errors.New("stop")
	calls := 0
	err := store.Replay(ctx, func(Entry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestLedgerPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.Append(t.Context(), Entry{BuildID: testBuildID, Kind: KindBuildStarted})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	entries, err := reopened.Build(t.Context(), testBuildID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCorruptEntryBody(t *testing.T) {
	var meta BuildFinishedMeta
	err := Entry{Body: []byte("{")}.Decode(&meta)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryEventStore))
}

func TestLedgerErrorsAreClassified(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Close())

	_, err := store.Append(t.Context(), Entry{BuildID: testBuildID, Kind: KindBuildStarted})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryEventStore))
	var ce *ferrors.ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrEventAppendFailed.Message(), ce.Message())
}

func recordBuild(t *testing.T, ledger Ledger, id, snapshot, outcome string) {
	t.Helper()
	entries := make([]Entry, 0, 3)
	started, err := BuildStarted(id, BuildStartedMeta{Snapshot: snapshot, Commit: "abc123", Trigger: "cli", Locales: []string{"zh-Hans", "en"}})
	require.NoError(t, err)
	stage, err := StageCompleted(id, "generate_config", "success", 12*time.Millisecond, nil)
	require.NoError(t, err)
	finished, err := BuildFinished(id, BuildFinishedMeta{Outcome: outcome, DurationMS: 40, Snapshot: snapshot, Commit: "abc123"})
	require.NoError(t, err)
	entries = append(entries, started, stage, finished)

	for _, e := range entries {
		_, err := ledger.Append(t.Context(), e)
		require.NoError(t, err)
	}
}

func TestProjectionRebuild(t *testing.T) {
	store := newStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, b := range []struct{ id, outcome string }{{"b1", StatusSuccess}, {"b2", StatusFailed}} {
		ts := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return ts }
		recordBuild(t, store, b.id, "snap-"+b.id, b.outcome)
	}

	p := NewBuildHistoryProjection(store, 10)
	require.NoError(t, p.Rebuild(t.Context()))

	history := p.GetHistory(0)
	require.Len(t, history, 2)
	assert.Equal(t, "b2", history[0].BuildID)
	assert.Equal(t, StatusFailed, history[0].Status)
	assert.Equal(t, "b1", history[1].BuildID)
	require.Len(t, history[1].Stages, 1)
	assert.Equal(t, "generate_config", history[1].Stages[0].Stage)
	assert.Equal(t, 40*time.Millisecond, history[1].Duration)
	assert.Equal(t, "cli", history[1].Trigger)

	last, ok := p.LastSuccessful()
	require.True(t, ok)
	assert.Equal(t, "b1", last.BuildID)
	assert.Equal(t, "snap-b1", last.Snapshot)
	assert.Equal(t, "abc123", last.Commit)

	assert.Len(t, p.GetHistory(1), 1)
}

func TestProjectionApplyLiveAndBounded(t *testing.T) {
	p := NewBuildHistoryProjection(newStore(t), 2)
	for _, id := range []string{"x", "y", "z"} {
		started, err := BuildStarted(id, BuildStartedMeta{Snapshot: id})
		require.NoError(t, err)
		p.Apply(started)
		running, ok := p.GetBuild(id)
		require.True(t, ok)
		assert.Equal(t, StatusRunning, running.Status)

		finished, err := BuildFinished(id, BuildFinishedMeta{Outcome: StatusSuccess})
		require.NoError(t, err)
		p.Apply(finished)
	}

	history := p.GetHistory(0)
	require.Len(t, history, 2)
	assert.Equal(t, "z", history[0].BuildID)
	_, ok := p.GetBuild("x")
	assert.False(t, ok, "pruned builds are forgotten")
}

func TestProjectionNoSuccessfulBuild(t *testing.T) {
	p := NewBuildHistoryProjection(newStore(t), 0)
	_, ok := p.LastSuccessful()
	assert.False(t, ok)
}

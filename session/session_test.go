package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentpilot/core"
)

func runStoreSuite(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty id mints a session", func(t *testing.T) {
		record, err := store.GetOrCreate(ctx, "")
		require.NoError(t, err)
		assert.NotEmpty(t, record.SessionID)
		assert.Nil(t, record.Plan)
		assert.Nil(t, record.LastRun)
	})

	t.Run("unknown id is created as given", func(t *testing.T) {
		record, err := store.GetOrCreate(ctx, "fresh-id")
		require.NoError(t, err)
		assert.Equal(t, "fresh-id", record.SessionID)
	})

	t.Run("round trip preserves state", func(t *testing.T) {
		record, err := store.GetOrCreate(ctx, "roundtrip")
		require.NoError(t, err)

		record.UpsertPlan("objective", []core.PlanStep{
			{Title: "a", Instruction: "do a", SuccessCriteria: "a done"},
			{Title: "b", Instruction: "do b"},
		})
		record.ApplyStepResults([]core.StepResult{
			{Title: "a", Status: core.StepCompleted, Result: "all good"},
		})
		record.SetLastRun(core.RunSummary{
			UserInput:     "hello",
			Response:      "world",
			SelectedAgent: "general_assistant",
			ExecutionMode: core.ModePlan,
			RouteReason:   "LLM Routing: greeting",
		})
		require.NoError(t, store.Save(ctx, record))

		loaded, err := store.Load(ctx, "roundtrip")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.NotNil(t, loaded.Plan)
		assert.Equal(t, "objective", loaded.Plan.Objective)
		require.Len(t, loaded.Plan.Steps, 2)
		assert.Equal(t, core.StepCompleted, loaded.Plan.Steps[0].Status)
		assert.Equal(t, "all good", loaded.Plan.Steps[0].Result)
		require.NotNil(t, loaded.LastRun)
		assert.Equal(t, "hello", loaded.LastRun.UserInput)
		require.Len(t, loaded.RunHistory, 1)
	})

	t.Run("load missing returns nil", func(t *testing.T) {
		loaded, err := store.Load(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("existing id is reused", func(t *testing.T) {
		first, err := store.GetOrCreate(ctx, "reused")
		require.NoError(t, err)
		first.SetLastRun(core.RunSummary{UserInput: "turn one", Response: "ok"})
		require.NoError(t, store.Save(ctx, first))

		second, err := store.GetOrCreate(ctx, "reused")
		require.NoError(t, err)
		require.NotNil(t, second.LastRun)
		assert.Equal(t, "turn one", second.LastRun.UserInput)
	})
}

func TestInMemoryStore(t *testing.T) {
	runStoreSuite(t, NewInMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreSuite(t, store)
}

func TestFileStoreSanitizesIDs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	record, err := store.GetOrCreate(context.Background(), "../escape/attempt")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), record))

	loaded, err := store.Load(context.Background(), "../escape/attempt")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()
	runStoreSuite(t, store)
}

func TestSQLiteStoreMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.GetOrCreate(context.Background(), "sid")
	require.NoError(t, err)
}

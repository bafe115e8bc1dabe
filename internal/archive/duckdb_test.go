package archive

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamgmt/internal/management"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "archive.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	runID, err := store.StartRun(ctx, "work")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := store.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "work", run.PresetName)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.FinishedAt)
	assert.Zero(t, run.SnapshotCount)

	require.NoError(t, store.FinishRun(ctx, runID, nil))
	run, err = store.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Empty(t, run.Error)
	require.NotNil(t, run.FinishedAt)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
}

func TestFinishRunRecordsFailure(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	runID, err := store.StartRun(ctx, "")
	require.NoError(t, err)

	runErr := &management.Error{Kind: management.KindAPI, Op: "accounts.list", Status: 403, Reason: "Insufficient Permission"}
	require.NoError(t, store.FinishRun(ctx, runID, runErr))

	run, err := store.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, run.Status)
	assert.Equal(t, runErr.Error(), run.Error)
	assert.Empty(t, run.PresetName)
}

func TestGetRunNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run missing not found")
}

func TestSnapshotsKeepFetchOrderAndScope(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	runID, err := store.StartRun(ctx, "work")
	require.NoError(t, err)

	accounts := &management.Accounts{Items: []management.Account{{ID: management.String("1")}}}
	goals := &management.Goals{}

	require.NoError(t, store.RecordSnapshot(ctx, runID, 2, CollectionGoals,
		Scope{AccountID: "1", WebPropertyID: "UA-1-1", ProfileID: "P1"}, 0, goals))
	require.NoError(t, store.RecordSnapshot(ctx, runID, 1, CollectionAccounts, Scope{}, 1, accounts))

	snapshots, err := store.Snapshots(ctx, runID)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, 1, snapshots[0].Seq)
	assert.Equal(t, CollectionAccounts, snapshots[0].Collection)
	assert.Equal(t, 1, snapshots[0].ItemCount)
	assert.Equal(t, Scope{}, snapshots[0].Scope)

	var decoded management.Accounts
	require.NoError(t, json.Unmarshal(snapshots[0].Payload, &decoded))
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "1", management.Value(decoded.Items[0].ID))

	assert.Equal(t, CollectionGoals, snapshots[1].Collection)
	assert.Equal(t, Scope{AccountID: "1", WebPropertyID: "UA-1-1", ProfileID: "P1"}, snapshots[1].Scope)

	run, err := store.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.SnapshotCount)
}

func TestRecordSnapshotRejectsUnmarshalablePayload(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	err := store.RecordSnapshot(ctx, "run", 1, "bad", Scope{}, 0, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal bad payload")
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first, err := store.StartRun(ctx, "a")
	require.NoError(t, err)
	second, err := store.StartRun(ctx, "b")
	require.NoError(t, err)

	_, err = store.db.ExecContext(ctx, `UPDATE runs SET started_at = ? WHERE run_id = ?`,
		time.Now().UTC().Add(-time.Hour), first)
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)

	runs, err = store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second, runs[0].ID)
}

func TestCleanupOlderThan(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	old, err := store.StartRun(ctx, "old")
	require.NoError(t, err)
	recent, err := store.StartRun(ctx, "recent")
	require.NoError(t, err)

	require.NoError(t, store.RecordSnapshot(ctx, old, 1, CollectionAccounts, Scope{}, 0, &management.Accounts{}))
	require.NoError(t, store.RecordSnapshot(ctx, recent, 1, CollectionAccounts, Scope{}, 0, &management.Accounts{}))

	_, err = store.db.ExecContext(ctx, `UPDATE runs SET started_at = ? WHERE run_id = ?`,
		time.Now().UTC().Add(-48*time.Hour), old)
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.GetRun(ctx, old)
	assert.Error(t, err)

	snapshots, err := store.Snapshots(ctx, old)
	require.NoError(t, err)
	assert.Empty(t, snapshots)

	run, err := store.GetRun(ctx, recent)
	require.NoError(t, err)
	assert.Equal(t, 1, run.SnapshotCount)
}

func TestClosedStoreFails(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.StartRun(context.Background(), "x")
	assert.Error(t, err)
}

package application_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/adapters/outbound/journal"
	"github.com/talowa/remedy/internal/application"
	"github.com/talowa/remedy/internal/domain"
)

func state(locator string) domain.RestoreState {
	return domain.RestoreState{Locator: locator, Before: []byte("orig"), Existed: true}
}

func TestRollback_EmptyHistoryNoOp(t *testing.T) {
	exec := newFakeExecutor()
	m := application.NewRollbackManager(exec, nil, quietLogger())

	for i := 0; i < 2; i++ {
		summary := m.RollbackAllFixes()
		assert.Equal(t, 0, summary.Attempted)
		assert.Equal(t, 0, summary.RolledBack)
		assert.Equal(t, 0, summary.Remaining)
		assert.False(t, summary.Failed())
	}
	assert.Empty(t, exec.reverted)
}

func TestRollback_LIFOOrder(t *testing.T) {
	exec := newFakeExecutor()
	m := application.NewRollbackManager(exec, nil, quietLogger())

	require.NoError(t, m.Record("Navigation Guards", 0, state("a#f")))
	require.NoError(t, m.Record("Navigation Guards", 1, state("b#f")))
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("c#f")))

	summary := m.RollbackAllFixes()
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 3, summary.RolledBack)
	assert.Equal(t, 0, summary.Remaining)
	assert.Equal(t, []string{"c#f", "b#f", "a#f"}, exec.reverted)
	assert.Equal(t, 0, m.HistoryLen())
}

func TestRollback_IdempotentAfterSuccess(t *testing.T) {
	exec := newFakeExecutor()
	m := application.NewRollbackManager(exec, nil, quietLogger())
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("a#f")))

	first := m.RollbackAllFixes()
	assert.Equal(t, 1, first.RolledBack)

	second := m.RollbackAllFixes()
	assert.Equal(t, 0, second.Attempted)
	assert.Len(t, exec.reverted, 1, "already undone points must not revert again")
}

func TestRollback_FailedChainStopsButOthersContinue(t *testing.T) {
	exec := newFakeExecutor()
	exec.failRevert["b#f"] = errors.New("backup corrupt")
	m := application.NewRollbackManager(exec, nil, quietLogger())

	require.NoError(t, m.Record("Navigation Guards", 0, state("a#f")))
	require.NoError(t, m.Record("Navigation Guards", 1, state("b#f")))
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("c#f")))

	summary := m.RollbackAllFixes()
	assert.True(t, summary.Failed())
	assert.Equal(t, 2, summary.Attempted, "later points of a failed chain are skipped")
	assert.Equal(t, 1, summary.RolledBack)
	assert.Contains(t, summary.Errors["Navigation Guards"], "backup corrupt")

	// The failed chain's points stay for a retry.
	assert.Equal(t, 2, summary.Remaining)
	assert.Equal(t, 2, m.HistoryLen())
	assert.Equal(t, []string{"c#f"}, exec.reverted)

	// Retry after the underlying problem is gone.
	delete(exec.failRevert, "b#f")
	retry := m.RollbackAllFixes()
	assert.Equal(t, 2, retry.RolledBack)
	assert.Equal(t, 0, m.HistoryLen())
	assert.Equal(t, []string{"c#f", "b#f", "a#f"}, exec.reverted)
}

func TestRollback_SingleTest(t *testing.T) {
	exec := newFakeExecutor()
	m := application.NewRollbackManager(exec, nil, quietLogger())

	require.NoError(t, m.Record("Navigation Guards", 0, state("a#f")))
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("b#f")))

	summary := m.RollbackTest("Admin Bootstrap")
	assert.Equal(t, 1, summary.RolledBack)
	assert.Equal(t, 1, summary.Remaining)
	assert.Equal(t, []string{"b#f"}, exec.reverted)
	assert.Equal(t, 1, m.HistoryLen())
}

func TestRollback_Reset(t *testing.T) {
	exec := newFakeExecutor()
	m := application.NewRollbackManager(exec, nil, quietLogger())
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("a#f")))

	m.Reset()
	assert.Equal(t, 0, m.HistoryLen())
	assert.Empty(t, exec.reverted, "reset discards without reverting")
}

func TestRollback_JournalPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.json")
	exec := newFakeExecutor()

	m := application.NewRollbackManager(exec, journal.New(path), quietLogger())
	require.NoError(t, m.Record("Admin Bootstrap", 0, state("a#f")))
	require.NoError(t, m.Record("Navigation Guards", 0, state("b#f")))

	// A fresh manager, as after a crash, sees the persisted points.
	m2 := application.NewRollbackManager(exec, journal.New(path), quietLogger())
	assert.Equal(t, 2, m2.HistoryLen())

	summary := m2.RollbackAllFixes()
	assert.Equal(t, 2, summary.RolledBack)

	// The journal is drained along with the in-memory history.
	m3 := application.NewRollbackManager(exec, journal.New(path), quietLogger())
	assert.Equal(t, 0, m3.HistoryLen())
}

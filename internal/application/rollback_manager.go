package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/talowa/remedy/internal/domain"
)

// Reverter undoes a previously captured restore state. The fix
// executor satisfies this.
type Reverter interface {
	Revert(state domain.RestoreState) error
}

// RollbackManager owns the process-wide restore-point history. The
// application engine is its only writer and rollback is its only
// consumer; a single mutex enforces that a writer never interleaves
// with an in-progress rollback. History starts empty and is cleared
// only by a fully successful rollback or an explicit Reset.
type RollbackManager struct {
	mu       sync.Mutex
	points   []domain.RestorePoint
	reverter Reverter
	journal  domain.RestoreJournal
	logger   *log.Logger
}

// NewRollbackManager creates a manager. When a journal is supplied,
// restore points recorded by a previous process are loaded so an
// interrupted session can still be rolled back.
func NewRollbackManager(reverter Reverter, journal domain.RestoreJournal, logger *log.Logger) *RollbackManager {
	if logger == nil {
		logger = log.Default()
	}
	m := &RollbackManager{reverter: reverter, journal: journal, logger: logger}
	if journal != nil {
		points, err := journal.Load()
		if err != nil {
			logger.Warn("could not load restore-point journal", "err", err)
		} else {
			m.points = points
		}
	}
	return m
}

// Record captures one restore point for a test's fix chain.
func (m *RollbackManager) Record(testName string, actionIndex int, state domain.RestoreState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	point := domain.RestorePoint{
		TestName:    testName,
		ActionIndex: actionIndex,
		State:       state,
		At:          time.Now(),
	}
	m.points = append(m.points, point)

	if m.journal != nil {
		if err := m.journal.Append(point); err != nil {
			return fmt.Errorf("persisting restore point: %w", err)
		}
	}
	return nil
}

// HistoryLen returns the number of live restore points.
func (m *RollbackManager) HistoryLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points)
}

// RollbackAllFixes undoes every recorded restore point in strict
// reverse-chronological order. An undo failure stops unwinding that
// test's chain but unrelated chains continue. Calling with empty
// history is a clean no-op, so back-to-back invocations are safe.
func (m *RollbackManager) RollbackAllFixes() domain.RollbackSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unwind(func(string) bool { return true })
}

// RollbackTest undoes only the chain recorded for testName.
func (m *RollbackManager) RollbackTest(testName string) domain.RollbackSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unwind(func(name string) bool { return name == testName })
}

// Reset discards all restore points without reverting anything.
func (m *RollbackManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = nil
	if m.journal != nil {
		if err := m.journal.Replace(nil); err != nil {
			m.logger.Warn("could not clear restore-point journal", "err", err)
		}
	}
}

// unwind rolls back the selected chains LIFO. Points belonging to a
// chain whose undo failed are retained so an operator can retry.
// Callers must hold the mutex.
func (m *RollbackManager) unwind(selected func(testName string) bool) domain.RollbackSummary {
	summary := domain.RollbackSummary{Errors: map[string]string{}}
	failedChains := make(map[string]bool)

	var keptReversed []domain.RestorePoint
	for i := len(m.points) - 1; i >= 0; i-- {
		point := m.points[i]
		if !selected(point.TestName) || failedChains[point.TestName] {
			keptReversed = append(keptReversed, point)
			continue
		}

		summary.Attempted++
		if err := m.reverter.Revert(point.State); err != nil {
			m.logger.Error("rollback failed", "test", point.TestName, "step", point.ActionIndex, "err", err)
			summary.Errors[point.TestName] = err.Error()
			failedChains[point.TestName] = true
			keptReversed = append(keptReversed, point)
			continue
		}
		summary.RolledBack++
	}

	// Restore chronological order for the retained points.
	kept := make([]domain.RestorePoint, 0, len(keptReversed))
	for i := len(keptReversed) - 1; i >= 0; i-- {
		kept = append(kept, keptReversed[i])
	}
	m.points = kept
	summary.Remaining = len(kept)

	if len(summary.Errors) == 0 {
		summary.Errors = nil
	}
	if m.journal != nil {
		if err := m.journal.Replace(kept); err != nil {
			m.logger.Warn("could not update restore-point journal", "err", err)
		}
	}
	return summary
}

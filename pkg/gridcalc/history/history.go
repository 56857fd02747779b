// Package history keeps a capped, linear undo/redo sequence of sheet snapshots.
package history

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// DefaultLimit is the maximum number of retained entries.
const DefaultLimit = 50

// Manager is the undo/redo state machine. The zero index state is Empty
// (index -1); otherwise index points at the current entry.
type Manager struct {
	entries []models.SheetState
	index   int
	limit   int
}

// New returns an empty manager retaining at most limit entries.
// A non-positive limit selects DefaultLimit.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{index: -1, limit: limit}
}

// Record discards any redo entries, appends a copy of state and evicts the
// oldest entries beyond the limit. The new entry becomes current.
func (m *Manager) Record(state models.SheetState) error {
	entry, err := Snapshot(state)
	if err != nil {
		return err
	}
	m.entries = append(m.entries[:m.index+1], entry)
	if over := len(m.entries) - m.limit; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	m.index = len(m.entries) - 1
	return nil
}

// Undo steps back one entry and returns it. It reports false, leaving the
// manager unchanged, when the index is at or before the first entry.
func (m *Manager) Undo() (models.SheetState, bool) {
	if m.index <= 0 {
		return models.SheetState{}, false
	}
	m.index--
	return m.current()
}

// Redo steps forward one entry and returns it. It reports false, leaving the
// manager unchanged, when there is nothing to redo.
func (m *Manager) Redo() (models.SheetState, bool) {
	if m.index >= len(m.entries)-1 {
		return models.SheetState{}, false
	}
	m.index++
	return m.current()
}

// Current returns the entry at the current index.
func (m *Manager) Current() (models.SheetState, bool) {
	if m.index < 0 {
		return models.SheetState{}, false
	}
	return m.current()
}

func (m *Manager) current() (models.SheetState, bool) {
	entry, err := Snapshot(m.entries[m.index])
	if err != nil {
		return models.SheetState{}, false
	}
	return entry, true
}

// CanUndo reports whether Undo would move.
func (m *Manager) CanUndo() bool {
	return m.index > 0
}

// CanRedo reports whether Redo would move.
func (m *Manager) CanRedo() bool {
	return m.index < len(m.entries)-1
}

// Len returns the number of retained entries.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Index returns the current index, -1 when empty.
func (m *Manager) Index() int {
	return m.index
}

// Limit returns the maximum number of retained entries.
func (m *Manager) Limit() int {
	return m.limit
}

// Snapshot returns a deep copy of state sharing no maps or pointers with it.
func Snapshot(state models.SheetState) (models.SheetState, error) {
	var out models.SheetState
	if err := deepcopy.Copy(&out, &state); err != nil {
		return models.SheetState{}, fmt.Errorf("snapshot sheet state: %w", err)
	}
	return out, nil
}

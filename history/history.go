package history

import (
	"sync"
	"time"
)

// DefaultMaxEntries is the default undo stack depth.
const DefaultMaxEntries = 100

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// EntryInfo provides read-only info about a history entry.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// History manages bounded undo/redo stacks for one document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	maxEntries int
}

// NewHistory creates a history with the given maximum undo depth.
// Values below 1 use DefaultMaxEntries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs a command and records it for undo. If the command on top of
// the undo stack can merge with it, the two coalesce into a single entry.
// Any new edit clears the redo stack.
func (h *History) Execute(cmd Command, ctx *Context) error {
	if err := cmd.Execute(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if top := h.top(); top != nil {
		if m, ok := top.command.(Merger); ok && m.CanMergeWith(cmd) {
			top.command = m.MergeWith(cmd)
			top.timestamp = time.Now()
			h.redoStack = nil
			return nil
		}
	}

	h.undoStack = append(h.undoStack, &undoEntry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	return nil
}

// top returns the top undo entry without removing it. Caller holds the lock.
func (h *History) top() *undoEntry {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// Undo reverses the most recent command and moves it to the redo stack.
// An empty undo stack is a no-op.
func (h *History) Undo(ctx *Context) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return nil
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(ctx); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return nil
}

// Redo re-executes the most recently undone command and moves it back to
// the undo stack. An empty redo stack is a no-op.
func (h *History) Redo(ctx *Context) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return nil
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Execute(ctx); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return nil
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	return EntryInfo{Description: e.command.Description(), Timestamp: e.timestamp}, true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	return EntryInfo{Description: e.command.Description(), Timestamp: e.timestamp}, true
}

// Clear removes all undo and redo entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}

// MaxEntries returns the maximum undo depth.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

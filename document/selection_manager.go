package document

// SelectionListener receives synchronous selection change notifications.
type SelectionListener func(*Selection)

// SelectionManager holds the current selection for one document and
// notifies registered listeners synchronously on every change.
type SelectionManager struct {
	doc       *Document
	selection *Selection
	listeners []SelectionListener
}

// NewSelectionManager creates a manager for the given document.
func NewSelectionManager(doc *Document) *SelectionManager {
	return &SelectionManager{doc: doc}
}

// Document returns the managed document.
func (m *SelectionManager) Document() *Document { return m.doc }

// Selection returns the current selection, or nil if nothing is selected.
func (m *SelectionManager) Selection() *Selection { return m.selection }

// AddListener registers a selection listener and returns a function that
// removes it.
func (m *SelectionManager) AddListener(l SelectionListener) func() {
	m.listeners = append(m.listeners, l)
	idx := len(m.listeners) - 1
	return func() {
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

func (m *SelectionManager) notify() {
	for _, l := range m.listeners {
		if l != nil {
			l(m.selection)
		}
	}
}

// SetSelection replaces the current selection.
func (m *SelectionManager) SetSelection(s Selection) {
	m.selection = &s
	m.notify()
}

// Collapse sets a collapsed selection (a caret) at the given position.
func (m *SelectionManager) Collapse(pos NodePosition) {
	s := NewCollapsedSelection(pos)
	m.selection = &s
	m.notify()
}

// ExtendTo moves the extent to the given position, keeping the base. With no
// current selection it collapses there first.
func (m *SelectionManager) ExtendTo(pos NodePosition) {
	if m.selection == nil {
		m.Collapse(pos)
		return
	}
	s := m.selection.Extend(pos)
	m.selection = &s
	m.notify()
}

// Clear removes the current selection.
func (m *SelectionManager) Clear() {
	if m.selection == nil {
		return
	}
	m.selection = nil
	m.notify()
}

// MoveByOffset moves a collapsed selection's offset by delta, clamped to
// [0, length of the current node's plain text]. A non-collapsed selection
// collapses to its extent first. No-op when nothing is selected or the
// node is gone.
func (m *SelectionManager) MoveByOffset(delta int) {
	if m.selection == nil {
		return
	}
	pos := m.selection.Extent
	node := m.doc.NodeByID(pos.NodeID)
	if node == nil {
		return
	}

	limit := len(node.PlainText())
	if t, ok := node.(*Table); ok && pos.InTable() {
		limit = 0
		if c := t.Cell(pos.TableRow, pos.TableCol); c != nil {
			limit = c.Text.Len()
		}
	}

	pos.Offset += delta
	if pos.Offset < 0 {
		pos.Offset = 0
	}
	if pos.Offset > limit {
		pos.Offset = limit
	}
	m.Collapse(pos)
}

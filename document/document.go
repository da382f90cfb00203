package document

import (
	"fmt"
	"strings"
)

// ChangeKind classifies a document mutation for listeners.
type ChangeKind int

const (
	// ChangeInsert is a node insertion.
	ChangeInsert ChangeKind = iota
	// ChangeRemove is a node removal.
	ChangeRemove
	// ChangeReplace is a node replacement or in-place update.
	ChangeReplace
	// ChangeMove is a node reorder.
	ChangeMove
	// ChangeReset is a wholesale reset (Clear, deserialize).
	ChangeReset
)

// Change describes a single document mutation.
type Change struct {
	Kind    ChangeKind
	Index   int    // Index the mutation applied to (-1 for resets)
	NodeID  string // Id of the affected node, when applicable
	Version uint64 // Document version after the mutation
}

// ChangeListener receives synchronous change notifications.
// A listener must not mutate the document while being notified.
type ChangeListener func(Change)

// Document is an ordered, mutable sequence of nodes with a monotonic version
// counter. It is never empty: removing the last node auto-inserts a fresh
// empty paragraph before observers see the change.
type Document struct {
	nodes     []Node
	version   uint64
	listeners []ChangeListener
}

// New creates a document containing a single empty paragraph.
func New() *Document {
	return &Document{nodes: []Node{NewParagraph()}}
}

// NewWithNodes creates a document from an initial node list.
// An empty list yields a single empty paragraph.
func NewWithNodes(nodes []Node) *Document {
	if len(nodes) == 0 {
		nodes = []Node{NewParagraph()}
	}
	d := &Document{nodes: make([]Node, len(nodes))}
	copy(d.nodes, nodes)
	return d
}

// Len returns the number of nodes.
func (d *Document) Len() int { return len(d.nodes) }

// Version returns the current version counter.
func (d *Document) Version() uint64 { return d.version }

// Nodes returns a copy of the node list. The nodes themselves are shared.
func (d *Document) Nodes() []Node {
	out := make([]Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// AddListener registers a synchronous change listener and returns a function
// that removes it.
func (d *Document) AddListener(l ChangeListener) func() {
	d.listeners = append(d.listeners, l)
	idx := len(d.listeners) - 1
	return func() {
		if idx < len(d.listeners) {
			d.listeners[idx] = nil
		}
	}
}

// notify bumps the version and invokes listeners synchronously.
func (d *Document) notify(kind ChangeKind, index int, nodeID string) {
	d.version++
	c := Change{Kind: kind, Index: index, NodeID: nodeID, Version: d.version}
	for _, l := range d.listeners {
		if l != nil {
			l(c)
		}
	}
}

// NodeAt returns the node at the given index.
func (d *Document) NodeAt(index int) (Node, error) {
	if index < 0 || index >= len(d.nodes) {
		return nil, fmt.Errorf("node at %d of %d: %w", index, len(d.nodes), ErrIndexOutOfRange)
	}
	return d.nodes[index], nil
}

// NodeByID returns the node with the given id, or nil if not present.
func (d *Document) NodeByID(id string) Node {
	for _, n := range d.nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// NodeIndex returns the index of the node with the given id, or -1.
func (d *Document) NodeIndex(id string) int {
	for i, n := range d.nodes {
		if n.ID() == id {
			return i
		}
	}
	return -1
}

// InsertNode inserts a node at the given index.
func (d *Document) InsertNode(index int, n Node) error {
	if index < 0 || index > len(d.nodes) {
		return fmt.Errorf("insert node at %d of %d: %w", index, len(d.nodes), ErrIndexOutOfRange)
	}
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[index+1:], d.nodes[index:])
	d.nodes[index] = n
	d.notify(ChangeInsert, index, n.ID())
	return nil
}

// InsertNodeAfter inserts a node after the node with the given id.
func (d *Document) InsertNodeAfter(id string, n Node) error {
	idx := d.NodeIndex(id)
	if idx < 0 {
		return fmt.Errorf("insert after node %q: %w", id, ErrNodeNotFound)
	}
	return d.InsertNode(idx+1, n)
}

// InsertNodeBefore inserts a node before the node with the given id.
func (d *Document) InsertNodeBefore(id string, n Node) error {
	idx := d.NodeIndex(id)
	if idx < 0 {
		return fmt.Errorf("insert before node %q: %w", id, ErrNodeNotFound)
	}
	return d.InsertNode(idx, n)
}

// RemoveNodeAt removes the node at the given index. If the removal would
// empty the document, a fresh empty paragraph is inserted before observers
// are notified.
func (d *Document) RemoveNodeAt(index int) error {
	if index < 0 || index >= len(d.nodes) {
		return fmt.Errorf("remove node at %d of %d: %w", index, len(d.nodes), ErrIndexOutOfRange)
	}
	id := d.nodes[index].ID()
	d.nodes = append(d.nodes[:index], d.nodes[index+1:]...)
	if len(d.nodes) == 0 {
		d.nodes = append(d.nodes, NewParagraph())
	}
	d.notify(ChangeRemove, index, id)
	return nil
}

// RemoveNodeByID removes the node with the given id.
func (d *Document) RemoveNodeByID(id string) error {
	idx := d.NodeIndex(id)
	if idx < 0 {
		return fmt.Errorf("remove node %q: %w", id, ErrNodeNotFound)
	}
	return d.RemoveNodeAt(idx)
}

// ReplaceNode replaces the node at the given index.
func (d *Document) ReplaceNode(index int, n Node) error {
	if index < 0 || index >= len(d.nodes) {
		return fmt.Errorf("replace node at %d of %d: %w", index, len(d.nodes), ErrIndexOutOfRange)
	}
	d.nodes[index] = n
	d.notify(ChangeReplace, index, n.ID())
	return nil
}

// ReplaceNodeByID replaces the node with the given id.
func (d *Document) ReplaceNodeByID(id string, n Node) error {
	idx := d.NodeIndex(id)
	if idx < 0 {
		return fmt.Errorf("replace node %q: %w", id, ErrNodeNotFound)
	}
	return d.ReplaceNode(idx, n)
}

// MoveNode moves a node from one index to another. Equal indices are a
// no-op; both indices are validated independently.
func (d *Document) MoveNode(from, to int) error {
	if from < 0 || from >= len(d.nodes) {
		return fmt.Errorf("move node from %d of %d: %w", from, len(d.nodes), ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(d.nodes) {
		return fmt.Errorf("move node to %d of %d: %w", to, len(d.nodes), ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}
	n := d.nodes[from]
	d.nodes = append(d.nodes[:from], d.nodes[from+1:]...)
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[to+1:], d.nodes[to:])
	d.nodes[to] = n
	d.notify(ChangeMove, to, n.ID())
	return nil
}

// UpdateNode replaces the node with the given id by the updater's result.
// A nil result keeps the existing node and still notifies.
func (d *Document) UpdateNode(id string, updater func(Node) Node) error {
	idx := d.NodeIndex(id)
	if idx < 0 {
		return fmt.Errorf("update node %q: %w", id, ErrNodeNotFound)
	}
	if updated := updater(d.nodes[idx]); updated != nil {
		d.nodes[idx] = updated
	}
	d.notify(ChangeReplace, idx, id)
	return nil
}

// Clear resets the document to a single empty paragraph.
func (d *Document) Clear() {
	d.nodes = []Node{NewParagraph()}
	d.notify(ChangeReset, -1, d.nodes[0].ID())
}

// Reset replaces the whole node list, repairing an empty list to a single
// empty paragraph. Used by deserializers.
func (d *Document) Reset(nodes []Node) {
	if len(nodes) == 0 {
		nodes = []Node{NewParagraph()}
	}
	d.nodes = make([]Node, len(nodes))
	copy(d.nodes, nodes)
	d.notify(ChangeReset, -1, "")
}

// PlainText returns the newline-joined plain-text projection of all nodes.
func (d *Document) PlainText() string {
	var b strings.Builder
	for i, n := range d.nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(n.PlainText())
	}
	return b.String()
}

// Copy returns a deep clone of the document. Listeners are not copied and
// the clone's version starts at zero.
func (d *Document) Copy() *Document {
	nodes := make([]Node, len(d.nodes))
	for i, n := range d.nodes {
		nodes[i] = n.Clone()
	}
	return &Document{nodes: nodes}
}

// ComparePositions orders two positions by document position: node index in
// the sequence first, then table row, column, and offset. Positions whose
// node is not in the document order after all known nodes.
func (d *Document) ComparePositions(a, b NodePosition) int {
	if a.NodeID != b.NodeID {
		ai, bi := d.NodeIndex(a.NodeID), d.NodeIndex(b.NodeID)
		if ai < 0 {
			ai = len(d.nodes)
		}
		if bi < 0 {
			bi = len(d.nodes)
		}
		if ai != bi {
			return compareInt(ai, bi)
		}
	}
	if c := compareInt(a.TableRow, b.TableRow); c != 0 {
		return c
	}
	if c := compareInt(a.TableCol, b.TableCol); c != 0 {
		return c
	}
	return compareInt(a.Offset, b.Offset)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

package document

import "fmt"

// NodePosition addresses a location inside a document: a node id, a byte
// offset into the node's text, and an optional table cell. TableRow and
// TableCol are -1 when the position is not inside a table.
type NodePosition struct {
	NodeID   string
	Offset   int
	TableRow int
	TableCol int
}

// NewPosition creates a position inside a non-table node.
func NewPosition(nodeID string, offset int) NodePosition {
	return NodePosition{NodeID: nodeID, Offset: offset, TableRow: -1, TableCol: -1}
}

// NewTablePosition creates a position inside a table cell.
func NewTablePosition(nodeID string, row, col, offset int) NodePosition {
	return NodePosition{NodeID: nodeID, Offset: offset, TableRow: row, TableCol: col}
}

// InTable reports whether the position addresses a table cell.
func (p NodePosition) InTable() bool {
	return p.TableRow >= 0 && p.TableCol >= 0
}

// Equals reports structural equality.
func (p NodePosition) Equals(other NodePosition) bool {
	return p == other
}

// String returns a debug representation.
func (p NodePosition) String() string {
	if p.InTable() {
		return fmt.Sprintf("Position(%s[%d,%d]@%d)", p.NodeID, p.TableRow, p.TableCol, p.Offset)
	}
	return fmt.Sprintf("Position(%s@%d)", p.NodeID, p.Offset)
}

// Selection is a (Base, Extent) pair of positions. Base is where the
// selection started; Extent is where it currently ends (the active end).
// Selection is an immutable value type.
type Selection struct {
	Base   NodePosition
	Extent NodePosition
}

// NewSelection creates a selection from base to extent.
func NewSelection(base, extent NodePosition) Selection {
	return Selection{Base: base, Extent: extent}
}

// NewCollapsedSelection creates a collapsed selection (a caret) at pos.
func NewCollapsedSelection(pos NodePosition) Selection {
	return Selection{Base: pos, Extent: pos}
}

// IsCollapsed reports whether base and extent are the same position.
func (s Selection) IsCollapsed() bool {
	return s.Base == s.Extent
}

// SpansMultipleNodes reports whether base and extent are in different nodes.
func (s Selection) SpansMultipleNodes() bool {
	return s.Base.NodeID != s.Extent.NodeID
}

// Start returns the position that comes first in document order.
func (s Selection) Start(d *Document) NodePosition {
	if d.ComparePositions(s.Base, s.Extent) <= 0 {
		return s.Base
	}
	return s.Extent
}

// End returns the position that comes last in document order.
func (s Selection) End(d *Document) NodePosition {
	if d.ComparePositions(s.Base, s.Extent) <= 0 {
		return s.Extent
	}
	return s.Base
}

// Collapse returns a collapsed selection at the extent.
func (s Selection) Collapse() Selection {
	return Selection{Base: s.Extent, Extent: s.Extent}
}

// Extend returns a selection with the same base and a new extent.
func (s Selection) Extend(pos NodePosition) Selection {
	return Selection{Base: s.Base, Extent: pos}
}

// Equals reports structural equality.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// String returns a debug representation.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Caret(%s)", s.Extent)
	}
	return fmt.Sprintf("Selection(%s..%s)", s.Base, s.Extent)
}

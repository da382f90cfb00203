package history

import (
	"fmt"

	"github.com/dshills/richdoc/document"
)

// tableByID resolves a table node or fails.
func tableByID(doc *document.Document, id string) (*document.Table, error) {
	node := doc.NodeByID(id)
	if node == nil {
		return nil, fmt.Errorf("table %q: %w", id, document.ErrNodeNotFound)
	}
	tbl, ok := node.(*document.Table)
	if !ok {
		return nil, fmt.Errorf("node %q (%s): %w", id, node.Kind(), ErrNotTable)
	}
	return tbl, nil
}

// updateTable applies fn to a table node through the document so the version
// counter bumps and listeners fire.
func updateTable(doc *document.Document, id string, fn func(*document.Table)) error {
	if _, err := tableByID(doc, id); err != nil {
		return err
	}
	return doc.UpdateNode(id, func(node document.Node) document.Node {
		fn(node.(*document.Table))
		return node
	})
}

// clampInsertIndex mirrors the clamping the table applies on insertion so
// undo can target the row or column that was actually added.
func clampInsertIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count {
		return count
	}
	return index
}

// AddTableRowCommand inserts an empty row into a table.
type AddTableRowCommand struct {
	NodeID string
	Index  int

	at       int
	executed bool
}

// NewAddTableRowCommand creates a row insertion command.
func NewAddTableRowCommand(nodeID string, index int) *AddTableRowCommand {
	return &AddTableRowCommand{NodeID: nodeID, Index: index}
}

// Execute inserts the row.
func (c *AddTableRowCommand) Execute(ctx *Context) error {
	tbl, err := tableByID(ctx.Doc, c.NodeID)
	if err != nil {
		return err
	}
	c.at = clampInsertIndex(c.Index, tbl.RowCount())
	if err := updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.InsertRow(c.at)
	}); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo removes the inserted row.
func (c *AddTableRowCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RemoveRow(c.at)
	})
}

// Description returns a human-readable description.
func (c *AddTableRowCommand) Description() string {
	return "Add table row"
}

// AddTableColumnCommand inserts an empty column into a table.
type AddTableColumnCommand struct {
	NodeID string
	Index  int

	at       int
	executed bool
}

// NewAddTableColumnCommand creates a column insertion command.
func NewAddTableColumnCommand(nodeID string, index int) *AddTableColumnCommand {
	return &AddTableColumnCommand{NodeID: nodeID, Index: index}
}

// Execute inserts the column.
func (c *AddTableColumnCommand) Execute(ctx *Context) error {
	tbl, err := tableByID(ctx.Doc, c.NodeID)
	if err != nil {
		return err
	}
	c.at = clampInsertIndex(c.Index, tbl.ColumnCount())
	if err := updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.InsertColumn(c.at)
	}); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo removes the inserted column.
func (c *AddTableColumnCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RemoveColumn(c.at)
	})
}

// Description returns a human-readable description.
func (c *AddTableColumnCommand) Description() string {
	return "Add table column"
}

// DeleteTableRowCommand removes a table row, remembering its cells for
// undo. Deleting the last remaining row is a silent no-op.
type DeleteTableRowCommand struct {
	NodeID string
	Index  int

	removed  []document.Cell
	executed bool
}

// NewDeleteTableRowCommand creates a row deletion command.
func NewDeleteTableRowCommand(nodeID string, index int) *DeleteTableRowCommand {
	return &DeleteTableRowCommand{NodeID: nodeID, Index: index}
}

// Execute removes the row unless it is the last one.
func (c *DeleteTableRowCommand) Execute(ctx *Context) error {
	tbl, err := tableByID(ctx.Doc, c.NodeID)
	if err != nil {
		return err
	}
	c.removed = nil
	if tbl.RowCount() <= 1 || c.Index < 0 || c.Index >= tbl.RowCount() {
		// Guarded no-op; nothing to undo.
		c.executed = true
		return nil
	}
	c.removed = tbl.Row(c.Index)
	if err := updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RemoveRow(c.Index)
	}); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo reinserts the removed row, if any.
func (c *DeleteTableRowCommand) Undo(ctx *Context) error {
	if !c.executed || c.removed == nil {
		return nil
	}
	return updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RestoreRow(c.Index, c.removed)
	})
}

// Description returns a human-readable description.
func (c *DeleteTableRowCommand) Description() string {
	return "Delete table row"
}

// DeleteTableColumnCommand removes a table column, remembering its cells
// for undo. Deleting the last remaining column is a silent no-op.
type DeleteTableColumnCommand struct {
	NodeID string
	Index  int

	removed  []document.Cell
	executed bool
}

// NewDeleteTableColumnCommand creates a column deletion command.
func NewDeleteTableColumnCommand(nodeID string, index int) *DeleteTableColumnCommand {
	return &DeleteTableColumnCommand{NodeID: nodeID, Index: index}
}

// Execute removes the column unless it is the last one.
func (c *DeleteTableColumnCommand) Execute(ctx *Context) error {
	tbl, err := tableByID(ctx.Doc, c.NodeID)
	if err != nil {
		return err
	}
	c.removed = nil
	if tbl.ColumnCount() <= 1 || c.Index < 0 || c.Index >= tbl.ColumnCount() {
		c.executed = true
		return nil
	}
	c.removed = tbl.Column(c.Index)
	if err := updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RemoveColumn(c.Index)
	}); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo reinserts the removed column, if any.
func (c *DeleteTableColumnCommand) Undo(ctx *Context) error {
	if !c.executed || c.removed == nil {
		return nil
	}
	return updateTable(ctx.Doc, c.NodeID, func(t *document.Table) {
		t.RestoreColumn(c.Index, c.removed)
	})
}

// Description returns a human-readable description.
func (c *DeleteTableColumnCommand) Description() string {
	return "Delete table column"
}

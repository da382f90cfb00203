package history

import (
	"fmt"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// InsertNodeCommand inserts a prebuilt node at an index. It backs the
// paragraph, table, and image insertion helpers.
type InsertNodeCommand struct {
	Index int
	Node  document.Node

	name     string
	prevSel  *document.Selection
	executed bool
}

// NewInsertParagraphCommand creates a command inserting an empty paragraph.
func NewInsertParagraphCommand(index int) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: document.NewParagraph(), name: "Insert paragraph"}
}

// NewInsertTableCommand creates a command inserting a rows x cols table.
func NewInsertTableCommand(index, rows, cols int) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: document.NewTable(rows, cols), name: "Insert table"}
}

// NewInsertImageCommand creates a command inserting an image node.
func NewInsertImageCommand(index int, src, alt string) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: document.NewImage(src, alt), name: "Insert image"}
}

// NewInsertRuleCommand creates a command inserting a horizontal rule.
func NewInsertRuleCommand(index int) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: document.NewRule(), name: "Insert rule"}
}

// NewInsertNodeCommand creates a command inserting an arbitrary node.
func NewInsertNodeCommand(index int, n document.Node) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: n, name: fmt.Sprintf("Insert %s", n.Kind())}
}

// Execute inserts the node.
func (c *InsertNodeCommand) Execute(ctx *Context) error {
	c.prevSel = currentSelection(ctx)
	if err := ctx.Doc.InsertNode(c.Index, c.Node); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo removes the inserted node and restores the selection.
func (c *InsertNodeCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	if err := ctx.Doc.RemoveNodeByID(c.Node.ID()); err != nil {
		return err
	}
	restoreSelection(ctx, c.prevSel)
	return nil
}

// Description returns a human-readable description.
func (c *InsertNodeCommand) Description() string {
	return c.name
}

// SplitParagraphCommand splits a paragraph or list item at an offset. The
// original node keeps the leading half; a new node of the same shape holding
// the trailing half is inserted after it, and the selection collapses to the
// start of the new node.
type SplitParagraphCommand struct {
	Pos document.NodePosition

	prevText text.Text
	newID    string
	prevSel  *document.Selection
	executed bool
}

// NewSplitParagraphCommand creates a split command.
func NewSplitParagraphCommand(pos document.NodePosition) *SplitParagraphCommand {
	return &SplitParagraphCommand{Pos: pos}
}

// Execute splits the node at the offset.
func (c *SplitParagraphCommand) Execute(ctx *Context) error {
	prev, err := textAt(ctx.Doc, c.Pos)
	if err != nil {
		return err
	}
	c.prevSel = currentSelection(ctx)

	head, err := prev.Substring(0, c.Pos.Offset)
	if err != nil {
		return err
	}
	tail, err := prev.Substring(c.Pos.Offset, prev.Len())
	if err != nil {
		return err
	}

	var trailing document.Node
	switch n := ctx.Doc.NodeByID(c.Pos.NodeID).(type) {
	case *document.Paragraph:
		p := document.NewParagraphText(tail)
		p.Alignment = n.Alignment
		p.BlockType = n.BlockType
		p.Indent = n.Indent
		trailing = p
	case *document.ListItem:
		item := document.NewListItem(n.ListType, tail)
		item.Indent = n.Indent
		trailing = item
	default:
		return fmt.Errorf("split node %q: %w", c.Pos.NodeID, ErrNotTextNode)
	}

	c.prevText = prev
	if err := setTextAt(ctx.Doc, c.Pos, head); err != nil {
		return err
	}
	if err := ctx.Doc.InsertNodeAfter(c.Pos.NodeID, trailing); err != nil {
		return err
	}
	c.newID = trailing.ID()

	if ctx.Selection != nil {
		ctx.Selection.Collapse(document.NewPosition(c.newID, 0))
	}
	c.executed = true
	return nil
}

// Undo removes the trailing node and restores the original text.
func (c *SplitParagraphCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	if err := ctx.Doc.RemoveNodeByID(c.newID); err != nil {
		return err
	}
	if err := setTextAt(ctx.Doc, c.Pos, c.prevText); err != nil {
		return err
	}
	restoreSelection(ctx, c.prevSel)
	return nil
}

// Description returns a human-readable description.
func (c *SplitParagraphCommand) Description() string {
	return "Split paragraph"
}

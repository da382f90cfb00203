package history

import (
	"fmt"

	"github.com/dshills/richdoc/document"
)

// SetAlignmentCommand sets the alignment of a paragraph, image, or table
// cell node.
type SetAlignmentCommand struct {
	Pos       document.NodePosition
	Alignment document.Alignment

	prev     document.Alignment
	executed bool
}

// NewSetAlignmentCommand creates an alignment command.
func NewSetAlignmentCommand(pos document.NodePosition, a document.Alignment) *SetAlignmentCommand {
	return &SetAlignmentCommand{Pos: pos, Alignment: a}
}

func (c *SetAlignmentCommand) apply(ctx *Context, a document.Alignment) error {
	return ctx.Doc.UpdateNode(c.Pos.NodeID, func(node document.Node) document.Node {
		switch n := node.(type) {
		case *document.Paragraph:
			c.prev, n.Alignment = n.Alignment, a
		case *document.Image:
			c.prev, n.Alignment = n.Alignment, a
		case *document.Table:
			if cell := n.Cell(c.Pos.TableRow, c.Pos.TableCol); cell != nil {
				c.prev, cell.Alignment = cell.Alignment, a
			}
		}
		return node
	})
}

// Execute sets the alignment, remembering the previous value.
func (c *SetAlignmentCommand) Execute(ctx *Context) error {
	if err := c.apply(ctx, c.Alignment); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo restores the previous alignment.
func (c *SetAlignmentCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	prev := c.prev
	return c.apply(ctx, prev)
}

// Description returns a human-readable description.
func (c *SetAlignmentCommand) Description() string {
	return fmt.Sprintf("Align %s", c.Alignment)
}

// SetBlockTypeCommand changes a paragraph's block type (heading level,
// quote, preformatted).
type SetBlockTypeCommand struct {
	NodeID    string
	BlockType document.BlockType

	prev     document.BlockType
	executed bool
}

// NewSetBlockTypeCommand creates a block type command.
func NewSetBlockTypeCommand(nodeID string, bt document.BlockType) *SetBlockTypeCommand {
	return &SetBlockTypeCommand{NodeID: nodeID, BlockType: bt}
}

func (c *SetBlockTypeCommand) apply(ctx *Context, bt document.BlockType) error {
	return ctx.Doc.UpdateNode(c.NodeID, func(node document.Node) document.Node {
		if p, ok := node.(*document.Paragraph); ok {
			c.prev, p.BlockType = p.BlockType, bt
		}
		return node
	})
}

// Execute sets the block type, remembering the previous value.
func (c *SetBlockTypeCommand) Execute(ctx *Context) error {
	if err := c.apply(ctx, c.BlockType); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo restores the previous block type.
func (c *SetBlockTypeCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	prev := c.prev
	return c.apply(ctx, prev)
}

// Description returns a human-readable description.
func (c *SetBlockTypeCommand) Description() string {
	return fmt.Sprintf("Set block type %s", c.BlockType)
}

// SetIndentCommand adjusts the indent level of a paragraph or list item by
// a delta, clamped at zero.
type SetIndentCommand struct {
	NodeID string
	Delta  int

	prev     int
	executed bool
}

// NewSetIndentCommand creates an indent command.
func NewSetIndentCommand(nodeID string, delta int) *SetIndentCommand {
	return &SetIndentCommand{NodeID: nodeID, Delta: delta}
}

// Execute adjusts the indent level.
func (c *SetIndentCommand) Execute(ctx *Context) error {
	err := ctx.Doc.UpdateNode(c.NodeID, func(node document.Node) document.Node {
		switch n := node.(type) {
		case *document.Paragraph:
			c.prev = n.Indent
			n.Indent = clampIndent(n.Indent + c.Delta)
		case *document.ListItem:
			c.prev = n.Indent
			n.Indent = clampIndent(n.Indent + c.Delta)
		}
		return node
	})
	if err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo restores the previous indent level.
func (c *SetIndentCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return ctx.Doc.UpdateNode(c.NodeID, func(node document.Node) document.Node {
		switch n := node.(type) {
		case *document.Paragraph:
			n.Indent = c.prev
		case *document.ListItem:
			n.Indent = c.prev
		}
		return node
	})
}

func clampIndent(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Description returns a human-readable description.
func (c *SetIndentCommand) Description() string {
	if c.Delta >= 0 {
		return "Indent"
	}
	return "Outdent"
}

// ToggleListTypeCommand converts a paragraph into a list item, converts a
// list item of the same type back into a paragraph, or flips the list type
// of a list item of the other type.
type ToggleListTypeCommand struct {
	NodeID   string
	ListType document.ListType

	prevNode document.Node
	newID    string
	executed bool
}

// NewToggleListTypeCommand creates a list toggle command.
func NewToggleListTypeCommand(nodeID string, lt document.ListType) *ToggleListTypeCommand {
	return &ToggleListTypeCommand{NodeID: nodeID, ListType: lt}
}

// Execute converts the target node, remembering the node it replaced.
func (c *ToggleListTypeCommand) Execute(ctx *Context) error {
	node := ctx.Doc.NodeByID(c.NodeID)
	if node == nil {
		return fmt.Errorf("toggle list on %q: %w", c.NodeID, document.ErrNodeNotFound)
	}

	var replacement document.Node
	switch n := node.(type) {
	case *document.Paragraph:
		item := document.NewListItem(c.ListType, n.Text)
		item.Indent = n.Indent
		replacement = item
	case *document.ListItem:
		if n.ListType == c.ListType {
			p := document.NewParagraphText(n.Text)
			p.Indent = n.Indent
			replacement = p
		} else {
			flipped := document.NewListItem(c.ListType, n.Text)
			flipped.Indent = n.Indent
			replacement = flipped
		}
	default:
		return fmt.Errorf("toggle list on %q (%s): %w", c.NodeID, node.Kind(), ErrNotTextNode)
	}

	c.prevNode = node.Clone()
	c.newID = replacement.ID()
	if err := ctx.Doc.ReplaceNodeByID(c.NodeID, replacement); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo puts the original node back.
func (c *ToggleListTypeCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return ctx.Doc.ReplaceNodeByID(c.newID, c.prevNode.Clone())
}

// Description returns a human-readable description.
func (c *ToggleListTypeCommand) Description() string {
	return fmt.Sprintf("Toggle %s list", c.ListType)
}

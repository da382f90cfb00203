package history

import (
	"errors"
	"fmt"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// Errors returned by command execution.
var (
	// ErrNotTextNode indicates the target node holds no editable text.
	ErrNotTextNode = errors.New("node does not hold editable text")

	// ErrNotTable indicates the target node is not a table.
	ErrNotTable = errors.New("node is not a table")
)

// Context carries the state commands operate on.
type Context struct {
	Doc       *document.Document
	Selection *document.SelectionManager
}

// NewContext creates a command context for a document and its selection
// manager.
func NewContext(doc *document.Document, sel *document.SelectionManager) *Context {
	return &Context{Doc: doc, Selection: sel}
}

// Command represents a reversible edit action.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(ctx *Context) error

	// Undo reverses the command and returns an error if it fails.
	Undo(ctx *Context) error

	// Description returns a human-readable description of the command.
	Description() string
}

// Merger is implemented by commands that can coalesce with a newer command
// into a single undo step.
type Merger interface {
	// CanMergeWith reports whether the newer command can be folded into
	// this one.
	CanMergeWith(next Command) bool

	// MergeWith returns the merged command. Only valid after CanMergeWith
	// reported true.
	MergeWith(next Command) Command
}

// textAt returns the attributed text addressed by a position: the text of a
// paragraph or list item, or the text of a table cell.
func textAt(doc *document.Document, pos document.NodePosition) (text.Text, error) {
	node := doc.NodeByID(pos.NodeID)
	if node == nil {
		return text.Text{}, fmt.Errorf("node %q: %w", pos.NodeID, document.ErrNodeNotFound)
	}
	switch n := node.(type) {
	case *document.Paragraph:
		return n.Text, nil
	case *document.ListItem:
		return n.Text, nil
	case *document.Table:
		if pos.InTable() {
			if c := n.Cell(pos.TableRow, pos.TableCol); c != nil {
				return c.Text, nil
			}
		}
		return text.Text{}, fmt.Errorf("table cell (%d,%d): %w", pos.TableRow, pos.TableCol, ErrNotTextNode)
	default:
		return text.Text{}, fmt.Errorf("node %q (%s): %w", pos.NodeID, node.Kind(), ErrNotTextNode)
	}
}

// setTextAt replaces the attributed text addressed by a position, bumping
// the document version.
func setTextAt(doc *document.Document, pos document.NodePosition, t text.Text) error {
	return doc.UpdateNode(pos.NodeID, func(node document.Node) document.Node {
		switch n := node.(type) {
		case *document.Paragraph:
			n.Text = t
		case *document.ListItem:
			n.Text = t
		case *document.Table:
			if pos.InTable() {
				n.SetCellText(pos.TableRow, pos.TableCol, t)
			}
		}
		return node
	})
}

// currentSelection returns a copy of the manager's selection, or nil.
func currentSelection(ctx *Context) *document.Selection {
	if ctx.Selection == nil || ctx.Selection.Selection() == nil {
		return nil
	}
	s := *ctx.Selection.Selection()
	return &s
}

// restoreSelection puts a previously captured selection back.
func restoreSelection(ctx *Context, sel *document.Selection) {
	if ctx.Selection == nil {
		return
	}
	if sel == nil {
		ctx.Selection.Clear()
		return
	}
	ctx.Selection.SetSelection(*sel)
}

// BatchCommand groups multiple commands into a single undo unit.
// Children execute in order and undo in reverse order.
type BatchCommand struct {
	Commands []Command
	Name     string
}

// NewBatchCommand creates a batch command.
func NewBatchCommand(name string, commands ...Command) *BatchCommand {
	return &BatchCommand{Name: name, Commands: commands}
}

// Add appends a child command.
func (c *BatchCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty reports whether the batch has no children.
func (c *BatchCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

// Execute runs all children in order. On failure, already-executed children
// are undone so the batch is all-or-nothing.
func (c *BatchCommand) Execute(ctx *Context) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(ctx)
			}
			return fmt.Errorf("batch %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all children in reverse order.
func (c *BatchCommand) Undo(ctx *Context) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(ctx); err != nil {
			return fmt.Errorf("undo batch %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the batch name, or a summary.
func (c *BatchCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

package history

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// InsertTextCommand inserts text at a position. A non-collapsed selection
// within the target node is replaced: its range is deleted before the
// insertion, and the deleted attributed text is remembered for undo.
type InsertTextCommand struct {
	Pos   document.NodePosition
	Text  string
	Attrs *text.Attributes

	prevText text.Text
	prevSel  *document.Selection
	deleted  text.Text
	executed bool
}

// NewInsertTextCommand creates an insert command for the given position.
func NewInsertTextCommand(pos document.NodePosition, s string) *InsertTextCommand {
	return &InsertTextCommand{Pos: pos, Text: s}
}

// Execute replaces any same-node selection and inserts the text.
func (c *InsertTextCommand) Execute(ctx *Context) error {
	prev, err := textAt(ctx.Doc, c.Pos)
	if err != nil {
		return err
	}
	c.prevText = prev
	c.prevSel = currentSelection(ctx)
	c.deleted = text.Text{}

	insertAt := c.Pos.Offset
	cur := prev

	// Replace a non-collapsed selection confined to the target node.
	if sel := c.prevSel; sel != nil && !sel.IsCollapsed() && !sel.SpansMultipleNodes() &&
		sel.Base.NodeID == c.Pos.NodeID {
		start := sel.Start(ctx.Doc).Offset
		end := sel.End(ctx.Doc).Offset
		if del, serr := cur.Substring(start, end); serr == nil {
			c.deleted = del
		}
		cur, err = cur.Delete(start, end)
		if err != nil {
			return fmt.Errorf("replace selection: %w", err)
		}
		insertAt = start
	}

	next, err := cur.Insert(insertAt, c.Text, c.Attrs)
	if err != nil {
		return err
	}
	if err := setTextAt(ctx.Doc, c.Pos, next); err != nil {
		return err
	}

	if ctx.Selection != nil {
		end := c.Pos
		end.Offset = insertAt + len(c.Text)
		ctx.Selection.Collapse(end)
	}
	c.executed = true
	return nil
}

// Undo restores the node's previous text and selection.
func (c *InsertTextCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	if err := setTextAt(ctx.Doc, c.Pos, c.prevText); err != nil {
		return err
	}
	restoreSelection(ctx, c.prevSel)
	return nil
}

// DeletedText returns the attributed text removed by replacing a selection.
func (c *InsertTextCommand) DeletedText() text.Text {
	return c.deleted
}

// CanMergeWith reports whether the next command is a single-character,
// non-newline insertion directly after this command's inserted text, in the
// same node and cell.
func (c *InsertTextCommand) CanMergeWith(next Command) bool {
	n, ok := next.(*InsertTextCommand)
	if !ok || !c.executed || !n.executed {
		return false
	}
	if n.Pos.NodeID != c.Pos.NodeID ||
		n.Pos.TableRow != c.Pos.TableRow || n.Pos.TableCol != c.Pos.TableCol {
		return false
	}
	if utf8.RuneCountInString(n.Text) != 1 || strings.Contains(n.Text, "\n") {
		return false
	}
	if strings.Contains(c.Text, "\n") {
		return false
	}
	// The next insertion must continue exactly where this one ended, and
	// must not have replaced a selection of its own.
	return !n.executedReplacedSelection() && n.Pos.Offset == c.Pos.Offset+len(c.Text)
}

func (c *InsertTextCommand) executedReplacedSelection() bool {
	return !c.deleted.IsEmpty()
}

// MergeWith folds the next insertion into this command, keeping this
// command's captured prior state so a single undo restores it.
func (c *InsertTextCommand) MergeWith(next Command) Command {
	n := next.(*InsertTextCommand)
	return &InsertTextCommand{
		Pos:      c.Pos,
		Text:     c.Text + n.Text,
		Attrs:    c.Attrs,
		prevText: c.prevText,
		prevSel:  c.prevSel,
		deleted:  c.deleted,
		executed: true,
	}
}

// Description returns a human-readable description.
func (c *InsertTextCommand) Description() string {
	if c.Text == "\n" {
		return "Insert newline"
	}
	if utf8.RuneCountInString(c.Text) <= 20 {
		return fmt.Sprintf("Insert %q", c.Text)
	}
	return fmt.Sprintf("Insert %d characters", utf8.RuneCountInString(c.Text))
}

// DeleteTextCommand deletes the byte range [Start, End) of a node's text.
type DeleteTextCommand struct {
	Pos   document.NodePosition // Offset is ignored; Start/End address the range
	Start int
	End   int

	prevText text.Text
	prevSel  *document.Selection
	executed bool
}

// NewDeleteTextCommand creates a delete command for a range within a node.
func NewDeleteTextCommand(pos document.NodePosition, start, end int) *DeleteTextCommand {
	return &DeleteTextCommand{Pos: pos, Start: start, End: end}
}

// Execute removes the range and collapses the selection to its start.
func (c *DeleteTextCommand) Execute(ctx *Context) error {
	prev, err := textAt(ctx.Doc, c.Pos)
	if err != nil {
		return err
	}
	c.prevText = prev
	c.prevSel = currentSelection(ctx)

	next, err := prev.Delete(c.Start, c.End)
	if err != nil {
		return err
	}
	if err := setTextAt(ctx.Doc, c.Pos, next); err != nil {
		return err
	}

	if ctx.Selection != nil {
		pos := c.Pos
		pos.Offset = c.Start
		ctx.Selection.Collapse(pos)
	}
	c.executed = true
	return nil
}

// Undo restores the node's previous text and selection.
func (c *DeleteTextCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	if err := setTextAt(ctx.Doc, c.Pos, c.prevText); err != nil {
		return err
	}
	restoreSelection(ctx, c.prevSel)
	return nil
}

// DeletedText returns the attributed text that was removed.
func (c *DeleteTextCommand) DeletedText() text.Text {
	if !c.executed {
		return text.Text{}
	}
	del, err := c.prevText.Substring(c.Start, c.End)
	if err != nil {
		return text.Text{}
	}
	return del
}

// Description returns a human-readable description.
func (c *DeleteTextCommand) Description() string {
	return fmt.Sprintf("Delete %d characters", c.End-c.Start)
}

// ToggleFormatCommand toggles an inline format flag over a text range.
type ToggleFormatCommand struct {
	Pos    document.NodePosition
	Start  int
	End    int
	Format text.Format

	prevText text.Text
	executed bool
}

// NewToggleFormatCommand creates a format toggle command.
func NewToggleFormatCommand(pos document.NodePosition, start, end int, f text.Format) *ToggleFormatCommand {
	return &ToggleFormatCommand{Pos: pos, Start: start, End: end, Format: f}
}

// Execute toggles the format over the range.
func (c *ToggleFormatCommand) Execute(ctx *Context) error {
	prev, err := textAt(ctx.Doc, c.Pos)
	if err != nil {
		return err
	}
	c.prevText = prev
	if err := setTextAt(ctx.Doc, c.Pos, prev.ToggleFormat(c.Start, c.End, c.Format)); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo restores the node's previous text.
func (c *ToggleFormatCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return setTextAt(ctx.Doc, c.Pos, c.prevText)
}

// Description returns a human-readable description.
func (c *ToggleFormatCommand) Description() string {
	return fmt.Sprintf("Toggle %s", c.Format)
}

// InsertLinkCommand applies a link to a text range, or inserts new linked
// text at a collapsed position when LinkText is set.
type InsertLinkCommand struct {
	Pos      document.NodePosition
	Start    int
	End      int
	URL      string
	LinkText string // Inserted when Start == End

	prevText text.Text
	executed bool
}

// NewInsertLinkCommand creates a link command over an existing range.
func NewInsertLinkCommand(pos document.NodePosition, start, end int, url string) *InsertLinkCommand {
	return &InsertLinkCommand{Pos: pos, Start: start, End: end, URL: url}
}

// Execute applies or inserts the link.
func (c *InsertLinkCommand) Execute(ctx *Context) error {
	prev, err := textAt(ctx.Doc, c.Pos)
	if err != nil {
		return err
	}
	c.prevText = prev

	attrs := text.Attributes{LinkURL: c.URL}
	var next text.Text
	if c.Start == c.End && c.LinkText != "" {
		next, err = prev.Insert(c.Start, c.LinkText, &attrs)
		if err != nil {
			return err
		}
	} else {
		next = prev.ApplyAttributes(c.Start, c.End, attrs)
	}
	if err := setTextAt(ctx.Doc, c.Pos, next); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo restores the node's previous text.
func (c *InsertLinkCommand) Undo(ctx *Context) error {
	if !c.executed {
		return nil
	}
	return setTextAt(ctx.Doc, c.Pos, c.prevText)
}

// Description returns a human-readable description.
func (c *InsertLinkCommand) Description() string {
	return fmt.Sprintf("Insert link to %s", c.URL)
}

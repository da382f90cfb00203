package docjson

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// Version is the envelope format version written by Serialize.
const Version = 1

// object accumulates sjson writes, keeping the first error.
type object struct {
	s   string
	err error
}

func newObject() *object {
	return &object{s: "{}"}
}

func (o *object) set(path string, value any) {
	if o.err != nil {
		return
	}
	o.s, o.err = sjson.Set(o.s, path, value)
}

func (o *object) setRaw(path, raw string) {
	if o.err != nil {
		return
	}
	o.s, o.err = sjson.SetRaw(o.s, path, raw)
}

// Serialize renders the document as a versioned JSON envelope
// {"version":1,"nodes":[...]}. Field order is stable across runs.
func Serialize(doc *document.Document) ([]byte, error) {
	o := newObject()
	o.set("version", Version)
	o.setRaw("nodes", "[]")
	for _, n := range doc.Nodes() {
		raw, err := marshalNode(n)
		if err != nil {
			return nil, err
		}
		o.setRaw("nodes.-1", raw)
	}
	if o.err != nil {
		return nil, o.err
	}
	return []byte(o.s), nil
}

// SerializePretty is Serialize with indented, human-readable output.
func SerializePretty(doc *document.Document) ([]byte, error) {
	data, err := Serialize(doc)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

func marshalNode(n document.Node) (string, error) {
	o := newObject()
	o.set("type", n.Kind().String())
	o.set("id", n.ID())

	switch node := n.(type) {
	case *document.Paragraph:
		o.setRaw("text", marshalText(node.Text))
		if node.BlockType != document.BlockParagraph {
			o.set("blockType", node.BlockType.String())
		}
		if node.Alignment != document.AlignLeft {
			o.set("alignment", node.Alignment.String())
		}
		if node.Indent > 0 {
			o.set("indent", node.Indent)
		}

	case *document.ListItem:
		o.setRaw("text", marshalText(node.Text))
		o.set("listType", node.ListType.String())
		if node.Indent > 0 {
			o.set("indent", node.Indent)
		}

	case *document.Table:
		o.set("hasHeader", node.HasHeader)
		if node.Style != document.TableStyleDefault {
			o.set("style", node.Style.String())
		}
		o.setRaw("cells", "[]")
		for r := 0; r < node.RowCount(); r++ {
			o.setRaw("cells.-1", "[]")
			for c := 0; c < node.ColumnCount(); c++ {
				o.setRaw(cellPath(r), marshalCell(node.Cell(r, c)))
			}
		}

	case *document.Image:
		o.set("src", node.Src)
		o.set("alt", node.Alt)
		if node.Width > 0 {
			o.set("width", node.Width)
		}
		if node.Height > 0 {
			o.set("height", node.Height)
		}
		if node.Alignment != document.AlignLeft {
			o.set("alignment", node.Alignment.String())
		}

	case *document.Rule:
		// Discriminant and id only.

	case *document.CodeBlock:
		o.set("code", node.Code)
		if node.Language != "" {
			o.set("language", node.Language)
		}
	}

	return o.s, o.err
}

func cellPath(row int) string {
	return fmt.Sprintf("cells.%d.-1", row)
}

func marshalCell(cell *document.Cell) string {
	o := newObject()
	o.setRaw("text", marshalText(cell.Text))
	if cell.Background != "" {
		o.set("background", cell.Background)
	}
	if cell.Alignment != document.AlignLeft {
		o.set("alignment", cell.Alignment.String())
	}
	return o.s
}

func marshalText(t text.Text) string {
	o := newObject()
	o.set("text", t.String())
	o.setRaw("spans", "[]")
	for _, sp := range t.Spans() {
		o.setRaw("spans.-1", marshalSpan(sp))
	}
	return o.s
}

func marshalSpan(sp text.Span) string {
	o := newObject()
	o.set("start", sp.Start)
	o.set("end", sp.End)
	o.setRaw("attributes", marshalAttributes(sp.Attrs))
	return o.s
}

// marshalAttributes writes only the fields that are set.
func marshalAttributes(a text.Attributes) string {
	o := newObject()
	for _, f := range text.Formats() {
		if a.Has(f) {
			o.set(f.String(), true)
		}
	}
	if a.TextColor != "" {
		o.set("textColor", a.TextColor)
	}
	if a.BackgroundColor != "" {
		o.set("backgroundColor", a.BackgroundColor)
	}
	if a.FontSize > 0 {
		o.set("fontSize", a.FontSize)
	}
	if a.FontFamily != "" {
		o.set("fontFamily", a.FontFamily)
	}
	if a.LinkURL != "" {
		o.set("linkUrl", a.LinkURL)
	}
	for _, f := range text.Formats() {
		if a.Cleared(f) {
			o.set("clear.-1", f.String())
		}
	}
	return o.s
}

package docjson

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// ErrInvalidJSON reports a payload that is not valid JSON at all.
// Anything parseable decodes with per-field recovery instead; a top-level
// non-object is treated as an empty envelope.
var ErrInvalidJSON = errors.New("docjson: invalid JSON payload")

// Deserialize decodes a serialized envelope back into a document. An empty
// or node-less envelope yields the default single-paragraph document.
func Deserialize(data []byte) (*document.Document, error) {
	nodes, err := decodeNodes(data)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return document.New(), nil
	}
	return document.NewWithNodes(nodes), nil
}

// DeserializeInto decodes a serialized envelope into an existing document,
// replacing its nodes in place so attached listeners observe the reset.
func DeserializeInto(doc *document.Document, data []byte) error {
	nodes, err := decodeNodes(data)
	if err != nil {
		return err
	}
	doc.Reset(nodes)
	return nil
}

func decodeNodes(data []byte) ([]document.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	var nodes []document.Node
	gjson.ParseBytes(data).Get("nodes").ForEach(func(_, v gjson.Result) bool {
		nodes = append(nodes, unmarshalNode(v))
		return true
	})
	return nodes, nil
}

// unmarshalNode decodes one node object. An unknown type tag yields an
// empty paragraph so a document written by a newer version still loads.
func unmarshalNode(v gjson.Result) document.Node {
	var n document.Node
	switch v.Get("type").String() {
	case document.KindParagraph.String():
		p := document.NewParagraphText(unmarshalText(v.Get("text")))
		p.BlockType = document.ParseBlockType(v.Get("blockType").String())
		p.Alignment = document.ParseAlignment(v.Get("alignment").String())
		p.Indent = clampIndent(v.Get("indent"))
		n = p

	case document.KindListItem.String():
		li := document.NewListItem(
			document.ParseListType(v.Get("listType").String()),
			unmarshalText(v.Get("text")),
		)
		li.Indent = clampIndent(v.Get("indent"))
		n = li

	case document.KindTable.String():
		n = unmarshalTable(v)

	case document.KindImage.String():
		img := document.NewImage(v.Get("src").String(), v.Get("alt").String())
		img.Width = int(v.Get("width").Int())
		img.Height = int(v.Get("height").Int())
		img.Alignment = document.ParseAlignment(v.Get("alignment").String())
		n = img

	case document.KindRule.String():
		n = document.NewRule()

	case document.KindCodeBlock.String():
		n = document.NewCodeBlock(v.Get("code").String(), v.Get("language").String())

	default:
		n = document.NewParagraph()
	}

	if id := v.Get("id").String(); id != "" {
		document.RestoreID(n, id)
	}
	return n
}

// unmarshalTable rebuilds a table grid. Ragged or empty cell arrays are
// tolerated; the result is always at least 1x1 and rectangular.
func unmarshalTable(v gjson.Result) *document.Table {
	rows := v.Get("cells").Array()
	cols := 0
	for _, row := range rows {
		if n := len(row.Array()); n > cols {
			cols = n
		}
	}

	tbl := document.NewTable(len(rows), cols)
	for r, row := range rows {
		for c, cellVal := range row.Array() {
			cell := tbl.Cell(r, c)
			cell.Text = unmarshalText(cellVal.Get("text"))
			cell.Background = cellVal.Get("background").String()
			cell.Alignment = document.ParseAlignment(cellVal.Get("alignment").String())
		}
	}
	tbl.HasHeader = v.Get("hasHeader").Bool()
	tbl.Style = document.ParseTableStyle(v.Get("style").String())
	return tbl
}

// unmarshalText rebuilds attributed text. Span construction clamps and
// drops invalid ranges, so hand-edited offsets cannot corrupt the result.
func unmarshalText(v gjson.Result) text.Text {
	str := v.Get("text").String()
	var spans []text.Span
	v.Get("spans").ForEach(func(_, sp gjson.Result) bool {
		spans = append(spans, text.Span{
			Start: int(sp.Get("start").Int()),
			End:   int(sp.Get("end").Int()),
			Attrs: unmarshalAttributes(sp.Get("attributes")),
		})
		return true
	})
	return text.NewWithSpans(str, spans)
}

func unmarshalAttributes(v gjson.Result) text.Attributes {
	attrs := text.Attributes{
		Bold:            v.Get("bold").Bool(),
		Italic:          v.Get("italic").Bool(),
		Underline:       v.Get("underline").Bool(),
		Strikethrough:   v.Get("strikethrough").Bool(),
		Subscript:       v.Get("subscript").Bool(),
		Superscript:     v.Get("superscript").Bool(),
		Code:            v.Get("code").Bool(),
		TextColor:       v.Get("textColor").String(),
		BackgroundColor: v.Get("backgroundColor").String(),
		FontSize:        v.Get("fontSize").Float(),
		FontFamily:      v.Get("fontFamily").String(),
		LinkURL:         v.Get("linkUrl").String(),
	}
	v.Get("clear").ForEach(func(_, name gjson.Result) bool {
		if f, ok := text.ParseFormat(name.String()); ok {
			attrs = attrs.WithCleared(f)
		}
		return true
	})
	return attrs
}

func clampIndent(v gjson.Result) int {
	if n := int(v.Int()); n > 0 {
		return n
	}
	return 0
}

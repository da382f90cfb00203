package htmlconv

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

// DefaultCSS is the style block injected into full-document exports when no
// custom CSS is configured.
const DefaultCSS = `body { font-family: sans-serif; max-width: 50rem; margin: 2rem auto; line-height: 1.5; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
pre { background: #f5f5f5; padding: 0.75rem; overflow-x: auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
img { max-width: 100%; }`

// Options configures the exporter.
type Options struct {
	// FullDocument wraps the fragment in <html>/<head>/<body> with a meta
	// charset, title, and style block.
	FullDocument bool

	// Title is the document title for full-document exports.
	Title string

	// CSS overrides DefaultCSS for full-document exports.
	CSS string
}

// Exporter renders a document as HTML.
type Exporter struct {
	opts Options
}

// NewExporter creates an exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export renders the document. Without FullDocument the result is a
// fragment: one line of markup per block, no <html>/<body> wrapper.
func (e *Exporter) Export(doc *document.Document) string {
	var b strings.Builder

	if e.opts.FullDocument {
		css := e.opts.CSS
		if css == "" {
			css = DefaultCSS
		}
		b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(e.opts.Title))
		fmt.Fprintf(&b, "<style>\n%s\n</style>\n</head>\n<body>\n", css)
	}

	// State machine grouping consecutive list items of the same type.
	openList := document.ListType(-1)
	closeList := func() {
		if openList >= 0 {
			b.WriteString(listCloseTag(openList))
			b.WriteByte('\n')
			openList = -1
		}
	}

	for _, node := range doc.Nodes() {
		li, isList := node.(*document.ListItem)
		if !isList {
			closeList()
		} else if openList >= 0 && openList != li.ListType {
			closeList()
		}

		switch n := node.(type) {
		case *document.Paragraph:
			writeParagraph(&b, n)
		case *document.ListItem:
			if openList < 0 {
				b.WriteString(listOpenTag(n.ListType))
				b.WriteByte('\n')
				openList = n.ListType
			}
			writeListItem(&b, n)
		case *document.Table:
			writeTable(&b, n)
		case *document.Image:
			writeImage(&b, n)
		case *document.Rule:
			b.WriteString("<hr>\n")
		case *document.CodeBlock:
			writeCodeBlock(&b, n)
		}
	}
	closeList()

	if e.opts.FullDocument {
		b.WriteString("</body>\n</html>\n")
		return b.String()
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func listOpenTag(lt document.ListType) string {
	if lt == document.ListNumbered {
		return "<ol>"
	}
	return "<ul>"
}

func listCloseTag(lt document.ListType) string {
	if lt == document.ListNumbered {
		return "</ol>"
	}
	return "</ul>"
}

// blockTag maps a paragraph block type to its HTML tag.
func blockTag(bt document.BlockType) string {
	if lvl := bt.HeadingLevel(); lvl > 0 {
		return fmt.Sprintf("h%d", lvl)
	}
	switch bt {
	case document.BlockQuote:
		return "blockquote"
	case document.BlockPreformatted:
		return "pre"
	default:
		return "p"
	}
}

// blockStyle builds the style attribute for alignment and indent, or "".
func blockStyle(align document.Alignment, indent int) string {
	var parts []string
	if align != document.AlignLeft {
		parts = append(parts, "text-align:"+align.String())
	}
	if indent > 0 {
		parts = append(parts, fmt.Sprintf("margin-left:%dpx", indent*40))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" style=\"%s\"", strings.Join(parts, ";"))
}

func writeParagraph(b *strings.Builder, p *document.Paragraph) {
	tag := blockTag(p.BlockType)
	fmt.Fprintf(b, "<%s%s>%s</%s>\n", tag, blockStyle(p.Alignment, p.Indent), renderText(p.Text), tag)
}

func writeListItem(b *strings.Builder, li *document.ListItem) {
	fmt.Fprintf(b, "<li%s>%s</li>\n", blockStyle(document.AlignLeft, li.Indent), renderText(li.Text))
}

func writeImage(b *strings.Builder, img *document.Image) {
	b.WriteString("<img src=\"")
	b.WriteString(html.EscapeString(img.Src))
	b.WriteString("\" alt=\"")
	b.WriteString(html.EscapeString(img.Alt))
	b.WriteByte('"')
	if img.Width > 0 {
		fmt.Fprintf(b, " width=\"%d\"", img.Width)
	}
	if img.Height > 0 {
		fmt.Fprintf(b, " height=\"%d\"", img.Height)
	}
	if img.Alignment != document.AlignLeft {
		fmt.Fprintf(b, " style=\"text-align:%s\"", img.Alignment)
	}
	b.WriteString(">\n")
}

func writeCodeBlock(b *strings.Builder, cb *document.CodeBlock) {
	if cb.Language != "" {
		fmt.Fprintf(b, "<pre><code class=\"language-%s\">", html.EscapeString(cb.Language))
	} else {
		b.WriteString("<pre><code>")
	}
	b.WriteString(html.EscapeString(cb.Code))
	b.WriteString("</code></pre>\n")
}

func writeTable(b *strings.Builder, t *document.Table) {
	b.WriteString("<table>\n")
	startRow := 0
	if t.HasHeader && t.RowCount() > 0 {
		b.WriteString("<thead>\n<tr>")
		for c := 0; c < t.ColumnCount(); c++ {
			writeCell(b, t.Cell(0, c), "th")
		}
		b.WriteString("</tr>\n</thead>\n")
		startRow = 1
	}
	b.WriteString("<tbody>\n")
	for r := startRow; r < t.RowCount(); r++ {
		b.WriteString("<tr>")
		for c := 0; c < t.ColumnCount(); c++ {
			writeCell(b, t.Cell(r, c), "td")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

func writeCell(b *strings.Builder, cell *document.Cell, tag string) {
	var parts []string
	if cell.Alignment != document.AlignLeft {
		parts = append(parts, "text-align:"+cell.Alignment.String())
	}
	if hex, ok := normalizeColor(cell.Background); ok {
		parts = append(parts, "background-color:"+hex)
	}
	style := ""
	if len(parts) > 0 {
		style = fmt.Sprintf(" style=\"%s\"", strings.Join(parts, ";"))
	}
	fmt.Fprintf(b, "<%s%s>%s</%s>", tag, style, renderText(cell.Text), tag)
}

// normalizeColor parses a hex color and re-emits it lowercase.
// Unparsable values report false and are skipped.
func normalizeColor(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// renderText renders attributed text as escaped HTML with nested inline
// tags. The text is cut at every span boundary; each segment is wrapped in
// tags for its merged attributes in fixed priority order, formats outermost:
// b, i, u, s, sub, sup, code, then <a href>, then a style <span>.
func renderText(t text.Text) string {
	if t.IsEmpty() {
		return ""
	}

	cuts := segmentOffsets(t)
	var b strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		attrs := t.AttributesAt(start)
		seg := html.EscapeString(t.String()[start:end])
		seg = strings.ReplaceAll(seg, "\n", "<br>")
		b.WriteString(wrapSegment(seg, attrs))
	}
	return b.String()
}

// segmentOffsets returns the sorted unique offsets where attributes can
// change: 0, the text length, and every span boundary.
func segmentOffsets(t text.Text) []int {
	set := map[int]bool{0: true, t.Len(): true}
	for _, sp := range t.Spans() {
		set[sp.Start] = true
		set[sp.End] = true
	}
	cuts := make([]int, 0, len(set))
	for off := range set {
		cuts = append(cuts, off)
	}
	sort.Ints(cuts)
	return cuts
}

// wrapSegment nests the segment in formatting tags, innermost last.
func wrapSegment(seg string, attrs text.Attributes) string {
	if style := inlineStyle(attrs); style != "" {
		seg = fmt.Sprintf("<span style=\"%s\">%s</span>", style, seg)
	}
	if attrs.LinkURL != "" {
		seg = fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(attrs.LinkURL), seg)
	}
	if attrs.Code {
		seg = "<code>" + seg + "</code>"
	}
	if attrs.Superscript {
		seg = "<sup>" + seg + "</sup>"
	}
	if attrs.Subscript {
		seg = "<sub>" + seg + "</sub>"
	}
	if attrs.Strikethrough {
		seg = "<s>" + seg + "</s>"
	}
	if attrs.Underline {
		seg = "<u>" + seg + "</u>"
	}
	if attrs.Italic {
		seg = "<i>" + seg + "</i>"
	}
	if attrs.Bold {
		seg = "<b>" + seg + "</b>"
	}
	return seg
}

// inlineStyle builds the css declarations for color, size, and family.
func inlineStyle(attrs text.Attributes) string {
	var parts []string
	if hex, ok := normalizeColor(attrs.TextColor); ok {
		parts = append(parts, "color:"+hex)
	}
	if hex, ok := normalizeColor(attrs.BackgroundColor); ok {
		parts = append(parts, "background-color:"+hex)
	}
	if attrs.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("font-size:%gpx", attrs.FontSize))
	}
	if attrs.FontFamily != "" {
		parts = append(parts, "font-family:"+html.EscapeString(attrs.FontFamily))
	}
	return strings.Join(parts, ";")
}

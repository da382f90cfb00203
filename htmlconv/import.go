package htmlconv

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	strip "github.com/grokify/html-strip-tags-go"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

var (
	// blockRe recognizes the start of a supported top-level block.
	blockRe = regexp.MustCompile(`(?i)<(p|h[1-6]|blockquote|pre|ul|ol|table|img|hr)\b[^>]*>`)

	// listItemRe extracts list entries from a ul/ol body.
	listItemRe = regexp.MustCompile(`(?is)<li\b[^>]*>(.*?)</li\s*>`)

	// tableRowRe and tableCellRe extract a table's grid.
	tableRowRe  = regexp.MustCompile(`(?is)<tr\b[^>]*>(.*?)</tr\s*>`)
	tableCellRe = regexp.MustCompile(`(?is)<(th|td)\b[^>]*>(.*?)</(?:th|td)\s*>`)

	// codeRe matches an embedded <code> element inside <pre>.
	codeRe = regexp.MustCompile(`(?is)^\s*<code\b([^>]*)>(.*?)</code\s*>\s*$`)

	// langClassRe extracts the language from a class="language-x" attribute.
	langClassRe = regexp.MustCompile(`(?i)language-([\w+-]+)`)

	// brRe collapses <br> variants to newlines.
	brRe = regexp.MustCompile(`(?i)<br\s*/?\s*>`)

	// inlineTokRe tokenizes supported inline formatting tags.
	inlineTokRe = regexp.MustCompile(`(?i)<(/?)(b|strong|i|em|u|s|strike|del|sub|sup|code|a|span)\b[^>]*>`)

	// attrRe matches a name="value" or name='value' attribute pair.
	attrRe = regexp.MustCompile(`(?i)([a-z-]+)\s*=\s*("([^"]*)"|'([^']*)')`)
)

// Importer parses a constrained HTML subset into a document.
type Importer struct{}

// NewImporter creates an importer.
func NewImporter() *Importer {
	return &Importer{}
}

// Import parses the fragment. Unrecognized markup degrades to plain
// paragraphs; malformed or empty input yields a single-empty-paragraph
// document. Import never fails.
func (im *Importer) Import(src string) *document.Document {
	src = stripWrapper(src)
	var nodes []document.Node

	pos := 0
	for pos < len(src) {
		loc := blockRe.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			nodes = appendFallback(nodes, src[pos:])
			break
		}

		// Loose text before the recognized block.
		nodes = appendFallback(nodes, src[pos:pos+loc[0]])

		openTag := src[pos+loc[0] : pos+loc[1]]
		tag := strings.ToLower(src[pos+loc[2] : pos+loc[3]])
		rest := pos + loc[1]

		switch tag {
		case "img":
			nodes = append(nodes, parseImage(openTag))
			pos = rest
		case "hr":
			nodes = append(nodes, document.NewRule())
			pos = rest
		default:
			inner, after := innerUntilClose(src, rest, tag)
			nodes = append(nodes, parseBlock(tag, openTag, inner)...)
			pos = after
		}
	}

	if len(nodes) == 0 {
		return document.New()
	}
	return document.NewWithNodes(nodes)
}

// stripWrapper drops a full-document wrapper down to the body fragment.
func stripWrapper(src string) string {
	lower := strings.ToLower(src)
	if i := strings.Index(lower, "<body"); i >= 0 {
		if j := strings.Index(lower[i:], ">"); j >= 0 {
			src = src[i+j+1:]
			lower = lower[i+j+1:]
		}
	}
	if i := strings.LastIndex(lower, "</body"); i >= 0 {
		src = src[:i]
	}
	return strings.TrimSpace(src)
}

// innerUntilClose returns the content between an opening tag (whose end is
// at start) and its matching close, counting nested same-name opens. With
// no close found the rest of the input is the content (best effort).
func innerUntilClose(src string, start int, tag string) (inner string, after int) {
	lower := strings.ToLower(src)
	depth := 1
	pos := start
	for pos < len(src) {
		open := strings.Index(lower[pos:], "<"+tag)
		close := strings.Index(lower[pos:], "</"+tag)
		if close < 0 {
			return src[start:], len(src)
		}
		if open >= 0 && open < close && isTagBoundary(lower, pos+open+1+len(tag)) {
			depth++
			pos += open + 1 + len(tag)
			continue
		}
		if depth--; depth == 0 {
			end := pos + close
			gt := strings.Index(src[end:], ">")
			if gt < 0 {
				return src[start:end], len(src)
			}
			return src[start:end], end + gt + 1
		}
		pos += close + 2 + len(tag)
	}
	return src[start:], len(src)
}

// isTagBoundary reports whether the byte at idx terminates a tag name.
func isTagBoundary(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	c := s[idx]
	return c == '>' || c == ' ' || c == '\t' || c == '\n' || c == '/'
}

// appendFallback adds a plain paragraph for stray text, if any survives
// tag stripping.
func appendFallback(nodes []document.Node, raw string) []document.Node {
	plain := html.UnescapeString(strip.StripTags(brRe.ReplaceAllString(raw, "\n")))
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nodes
	}
	return append(nodes, document.NewParagraphText(text.New(plain)))
}

// parseBlock converts one recognized container block into nodes.
func parseBlock(tag, openTag, inner string) []document.Node {
	switch tag {
	case "p", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
		p := document.NewParagraphText(parseInline(inner))
		switch tag {
		case "blockquote":
			p.BlockType = document.BlockQuote
		case "p":
		default:
			lvl := int(tag[1] - '0')
			p.BlockType = document.BlockHeading1 + document.BlockType(lvl-1)
		}
		p.Alignment = alignmentFromStyle(attrValue(openTag, "style"))
		return []document.Node{p}

	case "pre":
		if m := codeRe.FindStringSubmatch(inner); m != nil {
			lang := ""
			if lm := langClassRe.FindStringSubmatch(attrValue("<code"+m[1]+">", "class")); lm != nil {
				lang = strings.ToLower(lm[1])
			}
			code := html.UnescapeString(strip.StripTags(m[2]))
			return []document.Node{document.NewCodeBlock(code, lang)}
		}
		p := document.NewParagraphText(parseInline(inner))
		p.BlockType = document.BlockPreformatted
		return []document.Node{p}

	case "ul", "ol":
		lt := document.ListBullet
		if tag == "ol" {
			lt = document.ListNumbered
		}
		var nodes []document.Node
		for _, m := range listItemRe.FindAllStringSubmatch(inner, -1) {
			nodes = append(nodes, document.NewListItem(lt, parseInline(m[1])))
		}
		if nodes == nil {
			// A list with no items degrades to a paragraph.
			return appendFallback(nil, inner)
		}
		return nodes

	case "table":
		if tbl := parseTable(inner); tbl != nil {
			return []document.Node{tbl}
		}
		return appendFallback(nil, inner)
	}
	return appendFallback(nil, inner)
}

// parseImage builds an image node from an <img> open tag.
func parseImage(openTag string) *document.Image {
	img := document.NewImage(html.UnescapeString(attrValue(openTag, "src")), html.UnescapeString(attrValue(openTag, "alt")))
	if w, err := strconv.Atoi(attrValue(openTag, "width")); err == nil && w > 0 {
		img.Width = w
	}
	if h, err := strconv.Atoi(attrValue(openTag, "height")); err == nil && h > 0 {
		img.Height = h
	}
	img.Alignment = alignmentFromStyle(attrValue(openTag, "style"))
	return img
}

// parseTable builds a table node from the rows found in a table body.
// Rows are padded to the widest row so the grid stays rectangular.
func parseTable(inner string) *document.Table {
	rows := tableRowRe.FindAllStringSubmatch(inner, -1)
	if len(rows) == 0 {
		return nil
	}

	type parsedCell struct {
		text   text.Text
		header bool
	}
	var grid [][]parsedCell
	cols := 0
	for _, row := range rows {
		var cells []parsedCell
		for _, cm := range tableCellRe.FindAllStringSubmatch(row[1], -1) {
			cells = append(cells, parsedCell{
				text:   parseInline(cm[2]),
				header: strings.EqualFold(cm[1], "th"),
			})
		}
		if len(cells) == 0 {
			continue
		}
		if len(cells) > cols {
			cols = len(cells)
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 || cols == 0 {
		return nil
	}

	tbl := document.NewTable(len(grid), cols)
	for r, row := range grid {
		for c, cell := range row {
			tbl.SetCellText(r, c, cell.text)
		}
	}
	tbl.HasHeader = grid[0][0].header
	return tbl
}

// inlineFrame tracks one open formatting tag during inline parsing.
type inlineFrame struct {
	tag   string
	attrs text.Attributes
}

// parseInline converts inline markup into attributed text. Formatting tags
// push attribute frames; text runs record spans for the merged attributes
// of all open frames. Unsupported tags are stripped.
func parseInline(src string) text.Text {
	src = brRe.ReplaceAllString(src, "\n")

	var b strings.Builder
	var spans []text.Span
	var stack []inlineFrame

	active := func() text.Attributes {
		var acc text.Attributes
		for _, f := range stack {
			acc = acc.Merge(f.attrs)
		}
		return acc
	}

	emit := func(raw string) {
		plain := html.UnescapeString(strip.StripTags(raw))
		if plain == "" {
			return
		}
		start := b.Len()
		b.WriteString(plain)
		if attrs := active(); !attrs.IsZero() {
			spans = append(spans, text.Span{Start: start, End: b.Len(), Attrs: attrs})
		}
	}

	pos := 0
	for _, loc := range inlineTokRe.FindAllStringSubmatchIndex(src, -1) {
		emit(src[pos:loc[0]])
		pos = loc[1]

		closing := loc[3] > loc[2]
		tag := strings.ToLower(src[loc[4]:loc[5]])
		if closing {
			// Pop the innermost matching frame; stray closers are ignored.
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == canonicalTag(tag) {
					stack = append(stack[:i], stack[i+1:]...)
					break
				}
			}
			continue
		}
		stack = append(stack, inlineFrame{
			tag:   canonicalTag(tag),
			attrs: inlineAttrs(tag, src[loc[0]:loc[1]]),
		})
	}
	emit(src[pos:])

	return text.NewWithSpans(b.String(), spans)
}

// canonicalTag folds tag aliases (strong→b, em→i, strike/del→s).
func canonicalTag(tag string) string {
	switch tag {
	case "strong":
		return "b"
	case "em":
		return "i"
	case "strike", "del":
		return "s"
	default:
		return tag
	}
}

// inlineAttrs maps an inline open tag to the attributes it contributes.
func inlineAttrs(tag, openTag string) text.Attributes {
	switch canonicalTag(tag) {
	case "b":
		return text.Attributes{Bold: true}
	case "i":
		return text.Attributes{Italic: true}
	case "u":
		return text.Attributes{Underline: true}
	case "s":
		return text.Attributes{Strikethrough: true}
	case "sub":
		return text.Attributes{Subscript: true}
	case "sup":
		return text.Attributes{Superscript: true}
	case "code":
		return text.Attributes{Code: true}
	case "a":
		return text.Attributes{LinkURL: html.UnescapeString(attrValue(openTag, "href"))}
	case "span":
		return styleAttributes(attrValue(openTag, "style"))
	default:
		return text.Attributes{}
	}
}

// attrValue extracts a quoted attribute value from a tag's text, or "".
func attrValue(tagText, name string) string {
	for _, m := range attrRe.FindAllStringSubmatch(tagText, -1) {
		if strings.EqualFold(m[1], name) {
			if m[3] != "" {
				return m[3]
			}
			return m[4]
		}
	}
	return ""
}

// styleAttributes parses an inline css declaration list into text
// attributes. Unparsable declarations are skipped.
func styleAttributes(style string) text.Attributes {
	var attrs text.Attributes
	if style == "" {
		return attrs
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return attrs
	}
	for _, d := range decls {
		val := strings.TrimSpace(d.Value)
		switch strings.ToLower(d.Property) {
		case "color":
			if c, err := colorful.Hex(val); err == nil {
				attrs.TextColor = c.Hex()
			}
		case "background-color":
			if c, err := colorful.Hex(val); err == nil {
				attrs.BackgroundColor = c.Hex()
			}
		case "font-size":
			if size, ok := parseSize(val); ok {
				attrs.FontSize = size
			}
		case "font-family":
			attrs.FontFamily = strings.Trim(val, `"' `)
		case "font-weight":
			if val == "bold" || val == "700" {
				attrs.Bold = true
			}
		case "font-style":
			if val == "italic" {
				attrs.Italic = true
			}
		case "text-decoration":
			if strings.Contains(val, "underline") {
				attrs.Underline = true
			}
			if strings.Contains(val, "line-through") {
				attrs.Strikethrough = true
			}
		}
	}
	return attrs
}

// parseSize parses a css length like "14px" or "12pt" to a point-free
// numeric size. Unknown units and bad numbers are skipped.
func parseSize(val string) (float64, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	for _, unit := range []string{"px", "pt", "em", "rem"} {
		if strings.HasSuffix(val, unit) {
			val = strings.TrimSuffix(val, unit)
			break
		}
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

// alignmentFromStyle reads text-align out of a style attribute.
func alignmentFromStyle(style string) document.Alignment {
	if style == "" {
		return document.AlignLeft
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return document.AlignLeft
	}
	for _, d := range decls {
		if strings.EqualFold(d.Property, "text-align") {
			return document.ParseAlignment(strings.ToLower(strings.TrimSpace(d.Value)))
		}
	}
	return document.AlignLeft
}

package htmlconv

import (
	"testing"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

func importOne(t *testing.T, src string) document.Node {
	t.Helper()
	doc := NewImporter().Import(src)
	nodes := doc.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("Import(%q) produced %d nodes, want 1", src, len(nodes))
	}
	return nodes[0]
}

func importParagraph(t *testing.T, src string) *document.Paragraph {
	t.Helper()
	p, ok := importOne(t, src).(*document.Paragraph)
	if !ok {
		t.Fatalf("Import(%q) did not produce a paragraph", src)
	}
	return p
}

func TestImportHeading(t *testing.T) {
	p := importParagraph(t, "<h1>Hi</h1>")
	if p.BlockType != document.BlockHeading1 {
		t.Errorf("BlockType = %v, want heading1", p.BlockType)
	}
	if got := p.Text.String(); got != "Hi" {
		t.Errorf("text = %q, want %q", got, "Hi")
	}
}

func TestImportBlockText(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantText  string
		wantBlock document.BlockType
	}{
		{"paragraph", "<p>hello</p>", "hello", document.BlockParagraph},
		{"heading 3", "<h3>sub</h3>", "sub", document.BlockHeading3},
		{"blockquote", "<blockquote>quoted</blockquote>", "quoted", document.BlockQuote},
		{"entities decoded", "<p>a &amp; b &lt; c</p>", "a & b < c", document.BlockParagraph},
		{"br becomes newline", "<p>one<br>two</p>", "one\ntwo", document.BlockParagraph},
		{"self-closing br", "<p>one<br/>two</p>", "one\ntwo", document.BlockParagraph},
		{"unknown inline stripped", "<p>a <kbd>key</kbd> b</p>", "a key b", document.BlockParagraph},
		{"pre without code", "<pre>  spaced</pre>", "  spaced", document.BlockPreformatted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := importParagraph(t, tt.src)
			if got := p.Text.String(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if p.BlockType != tt.wantBlock {
				t.Errorf("block type = %v, want %v", p.BlockType, tt.wantBlock)
			}
		})
	}
}

func TestImportAlignedParagraph(t *testing.T) {
	p := importParagraph(t, `<p style="text-align:center">mid</p>`)
	if p.Alignment != document.AlignCenter {
		t.Errorf("alignment = %v, want center", p.Alignment)
	}
}

func TestImportLists(t *testing.T) {
	doc := NewImporter().Import("<ul><li>a</li><li>b</li></ul><ol><li>c</li></ol>")
	nodes := doc.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	wantTypes := []document.ListType{document.ListBullet, document.ListBullet, document.ListNumbered}
	wantText := []string{"a", "b", "c"}
	for i, n := range nodes {
		li, ok := n.(*document.ListItem)
		if !ok {
			t.Fatalf("node %d is %T, want *ListItem", i, n)
		}
		if li.ListType != wantTypes[i] {
			t.Errorf("node %d list type = %v, want %v", i, li.ListType, wantTypes[i])
		}
		if got := li.Text.String(); got != wantText[i] {
			t.Errorf("node %d text = %q, want %q", i, got, wantText[i])
		}
	}
}

func TestImportInlineFormatting(t *testing.T) {
	p := importParagraph(t, "<p><b>he</b><i>llo</i></p>")
	if got := p.Text.String(); got != "hello" {
		t.Fatalf("text = %q", got)
	}
	if !p.Text.AttributesAt(0).Bold {
		t.Error("offset 0 should be bold")
	}
	if p.Text.AttributesAt(2).Bold {
		t.Error("offset 2 should not be bold")
	}
	if !p.Text.AttributesAt(2).Italic {
		t.Error("offset 2 should be italic")
	}
}

func TestImportInlineAliases(t *testing.T) {
	p := importParagraph(t, "<p><strong>a</strong><em>b</em><del>c</del></p>")
	if !p.Text.AttributesAt(0).Bold {
		t.Error("strong should map to bold")
	}
	if !p.Text.AttributesAt(1).Italic {
		t.Error("em should map to italic")
	}
	if !p.Text.AttributesAt(2).Strikethrough {
		t.Error("del should map to strikethrough")
	}
}

func TestImportNestedInline(t *testing.T) {
	p := importParagraph(t, "<p><b><i>x</i></b></p>")
	attrs := p.Text.AttributesAt(0)
	if !attrs.Bold || !attrs.Italic {
		t.Errorf("attrs = %+v, want bold italic", attrs)
	}
}

func TestImportLink(t *testing.T) {
	p := importParagraph(t, `<p><a href="https://example.com">go</a></p>`)
	if got := p.Text.AttributesAt(0).LinkURL; got != "https://example.com" {
		t.Errorf("LinkURL = %q", got)
	}
}

func TestImportSpanStyle(t *testing.T) {
	p := importParagraph(t, `<p><span style="color:#FF0000; font-size:14px; font-family:serif">x</span></p>`)
	attrs := p.Text.AttributesAt(0)
	if attrs.TextColor != "#ff0000" {
		t.Errorf("TextColor = %q, want #ff0000", attrs.TextColor)
	}
	if attrs.FontSize != 14 {
		t.Errorf("FontSize = %g, want 14", attrs.FontSize)
	}
	if attrs.FontFamily != "serif" {
		t.Errorf("FontFamily = %q, want serif", attrs.FontFamily)
	}
}

func TestImportSpanStyleFlags(t *testing.T) {
	p := importParagraph(t, `<p><span style="font-weight:bold;text-decoration:underline">x</span></p>`)
	attrs := p.Text.AttributesAt(0)
	if !attrs.Bold || !attrs.Underline {
		t.Errorf("attrs = %+v, want bold underline", attrs)
	}
}

func TestImportBadColorSkipped(t *testing.T) {
	p := importParagraph(t, `<p><span style="color:bogus">x</span></p>`)
	if got := p.Text.AttributesAt(0).TextColor; got != "" {
		t.Errorf("TextColor = %q, want empty", got)
	}
}

func TestImportImage(t *testing.T) {
	img, ok := importOne(t, `<img src="pic.png" alt="a pic" width="10" height="20">`).(*document.Image)
	if !ok {
		t.Fatal("want *Image")
	}
	if img.Src != "pic.png" || img.Alt != "a pic" {
		t.Errorf("src/alt = %q/%q", img.Src, img.Alt)
	}
	if img.Width != 10 || img.Height != 20 {
		t.Errorf("dimensions = %dx%d, want 10x20", img.Width, img.Height)
	}
}

func TestImportRule(t *testing.T) {
	if _, ok := importOne(t, "<hr>").(*document.Rule); !ok {
		t.Fatal("want *Rule")
	}
}

func TestImportCodeBlock(t *testing.T) {
	cb, ok := importOne(t, `<pre><code class="language-go">x := 1 &amp;&amp; y</code></pre>`).(*document.CodeBlock)
	if !ok {
		t.Fatal("want *CodeBlock")
	}
	if cb.Language != "go" {
		t.Errorf("Language = %q, want go", cb.Language)
	}
	if cb.Code != "x := 1 && y" {
		t.Errorf("Code = %q", cb.Code)
	}
}

func TestImportTable(t *testing.T) {
	src := "<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>"
	tbl, ok := importOne(t, src).(*document.Table)
	if !ok {
		t.Fatal("want *Table")
	}
	if !tbl.HasHeader {
		t.Error("th first row should set HasHeader")
	}
	if tbl.RowCount() != 2 || tbl.ColumnCount() != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", tbl.RowCount(), tbl.ColumnCount())
	}
	if got := tbl.Cell(0, 1).Text.String(); got != "B" {
		t.Errorf("header cell = %q, want B", got)
	}
	if got := tbl.Cell(1, 0).Text.String(); got != "1" {
		t.Errorf("body cell = %q, want 1", got)
	}
}

func TestImportRaggedTablePadded(t *testing.T) {
	src := "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td></tr></table>"
	tbl, ok := importOne(t, src).(*document.Table)
	if !ok {
		t.Fatal("want *Table")
	}
	if tbl.ColumnCount() != 2 {
		t.Fatalf("cols = %d, want 2", tbl.ColumnCount())
	}
	if got := tbl.Cell(1, 1).Text.String(); got != "" {
		t.Errorf("padded cell = %q, want empty", got)
	}
}

func TestImportLooseText(t *testing.T) {
	p := importParagraph(t, "just loose text")
	if got := p.Text.String(); got != "just loose text" {
		t.Errorf("text = %q", got)
	}
}

func TestImportUnknownBlockFallsBack(t *testing.T) {
	p := importParagraph(t, "<div>wrapped</div>")
	if got := p.Text.String(); got != "wrapped" {
		t.Errorf("text = %q, want %q", got, "wrapped")
	}
}

func TestImportEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "<ul></ul>"} {
		doc := NewImporter().Import(src)
		nodes := doc.Nodes()
		if len(nodes) != 1 {
			t.Fatalf("Import(%q) produced %d nodes, want 1", src, len(nodes))
		}
		if !nodes[0].IsEmpty() {
			t.Errorf("Import(%q) node not empty", src)
		}
	}
}

func TestImportFullDocumentWrapper(t *testing.T) {
	src := "<!DOCTYPE html>\n<html>\n<head><title>T</title><style>p{}</style></head>\n<body>\n<p>hi</p>\n</body>\n</html>"
	p := importParagraph(t, src)
	if got := p.Text.String(); got != "hi" {
		t.Errorf("text = %q, want %q", got, "hi")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	original := document.NewWithNodes([]document.Node{
		document.NewHeading(1, text.New("Title")),
		document.NewParagraphText(text.NewStyled("bold text", text.Attributes{Bold: true})),
		document.NewListItem(document.ListBullet, text.New("item")),
		document.NewRule(),
		document.NewCodeBlock("fmt.Println()", "go"),
	})

	restored := NewImporter().Import(NewExporter(Options{}).Export(original))

	origNodes := original.Nodes()
	gotNodes := restored.Nodes()
	if len(gotNodes) != len(origNodes) {
		t.Fatalf("round trip: %d nodes, want %d", len(gotNodes), len(origNodes))
	}
	for i := range origNodes {
		if gotNodes[i].Kind() != origNodes[i].Kind() {
			t.Errorf("node %d kind = %v, want %v", i, gotNodes[i].Kind(), origNodes[i].Kind())
		}
		if gotNodes[i].PlainText() != origNodes[i].PlainText() {
			t.Errorf("node %d text = %q, want %q", i, gotNodes[i].PlainText(), origNodes[i].PlainText())
		}
	}

	if !restored.Nodes()[1].(*document.Paragraph).Text.AttributesAt(0).Bold {
		t.Error("bold formatting lost in round trip")
	}
}

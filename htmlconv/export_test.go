package htmlconv

import (
	"strings"
	"testing"

	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/text"
)

func exportFragment(t *testing.T, nodes ...document.Node) string {
	t.Helper()
	return NewExporter(Options{}).Export(document.NewWithNodes(nodes))
}

func TestExportBlocks(t *testing.T) {
	tests := []struct {
		name string
		node document.Node
		want string
	}{
		{
			name: "plain paragraph",
			node: document.NewParagraphText(text.New("hello")),
			want: "<p>hello</p>",
		},
		{
			name: "heading",
			node: document.NewHeading(1, text.New("Hi")),
			want: "<h1>Hi</h1>",
		},
		{
			name: "deep heading",
			node: document.NewHeading(6, text.New("fine print")),
			want: "<h6>fine print</h6>",
		},
		{
			name: "escaped entities",
			node: document.NewParagraphText(text.New("a < b & c")),
			want: "<p>a &lt; b &amp; c</p>",
		},
		{
			name: "newline becomes br",
			node: document.NewParagraphText(text.New("one\ntwo")),
			want: "<p>one<br>two</p>",
		},
		{
			name: "horizontal rule",
			node: document.NewRule(),
			want: "<hr>",
		},
		{
			name: "code block with language",
			node: document.NewCodeBlock("x := 1", "go"),
			want: "<pre><code class=\"language-go\">x := 1</code></pre>",
		},
		{
			name: "code block without language",
			node: document.NewCodeBlock("raw", ""),
			want: "<pre><code>raw</code></pre>",
		},
		{
			name: "image with dimensions",
			node: func() document.Node {
				img := document.NewImage("pic.png", "a pic")
				img.Width = 10
				img.Height = 20
				return img
			}(),
			want: "<img src=\"pic.png\" alt=\"a pic\" width=\"10\" height=\"20\">",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportFragment(t, tt.node); got != tt.want {
				t.Errorf("Export() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportBlockquote(t *testing.T) {
	p := document.NewParagraphText(text.New("quoted"))
	p.BlockType = document.BlockQuote
	if got := exportFragment(t, p); got != "<blockquote>quoted</blockquote>" {
		t.Errorf("Export() = %q", got)
	}
}

func TestExportAlignmentAndIndent(t *testing.T) {
	p := document.NewParagraphText(text.New("x"))
	p.Alignment = document.AlignCenter
	p.Indent = 2
	want := "<p style=\"text-align:center;margin-left:80px\">x</p>"
	if got := exportFragment(t, p); got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
}

func TestExportListGrouping(t *testing.T) {
	got := exportFragment(t,
		document.NewListItem(document.ListBullet, text.New("a")),
		document.NewListItem(document.ListBullet, text.New("b")),
		document.NewListItem(document.ListNumbered, text.New("c")),
		document.NewParagraphText(text.New("d")),
	)
	want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n<ol>\n<li>c</li>\n</ol>\n<p>d</p>"
	if got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
}

func TestExportTrailingListClosed(t *testing.T) {
	got := exportFragment(t, document.NewListItem(document.ListBullet, text.New("last")))
	want := "<ul>\n<li>last</li>\n</ul>"
	if got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
}

func TestExportInlineFormatting(t *testing.T) {
	tests := []struct {
		name string
		txt  text.Text
		want string
	}{
		{
			name: "bold run",
			txt:  text.NewStyled("bold", text.Attributes{Bold: true}),
			want: "<p><b>bold</b></p>",
		},
		{
			name: "adjacent spans",
			txt: text.NewWithSpans("hello", []text.Span{
				{Start: 0, End: 2, Attrs: text.Attributes{Bold: true}},
				{Start: 2, End: 5, Attrs: text.Attributes{Italic: true}},
			}),
			want: "<p><b>he</b><i>llo</i></p>",
		},
		{
			name: "nested formats fixed order",
			txt:  text.NewStyled("x", text.Attributes{Bold: true, Italic: true, Code: true}),
			want: "<p><b><i><code>x</code></i></b></p>",
		},
		{
			name: "link wraps style span",
			txt:  text.NewStyled("go", text.Attributes{LinkURL: "https://example.com", TextColor: "#FF0000"}),
			want: "<p><a href=\"https://example.com\"><span style=\"color:#ff0000\">go</span></a></p>",
		},
		{
			name: "font size and family",
			txt:  text.NewStyled("big", text.Attributes{FontSize: 14, FontFamily: "serif"}),
			want: "<p><span style=\"font-size:14px;font-family:serif\">big</span></p>",
		},
		{
			name: "invalid color skipped",
			txt:  text.NewStyled("x", text.Attributes{TextColor: "not-a-color"}),
			want: "<p>x</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exportFragment(t, document.NewParagraphText(tt.txt))
			if got != tt.want {
				t.Errorf("Export() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportTable(t *testing.T) {
	tbl := document.NewTable(2, 2)
	tbl.HasHeader = true
	tbl.SetCellText(0, 0, text.New("A"))
	tbl.SetCellText(0, 1, text.New("B"))
	tbl.SetCellText(1, 0, text.New("1"))
	tbl.SetCellText(1, 1, text.New("2"))

	got := exportFragment(t, tbl)
	want := "<table>\n<thead>\n<tr><th>A</th><th>B</th></tr>\n</thead>\n<tbody>\n<tr><td>1</td><td>2</td></tr>\n</tbody>\n</table>"
	if got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
}

func TestExportTableNoHeader(t *testing.T) {
	tbl := document.NewTable(1, 1)
	tbl.SetCellText(0, 0, text.New("only"))
	got := exportFragment(t, tbl)
	if strings.Contains(got, "<thead>") {
		t.Errorf("headerless table emitted <thead>: %q", got)
	}
	if !strings.Contains(got, "<td>only</td>") {
		t.Errorf("missing cell in %q", got)
	}
}

func TestExportFullDocument(t *testing.T) {
	doc := document.NewWithNodes([]document.Node{document.NewParagraphText(text.New("body"))})
	got := NewExporter(Options{FullDocument: true, Title: "My <Doc>"}).Export(doc)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<meta charset=\"utf-8\">",
		"<title>My &lt;Doc&gt;</title>",
		DefaultCSS,
		"<p>body</p>",
		"</html>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("full document missing %q", want)
		}
	}
}

func TestExportCustomCSS(t *testing.T) {
	doc := document.New()
	got := NewExporter(Options{FullDocument: true, CSS: "body{}"}).Export(doc)
	if !strings.Contains(got, "body{}") {
		t.Errorf("custom css not emitted: %q", got)
	}
	if strings.Contains(got, DefaultCSS) {
		t.Error("default css emitted alongside custom css")
	}
}

func TestExportEmptyDocument(t *testing.T) {
	if got := exportFragment(t, document.NewParagraph()); got != "<p></p>" {
		t.Errorf("Export() = %q, want %q", got, "<p></p>")
	}
}

package document

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Stats summarizes the textual content of a document.
type Stats struct {
	Bytes     int
	Runes     int
	Graphemes int // User-perceived characters
	Words     int
	Nodes     int
}

// Stats computes text statistics over the document's plain-text projection.
// Grapheme and word boundaries follow Unicode segmentation rules.
func (d *Document) Stats() Stats {
	plain := d.PlainText()
	s := Stats{
		Bytes:     len(plain),
		Runes:     utf8.RuneCountInString(plain),
		Graphemes: uniseg.GraphemeClusterCount(plain),
		Nodes:     len(d.nodes),
	}

	remaining := plain
	state := -1
	for len(remaining) > 0 {
		var word string
		word, remaining, state = uniseg.FirstWordInString(remaining, state)
		if strings.ContainsFunc(word, isWordRune) {
			s.Words++
		}
	}
	return s
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

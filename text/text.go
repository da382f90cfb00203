package text

import "fmt"

// Text is an immutable attributed string. The zero value is an empty Text.
type Text struct {
	str   string
	spans []Span
}

// New creates a Text with no formatting.
func New(s string) Text {
	return Text{str: s}
}

// NewStyled creates a Text with a single span covering the whole string.
func NewStyled(s string, attrs Attributes) Text {
	t := Text{str: s}
	if len(s) > 0 && !attrs.IsZero() {
		t.spans = []Span{{Start: 0, End: len(s), Attrs: attrs}}
	}
	return t
}

// NewWithSpans creates a Text from a string and a span list.
// Spans are normalized: clamped to the string, empties dropped, sorted.
func NewWithSpans(s string, spans []Span) Text {
	return Text{str: s, spans: normalizeSpans(cloneSpans(spans), len(s))}
}

// String returns the plain text content.
func (t Text) String() string { return t.str }

// Len returns the length of the backing string in bytes.
func (t Text) Len() int { return len(t.str) }

// IsEmpty reports whether the text is empty.
func (t Text) IsEmpty() bool { return len(t.str) == 0 }

// Spans returns a copy of the span list.
func (t Text) Spans() []Span {
	return cloneSpans(t.spans)
}

// Insert returns a new Text with s inserted at the given byte offset.
// Spans entirely before the insertion point are unchanged, spans at or after
// it are shifted, and spans straddling it are extended so the inserted text
// inherits their attributes. If attrs is non-nil and non-zero, an additional
// span covering exactly the inserted range is appended.
func (t Text) Insert(offset int, s string, attrs *Attributes) (Text, error) {
	if offset < 0 || offset > len(t.str) {
		return t, fmt.Errorf("insert at %d in text of length %d: %w", offset, len(t.str), ErrOffsetOutOfRange)
	}
	if len(s) == 0 {
		return t, nil
	}

	n := len(s)
	out := make([]Span, 0, len(t.spans)+1)
	for _, sp := range t.spans {
		switch {
		case sp.End <= offset:
			// Entirely before the insertion point.
		case sp.Start >= offset:
			sp.Start += n
			sp.End += n
		default:
			// Straddles the insertion point; extend.
			sp.End += n
		}
		out = append(out, sp)
	}
	if attrs != nil && !attrs.IsZero() {
		out = append(out, Span{Start: offset, End: offset + n, Attrs: *attrs})
	}

	str := t.str[:offset] + s + t.str[offset:]
	return Text{str: str, spans: normalizeSpans(out, len(str))}, nil
}

// Delete returns a new Text with the byte range [start, end) removed.
// Spans before the range are unchanged, spans after it shift back, spans
// inside it are dropped, and spans overlapping it are clipped or shrunk.
func (t Text) Delete(start, end int) (Text, error) {
	if start < 0 || end > len(t.str) || start > end {
		return t, fmt.Errorf("delete range [%d,%d) in text of length %d: %w", start, end, len(t.str), ErrRangeInvalid)
	}
	if start == end {
		return t, nil
	}

	n := end - start
	out := make([]Span, 0, len(t.spans))
	for _, sp := range t.spans {
		switch {
		case sp.End <= start:
			// Entirely before the deleted range.
		case sp.Start >= end:
			sp.Start -= n
			sp.End -= n
		case sp.Start >= start && sp.End <= end:
			// Entirely inside; dropped.
			continue
		case sp.Start < start && sp.End > end:
			// Strictly contains the deleted range; shrink.
			sp.End -= n
		case sp.Start < start:
			// Overlaps the leading edge; clip to it.
			sp.End = start
		default:
			// Overlaps the trailing edge; clip and shift.
			sp.Start = start
			sp.End -= n
		}
		out = append(out, sp)
	}

	str := t.str[:start] + t.str[end:]
	return Text{str: str, spans: normalizeSpans(out, len(str))}, nil
}

// ApplyAttributes returns a new Text with an additional span [start, end)
// carrying attrs. Prior overlapping spans are retained underneath; conflicts
// resolve on read. An invalid range returns the receiver unchanged.
func (t Text) ApplyAttributes(start, end int, attrs Attributes) Text {
	if start < 0 || end > len(t.str) || start >= end {
		return t
	}
	out := append(cloneSpans(t.spans), Span{Start: start, End: end, Attrs: attrs})
	return Text{str: t.str, spans: normalizeSpans(out, len(t.str))}
}

// ToggleFormat toggles a single format flag over [start, end). If the flag
// holds at every offset of the range, a negation layer is applied on top;
// otherwise the positive flag is layered. Toggling subscript on clears
// superscript over the range and vice versa.
func (t Text) ToggleFormat(start, end int, f Format) Text {
	if start < 0 || end > len(t.str) || start >= end {
		return t
	}

	applied := true
	for i := start; i < end; i++ {
		if !t.AttributesAt(i).Has(f) {
			applied = false
			break
		}
	}

	if applied {
		return t.ApplyAttributes(start, end, negated(f))
	}

	attrs := NewFormatAttributes(f)
	switch f {
	case FormatSubscript:
		attrs.clear = 1 << uint(FormatSuperscript)
	case FormatSuperscript:
		attrs.clear = 1 << uint(FormatSubscript)
	}
	return t.ApplyAttributes(start, end, attrs)
}

// AttributesAt returns the merged attributes at the given byte offset.
// Spans are folded in list order, so later spans win on optional fields.
func (t Text) AttributesAt(offset int) Attributes {
	var acc Attributes
	for _, sp := range t.spans {
		if sp.Contains(offset) {
			acc = acc.Merge(sp.Attrs)
		}
	}
	return acc
}

// HasFormat reports whether the flag holds at every offset of [start, end).
// An empty or invalid range reports false.
func (t Text) HasFormat(start, end int, f Format) bool {
	if start < 0 || end > len(t.str) || start >= end {
		return false
	}
	for i := start; i < end; i++ {
		if !t.AttributesAt(i).Has(f) {
			return false
		}
	}
	return true
}

// Substring returns the attributed range [start, end) as a new Text, with
// spans translated and clipped to it.
func (t Text) Substring(start, end int) (Text, error) {
	if start < 0 || end > len(t.str) || start > end {
		return Text{}, fmt.Errorf("substring [%d,%d) of text of length %d: %w", start, end, len(t.str), ErrRangeInvalid)
	}

	out := make([]Span, 0, len(t.spans))
	for _, sp := range t.spans {
		if sp.End <= start || sp.Start >= end {
			continue
		}
		s := sp.Start
		if s < start {
			s = start
		}
		e := sp.End
		if e > end {
			e = end
		}
		out = append(out, Span{Start: s - start, End: e - start, Attrs: sp.Attrs})
	}

	str := t.str[start:end]
	return Text{str: str, spans: normalizeSpans(out, len(str))}, nil
}

// Concat returns the concatenation of both texts, with the other's spans
// translated past the receiver's length.
func (t Text) Concat(other Text) Text {
	out := make([]Span, 0, len(t.spans)+len(other.spans))
	out = append(out, t.spans...)
	for _, sp := range other.spans {
		out = append(out, Span{Start: sp.Start + len(t.str), End: sp.End + len(t.str), Attrs: sp.Attrs})
	}
	str := t.str + other.str
	return Text{str: str, spans: normalizeSpans(out, len(str))}
}

// Equal reports whether both texts have the same content and span list.
func (t Text) Equal(other Text) bool {
	if t.str != other.str || len(t.spans) != len(other.spans) {
		return false
	}
	for i := range t.spans {
		if t.spans[i] != other.spans[i] {
			return false
		}
	}
	return true
}

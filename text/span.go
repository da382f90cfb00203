package text

import "sort"

// Span applies an Attributes value to the half-open byte range [Start, End)
// of a Text's backing string.
type Span struct {
	Start int
	End   int
	Attrs Attributes
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// normalizeSpans drops empty or inverted spans, clamps to [0, length], and
// sorts by Start (stable, so list order among equal starts is preserved for
// merge-on-read semantics).
func normalizeSpans(spans []Span, length int) []Span {
	out := spans[:0]
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > length {
			s.End = length
		}
		if s.Start >= s.End {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// cloneSpans returns a copy of the span list.
func cloneSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	out := make([]Span, len(spans))
	copy(out, spans)
	return out
}

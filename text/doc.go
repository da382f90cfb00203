// Package text provides an immutable attributed string: a plain text value
// plus a list of formatting spans.
//
// A Text is never mutated in place. Every edit operation (Insert, Delete,
// ApplyAttributes, ToggleFormat, Substring, Concat) returns a new Text with
// spans shifted, clipped, split, or dropped as needed. Key concepts:
//
// # Spans
//
// A Span covers the half-open byte range [Start, End) of the backing string
// and carries an Attributes value. The span list is kept sorted by Start and
// never contains empty spans, but it is NOT canonical: overlapping and
// redundant spans are allowed. Conflicts are resolved on read.
//
// # Merge-on-read
//
// AttributesAt folds Attributes.Merge over every span containing an offset,
// in list order. Boolean flags accumulate with OR; for optional fields
// (colors, font, link) later spans win. This makes layered edits cheap:
// applying an attribute appends a span rather than rewriting the list.
//
// # Offsets
//
// All offsets are byte offsets into the UTF-8 backing string. Operations
// that receive an invalid offset or range return ErrOffsetOutOfRange or
// ErrRangeInvalid; they never panic.
package text

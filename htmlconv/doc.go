// Package htmlconv converts documents to and from HTML.
//
// The exporter is a pure transform: it walks the node list in order and
// produces semantically equivalent markup, grouping consecutive list items
// of the same type into a single <ul> or <ol> and rendering inline spans as
// nested formatting tags. All text and attribute values are entity-escaped.
//
// The importer is deliberately a best-effort subset parser built on regular
// expressions, not an HTML tokenizer. It recognizes the block tags the
// exporter emits plus common inline formatting; anything else degrades to a
// plain paragraph of tag-stripped text. Malformed or empty input yields a
// single-empty-paragraph document. The importer never returns an error.
package htmlconv

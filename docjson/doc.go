// Package docjson serializes documents to and from a versioned JSON
// envelope. Serialization is the only persistence path: documents have no
// backing store, so the JSON form must round-trip plain text, node order,
// and formatting spans.
//
// Deserialization is tolerant. A payload that is not JSON at all is an
// error; within a valid payload, unknown node types fall back to an empty
// paragraph and missing or mistyped fields take their zero defaults.
package docjson

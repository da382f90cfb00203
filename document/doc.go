// Package document provides the block-level document model: a mutable,
// ordered sequence of typed nodes plus the selection contract used by
// editing commands and UI layers.
//
// # Nodes
//
// The node set is closed: Paragraph, ListItem, Table, Image, Rule, and
// CodeBlock, identified by a Kind and dispatched with type switches. Every
// node has a unique, stable id assigned at construction. Nodes own their
// attributed text values exclusively; edits replace the text value wholesale
// rather than mutating it in place.
//
// # Document
//
// A Document is never empty: removing the last node auto-inserts a fresh
// empty paragraph before observers are notified. Every structural mutation
// bumps a monotonic version counter and synchronously notifies registered
// change listeners. Listeners must not mutate the document re-entrantly
// while being notified.
//
// # Selection
//
// NodePosition addresses (nodeId, byte offset, optional table cell);
// Selection is a (Base, Extent) pair ordered by document position via
// Document.ComparePositions. SelectionManager holds the current selection
// for one document and notifies listeners on every change.
//
// The package is single-threaded by design; callers serialize access.
package document

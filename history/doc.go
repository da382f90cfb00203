// Package history provides the command-based mutation and undo/redo engine
// for the document model.
//
// Every mutation is a Command with Execute and Undo methods. A command
// captures, during Execute, exactly the prior state it needs to invert
// itself: the affected node's previous attributed text, the previous
// selection, a removed table row. Undo consumes that captured state.
//
// # History
//
// History holds bounded undo and redo stacks:
//
//	h := NewHistory(100)
//	h.Execute(cmd, ctx)
//	h.Undo(ctx)
//	h.Redo(ctx)
//
// Executing a new command clears the redo stack. Redo re-invokes the
// command's Execute. When the undo stack grows past its limit the oldest
// entries are dropped.
//
// # Merging
//
// Commands that implement the optional Merger interface can coalesce with
// the command on top of the undo stack. InsertTextCommand uses this to fold
// consecutive single-character, non-newline insertions into one undo step.
//
// # Batching
//
// BatchCommand groups child commands into a single undo unit. Children
// execute in order and undo in reverse order, since later children may
// depend on state produced by earlier ones.
package history

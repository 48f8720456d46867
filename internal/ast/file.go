package ast

import (
	"strata/internal/source"
)

// FileEntry is one top-level element in source order: either a declaration
// or a top-level code statement, never both.
type FileEntry struct {
	Item ItemID
	Stmt StmtID
}

// File is the root AST node for one source file.
type File struct {
	Span    source.Span
	Entries []FileEntry
}

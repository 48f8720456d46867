// Package driver runs the per-file pipeline: load, lex, parse, and
// build the scope tree. Every file gets its own FileSet and Builder so
// results never share mutable state across files.
package driver

import (
	"fortio.org/safecast"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/scopes"
	"strata/internal/source"
)

// SourceExt is the file extension the driver picks up.
const SourceExt = ".sta"

// Options bounds a pipeline run.
type Options struct {
	// MaxDiagnostics caps the number of parse diagnostics per file.
	// Zero means the parser default.
	MaxDiagnostics int
	// Jobs bounds directory-level parallelism; zero means GOMAXPROCS.
	Jobs int
	// Verify runs the scope-tree invariant checker after expansion.
	Verify bool
}

// FileResult is everything the pipeline produced for one source file.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	FileID  source.FileID
	Builder *ast.Builder
	ASTFile ast.FileID
	Bag     *diag.Bag
	Tree    *scopes.Tree
}

// Parse loads and parses a single file without building scopes.
func Parse(path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(path, fs, fileID, opts)
}

// Build runs the full pipeline on a single file. The scope tree is
// returned lazy; callers expand as much of it as they need.
func Build(path string, opts Options) (*FileResult, error) {
	res, err := Parse(path, opts)
	if err != nil {
		return nil, err
	}
	res.Tree = scopes.NewTree(res.Builder, res.ASTFile, res.FileSet.Span(res.FileID))
	if opts.Verify {
		res.Tree.ExpandAll()
		if err := res.Tree.Verify(); err != nil {
			return res, err
		}
	}
	return res, nil
}

func parseLoaded(path string, fs *source.FileSet, fileID source.FileID, opts Options) (*FileResult, error) {
	file := fs.Get(fileID)
	builder := ast.NewBuilder(ast.Hints{}, nil)

	var maxErrors uint
	if opts.MaxDiagnostics > 0 {
		var err error
		maxErrors, err = safecast.Conv[uint](opts.MaxDiagnostics)
		if err != nil {
			return nil, err
		}
	}

	result := parser.ParseFile(lexer.New(file), builder, parser.Options{
		MaxErrors: maxErrors,
	})

	return &FileResult{
		Path:    path,
		FileSet: fs,
		File:    file,
		FileID:  fileID,
		Builder: builder,
		ASTFile: result.File,
		Bag:     result.Bag,
	}, nil
}

package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"strata/internal/scopes"
	"strata/internal/source"
)

func newExpandedTree(res *FileResult) *scopes.Tree {
	t := scopes.NewTree(res.Builder, res.ASTFile, res.FileSet.Span(res.FileID))
	t.ExpandAll()
	return t
}

// ListSourceFiles returns the sorted list of source files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BuildDir runs the full pipeline over every source file under dir.
// Each file is processed in its own goroutine with its own FileSet and
// tree; trees are fully expanded before they cross back to the caller,
// so the returned results are safe to read from one thread.
func BuildDir(ctx context.Context, dir string, opts Options) ([]*FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fs := source.NewFileSet()
			fileID, err := fs.Load(path)
			if err != nil {
				return err
			}
			res, err := parseLoaded(path, fs, fileID, opts)
			if err != nil {
				return err
			}
			res.Tree = newExpandedTree(res)
			if opts.Verify {
				if err := res.Tree.Verify(); err != nil {
					return err
				}
			}
			// Index i is unique per goroutine; no lock needed.
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

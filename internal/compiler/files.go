package compiler

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/limiter"
	"github.com/grailbio/base/log"
	"golang.org/x/sync/errgroup"

	"github.com/lhaig/lukasiewicz/internal/config"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
)

// SourceExt is the extension of source files.
const SourceExt = ".luk"

// FileResult is the outcome of compiling one file.
type FileResult struct {
	Path string
	*Result
}

// Discover expands paths into the source files they name. Directories
// are walked for files ending in SourceExt; plain files are taken as
// given. The result is sorted and free of duplicates.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.E("discover", path, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == SourceExt {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.E("discover", path, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// CompileFiles compiles each file on its own builder, at most cfg.Jobs
// at a time. Results keep the order of paths and their diagnostics carry
// the file name. A file that cannot be read stops the whole run.
func CompileFiles(ctx context.Context, paths []string, cfg *config.Config) ([]FileResult, error) {
	cfg = orDefault(cfg)
	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FileResult, len(paths))
	lim := limiter.New()
	lim.Release(jobs)
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		if err := lim.Acquire(gctx, 1); err != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			defer lim.Release(1)
			source, err := os.ReadFile(path)
			if err != nil {
				return errors.E("compile", path, err)
			}
			res := Compile(string(source), cfg)
			stamped := diagnostic.New()
			stamped.Merge(path, res.Diagnostics)
			res.Diagnostics = stamped
			results[i] = FileResult{Path: path, Result: res}
			log.Debug.Printf("compiled %s: %d errors, %d warnings",
				path, stamped.ErrorCount(), stamped.WarningCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

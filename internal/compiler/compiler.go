// Package compiler drives the pipeline: build a validated tree from
// source, then render it with the configured printer.
package compiler

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/backend"
	"github.com/lhaig/lukasiewicz/internal/config"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/linter"
	"github.com/lhaig/lukasiewicz/internal/parser"
	"github.com/lhaig/lukasiewicz/internal/sema"
	"github.com/lhaig/lukasiewicz/internal/symtab"
)

// Result holds the output of a compilation
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	Tree        *ast.Block
	Output      string
}

func orDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// newBuilder wires a fresh symbol table and builder reporting to sink,
// with synthesized code reparsed through the parser.
func newBuilder(sink diagnostic.Sink, cfg *config.Config) *sema.Builder {
	table := symtab.New(sink)
	table.SetHints(cfg.Hints)
	b := sema.New(table)
	parser.Attach(b)
	return b
}

// Build parses and validates source. The tree is returned even when
// diagnostics were raised, so it can still be printed.
func Build(source string, cfg *config.Config) (*ast.Block, *diagnostic.Diagnostics) {
	cfg = orDefault(cfg)
	diags := diagnostic.New()
	tree := parser.ParseFragment(newBuilder(diags, cfg), source)
	if cfg.WarningsAsErrors {
		diags.PromoteWarnings()
	}
	return tree, diags
}

// Print renders tree with the printer registered as mode. Problems found
// while printing are returned as diagnostics; an unknown mode is an error.
func Print(tree ast.Node, mode string, cfg *config.Config) (string, *diagnostic.Diagnostics, error) {
	cfg = orDefault(cfg)
	be, err := backend.Lookup(mode)
	if err != nil {
		return "", nil, err
	}
	diags := diagnostic.New()
	return be.Generate(tree, cfg.Options(diags)), diags, nil
}

// Compile runs the full pipeline: build -> print in cfg.Mode.
// Output is withheld when building raised errors; problems found while
// printing are reported alongside the output.
func Compile(source string, cfg *config.Config) *Result {
	cfg = orDefault(cfg)
	tree, diags := Build(source, cfg)
	res := &Result{Diagnostics: diags, Tree: tree}
	if diags.HasErrors() {
		return res
	}

	out, printed, err := Print(tree, cfg.Mode, cfg)
	if err != nil {
		diags.Errorf(0, 0, "%s", err)
		return res
	}
	diags.Merge("", printed)
	res.Output = out
	return res
}

// Check runs build only (no printing).
func Check(source string, cfg *config.Config) *diagnostic.Diagnostics {
	_, diags := Build(source, cfg)
	return diags
}

// Lint builds source and, when it builds cleanly, adds the style checks.
func Lint(source string, cfg *config.Config) *diagnostic.Diagnostics {
	cfg = orDefault(cfg)
	tree, diags := Build(source, cfg)
	if diags.HasErrors() {
		return diags
	}
	diags.Merge("", linter.Lint(tree))
	if cfg.WarningsAsErrors {
		diags.PromoteWarnings()
	}
	return diags
}

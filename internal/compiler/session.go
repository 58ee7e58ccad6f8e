package compiler

import (
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/backend"
	"github.com/lhaig/lukasiewicz/internal/config"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/parser"
	"github.com/lhaig/lukasiewicz/internal/printer"
	"github.com/lhaig/lukasiewicz/internal/sema"
)

// Session builds input incrementally against one global scope. Names
// declared by earlier input stay visible to later input.
type Session struct {
	cfg  config.Config
	b    *sema.Builder
	tree *ast.Block
}

// NewSession starts a session with an empty global scope.
func NewSession(cfg *config.Config) *Session {
	s := &Session{cfg: *orDefault(cfg)}
	s.Reset()
	return s
}

// Reset forgets every declaration made so far.
func (s *Session) Reset() {
	s.b = newBuilder(diagnostic.Discard, &s.cfg)
	s.tree = &ast.Block{}
}

// Mode returns the output mode of the session.
func (s *Session) Mode() string { return s.cfg.Mode }

// SetMode switches the output mode for later input.
func (s *Session) SetMode(mode string) error {
	if _, err := backend.Lookup(mode); err != nil {
		return err
	}
	s.cfg.Mode = mode
	return nil
}

// Tree returns every statement accepted so far.
func (s *Session) Tree() *ast.Block { return s.tree }

// Eval builds src in the session scope and renders the new statements.
// Nothing is rendered when building raised errors, but declarations that
// did succeed remain in scope.
func (s *Session) Eval(src string) (string, *diagnostic.Diagnostics) {
	diags := diagnostic.New()
	table := s.b.Table()
	prev := table.SetSink(diags)
	defer table.SetSink(prev)

	block := parser.ParseFragment(s.b, src)
	s.tree.Nodes = append(s.tree.Nodes, block.Nodes...)
	if s.cfg.WarningsAsErrors {
		diags.PromoteWarnings()
	}
	if diags.HasErrors() {
		return "", diags
	}

	out, printed, err := Print(block, s.cfg.Mode, &s.cfg)
	if err != nil {
		diags.Errorf(0, 0, "%s", err)
		return "", diags
	}
	diags.Merge("", printed)
	return strings.TrimPrefix(out, printer.PythonHeader+"\n"), diags
}

// Package linter reports style problems in a built tree. It only ever
// produces warnings.
package linter

import (
	"fmt"
	"unicode"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
)

// Linter performs style checks on a built tree.
type Linter struct {
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on tree and returns their diagnostics.
func Lint(tree *ast.Block) *diagnostic.Diagnostics {
	l := &Linter{diag: diagnostic.New()}
	if tree == nil {
		return l.diag
	}

	// Globals may be read from any function, so they are checked against
	// every read in the program.
	l.checkUnusedVariables(tree.Nodes, collectUsedNames(tree))
	l.lintFunctions(tree.Nodes)
	return l.diag
}

func (l *Linter) warnf(pos ast.Position, format string, args ...interface{}) {
	l.diag.Report(diagnostic.Diagnostic{
		Severity: diagnostic.Warning,
		Kind:     diagnostic.Style,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

// lintFunctions finds every function, nested ones and lambdas included.
// Functions synthesized for map, fold and filter are not user code and
// are skipped.
func (l *Linter) lintFunctions(stmts []ast.Node) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Function:
			l.lintFunction(s)
		case *ast.HigherOrder:
			l.lintFunction(s.Lambda)
		case *ast.If:
			l.lintFunctions(s.Then.Nodes)
			l.lintFunctions(s.Else.Nodes)
		case *ast.For:
			l.lintFunctions(s.Body.Nodes)
		case *ast.Block:
			l.lintFunctions(s.Nodes)
		}
	}
}

func (l *Linter) lintFunction(fn *ast.Function) {
	if fn == nil || !fn.ValueType.Valid() {
		return
	}
	l.checkFunctionNaming(fn)
	if !fn.Defined() {
		l.warnf(fn.Position, "function '%s' is declared but never defined", fn.Name)
		return
	}
	if len(fn.Body.Nodes) == 0 {
		l.warnf(fn.Position, "function '%s' has an empty body", fn.Name)
		return
	}

	used := collectUsedNames(fn.Body)
	l.checkUnusedParams(fn, used)
	l.checkUnusedVariables(fn.Body.Nodes, used)
	l.lintFunctions(fn.Body.Nodes)
}

// checkFunctionNaming warns if a function name is not snake_case.
func (l *Linter) checkFunctionNaming(fn *ast.Function) {
	if !isSnakeCase(fn.Name) {
		l.warnf(fn.Position, "function '%s' should use snake_case naming", fn.Name)
	}
}

// checkUnusedParams warns about parameters that are never read in the body.
func (l *Linter) checkUnusedParams(fn *ast.Function, used map[string]bool) {
	for _, p := range fn.Params {
		if !used[p.Name] {
			l.warnf(p.Position, "parameter '%s' in '%s' is never used", p.Name, fn.Name)
		}
	}
}

// checkUnusedVariables warns about declared variables that are never read.
// Function bodies are left to lintFunction.
func (l *Linter) checkUnusedVariables(stmts []ast.Node, used map[string]bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			for _, v := range s.Vars {
				if !used[v.Name] {
					l.warnf(v.Position, "variable '%s' is declared but never used", v.Name)
				}
			}
		case *ast.If:
			l.checkUnusedVariables(s.Then.Nodes, used)
			l.checkUnusedVariables(s.Else.Nodes, used)
		case *ast.For:
			l.checkUnusedVariables(s.Body.Nodes, used)
		case *ast.Block:
			l.checkUnusedVariables(s.Nodes, used)
		}
	}
}

// --- Name collection helpers ---

// collectUsedNames walks n and collects every variable name that is read.
// The variable an assignment or append writes to is not a read, but the
// array and index of an indexed target are.
func collectUsedNames(n ast.Node) map[string]bool {
	used := make(map[string]bool)
	collectFromNode(n, used)
	return used
}

func collectFromNode(n ast.Node, used map[string]bool) {
	switch s := n.(type) {
	case nil:
	case *ast.Block:
		if s == nil {
			return
		}
		for _, inner := range s.Nodes {
			collectFromNode(inner, used)
		}
	case *ast.VarDecl:
		for _, v := range s.Vars {
			if v.Assign != nil {
				collectFromExpr(v.Assign.Right, used)
			}
		}
	case *ast.If:
		collectFromExpr(s.Cond, used)
		collectFromNode(s.Then, used)
		collectFromNode(s.Else, used)
	case *ast.For:
		collectFromExpr(s.Init, used)
		collectFromExpr(s.Cond, used)
		collectFromExpr(s.Post, used)
		collectFromNode(s.Body, used)
	case *ast.Function:
		if s != nil && s.Body != nil {
			collectFromNode(s.Body, used)
		}
	case *ast.HigherOrder:
		used[s.Array.Name] = true
		collectFromNode(s.Lambda, used)
	case *ast.Return:
		collectFromExpr(s.Value, used)
	case ast.Expression:
		collectFromExpr(s, used)
	}
}

func collectFromExpr(e ast.Expression, used map[string]bool) {
	switch x := e.(type) {
	case nil:
	case *ast.VarRef:
		used[x.Name] = true
	case *ast.Binary:
		if x.Op == ast.Assign || x.Op == ast.Append {
			if _, ok := x.Left.(*ast.VarRef); !ok {
				collectFromExpr(x.Left, used)
			}
		} else {
			collectFromExpr(x.Left, used)
		}
		collectFromExpr(x.Right, used)
	case *ast.Unary:
		collectFromExpr(x.Operand, used)
	case *ast.Call:
		for _, arg := range x.Args {
			collectFromExpr(arg, used)
		}
	}
}

// --- Naming convention helpers ---

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

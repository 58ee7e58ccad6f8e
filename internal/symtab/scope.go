package symtab

import (
	"fmt"
	"sort"

	"github.com/lhaig/lukasiewicz/internal/ast"
)

// Kind separates the two namespaces of a scope
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
)

// String returns the string representation of the symbol kind
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Scope is one level of the scope chain. parent is a back-reference only;
// an inner scope never outlives the one enclosing it.
type Scope struct {
	parent *Scope
	vars   map[string]*ast.Variable
	funcs  map[string]*ast.Function
}

// NewScope creates a new scope with an optional parent
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vars:   make(map[string]*ast.Variable),
		funcs:  make(map[string]*ast.Function),
	}
}

// Parent returns the enclosing scope, nil for the global one.
func (s *Scope) Parent() *Scope { return s.parent }

// Exists reports whether name is declared in this scope itself
func (s *Scope) Exists(kind Kind, name string) bool {
	switch kind {
	case KindVariable:
		_, ok := s.vars[name]
		return ok
	case KindFunction:
		_, ok := s.funcs[name]
		return ok
	}
	return false
}

// DefineVariable adds v to the scope
// Returns an error if the name is already taken in this scope
func (s *Scope) DefineVariable(v *ast.Variable) error {
	if s.Exists(KindVariable, v.Name) {
		return fmt.Errorf("variable %s already declared in this scope", v.Name)
	}
	s.vars[v.Name] = v
	return nil
}

// DefineFunction adds f to the scope
// Returns an error if the name is already taken in this scope
func (s *Scope) DefineFunction(f *ast.Function) error {
	if s.Exists(KindFunction, f.Name) {
		return fmt.Errorf("function %s already declared in this scope", f.Name)
	}
	s.funcs[f.Name] = f
	return nil
}

// Variable looks a variable up here and then in enclosing scopes
func (s *Scope) Variable(name string) (*ast.Variable, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Function looks a function up here and then in enclosing scopes
func (s *Scope) Function(name string) (*ast.Function, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if f, ok := sc.funcs[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// LocalVariable looks up a variable only in this scope
func (s *Scope) LocalVariable(name string) (*ast.Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// LocalFunction looks up a function only in this scope
func (s *Scope) LocalFunction(name string) (*ast.Function, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// Visible returns the sorted names of kind reachable from s.
func (s *Scope) Visible(kind Kind) []string {
	seen := make(map[string]bool)
	for sc := s; sc != nil; sc = sc.parent {
		if kind == KindVariable {
			for name := range sc.vars {
				seen[name] = true
			}
		} else {
			for name := range sc.funcs {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

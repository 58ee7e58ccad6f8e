// Package hof expands map, fold and filter into ordinary functions. The
// loop is written out as source text and parsed back, so the generated
// code is checked exactly like user code.
package hof

import (
	"fmt"
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// LambdaName is the name the loop body uses to call the user function.
const LambdaName = "lambda"

// Params describes one expansion.
type Params struct {
	Combinator ast.Combinator
	Array      string     // name of the input array
	Element    types.Type // element type of the input array
	Size       int        // declared size of the input array
}

// Index is the loop counter name.
func (p Params) Index() string { return p.Array + "_ti" }

// Output is the name of the variable the function returns: an array for
// map and filter, an accumulator for fold.
func (p Params) Output() string {
	if p.Combinator == ast.Fold {
		return p.Array + "_tv"
	}
	return p.Array + "_ta"
}

// FuncName is the name of the synthesized function.
func (p Params) FuncName() string {
	return p.Array + "_" + p.Combinator.String()
}

// Synthesize returns the loop implementing the expansion as source text.
func Synthesize(p Params) string {
	var sb strings.Builder
	in, i, out := p.Array, p.Index(), p.Output()
	elem := p.Element.Name(true)
	loop := func(start int) {
		fmt.Fprintf(&sb, "for %s = %d, %s < [len] %s, %s = %s + 1 {\n", i, start, i, in, i, i)
	}

	switch p.Combinator {
	case ast.Map:
		fmt.Fprintf(&sb, "int %s\n", i)
		fmt.Fprintf(&sb, "%s %s[%d]\n", elem, out, p.Size)
		loop(0)
		fmt.Fprintf(&sb, "  %s[%s] = %s(%s[%s])\n", out, i, LambdaName, in, i)
		sb.WriteString("}\n")

	case ast.Fold:
		fmt.Fprintf(&sb, "%s %s\n", elem, out)
		fmt.Fprintf(&sb, "%s = %s[0]\n", out, in)
		fmt.Fprintf(&sb, "int %s\n", i)
		loop(1)
		fmt.Fprintf(&sb, "  %s = %s + %s(%s, %s[%s])\n", out, out, LambdaName, out, in, i)
		sb.WriteString("}\n")

	case ast.Filter:
		fmt.Fprintf(&sb, "int %s\n", i)
		fmt.Fprintf(&sb, "%s %s[0]\n", elem, out)
		loop(0)
		fmt.Fprintf(&sb, "  if %s(%s[%s])\n", LambdaName, in, i)
		sb.WriteString("  then {\n")
		fmt.Fprintf(&sb, "    %s <- %s[%s]\n", out, in, i)
		sb.WriteString("  }\n")
		sb.WriteString("}\n")
	}
	return sb.String()
}

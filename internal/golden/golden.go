// Package golden extracts end-to-end test cases from Markdown documents.
//
// A case starts at a heading "Test: <name>" and holds one source fence
// followed by one or more expectation fences:
//
//	## Test: assignment
//
//	```luk
//	int a = 2
//	```
//
//	```infix
//	int var: a = 2
//	```
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SourceLanguage is the fence language of a test case's program.
const SourceLanguage = "luk"

// Kind names what an expectation fence checks
type Kind string

const (
	KindPrefix      Kind = "prefix"
	KindInfix       Kind = "infix"
	KindPython      Kind = "python"
	KindDiagnostics Kind = "diagnostics"
)

// Expectation is one expected output of a test case
type Expectation struct {
	Kind    Kind
	Content string
	Line    int
}

// Case is one test case extracted from Markdown
type Case struct {
	Name         string
	Source       string
	Line         int
	Expectations []Expectation
}

// Extract parses a Markdown document and returns its test cases in
// document order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases   []Case
		current *Case
	)
	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, markdown)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdown))
			line := lineOf(n, markdown)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := fenceContent(n, markdown)
			switch {
			case language == SourceLanguage:
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", line, SourceLanguage, current.Name)
				}
				current.Source, current.Line = content, line
			case isExpectation(language):
				current.Expectations = append(current.Expectations, Expectation{
					Kind:    Kind(language),
					Content: content,
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func isExpectation(language string) bool {
	switch Kind(language) {
	case KindPrefix, KindInfix, KindPython, KindDiagnostics:
		return true
	}
	return false
}

func validate(c *Case) error {
	if c.Source == "" {
		return fmt.Errorf("test '%s' has no %s fence", c.Name, SourceLanguage)
	}
	if len(c.Expectations) == 0 {
		return fmt.Errorf("test '%s' has no expectation fences", c.Name)
	}
	return nil
}

// nodeText concatenates the text segments below node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line a block's content starts on.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}

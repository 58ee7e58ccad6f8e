package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/parser"
	"github.com/lhaig/lukasiewicz/internal/sema"
	"github.com/lhaig/lukasiewicz/internal/symtab"
)

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	diags := diagnostic.New()
	b := sema.New(symtab.New(diags))
	parser.Attach(b)
	tree := parser.ParseFragment(b, source)

	if diags.HasErrors() {
		t.Fatalf("Build errors: %s", diags.Format("test"))
	}

	lint := Lint(tree)
	var warnings []string
	for _, d := range lint.All() {
		if d.Severity != diagnostic.Warning || d.Kind != diagnostic.Style {
			t.Errorf("Expected a style warning, got %s %s", d.Severity, d.Kind)
		}
		warnings = append(warnings, d.Message)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// --- Empty function body ---

func TestEmptyFunctionBody(t *testing.T) {
	warnings := parseAndLint(t, `int fun noop() { }`)
	if !containsWarning(warnings, "function 'noop' has an empty body") {
		t.Errorf("Expected empty body warning, got: %v", warnings)
	}
}

func TestNonEmptyFunctionBodyNoWarning(t *testing.T) {
	warnings := parseAndLint(t, `int fun zero() { ret 0 }`)
	if containsWarning(warnings, "empty body") {
		t.Errorf("Did not expect empty body warning, got: %v", warnings)
	}
}

// --- Declared but never defined ---

func TestDeclaredNeverDefined(t *testing.T) {
	warnings := parseAndLint(t, `int fun later(int a)`)
	if !containsWarning(warnings, "function 'later' is declared but never defined") {
		t.Errorf("Expected never defined warning, got: %v", warnings)
	}
}

func TestForwardDeclarationCompletedNoWarning(t *testing.T) {
	warnings := parseAndLint(t, `int fun later(int a)
int fun later(int a) { ret a }`)
	if containsWarning(warnings, "never defined") {
		t.Errorf("Did not expect never defined warning, got: %v", warnings)
	}
}

// --- Naming ---

func TestFunctionNaming(t *testing.T) {
	warnings := parseAndLint(t, `int fun addTwo(int a) { ret a + 2 }`)
	if !containsWarning(warnings, "function 'addTwo' should use snake_case naming") {
		t.Errorf("Expected naming warning, got: %v", warnings)
	}

	warnings = parseAndLint(t, `int fun add_two(int a) { ret a + 2 }`)
	if containsWarning(warnings, "snake_case") {
		t.Errorf("Did not expect naming warning, got: %v", warnings)
	}
}

func TestIsSnakeCase(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"add", true},
		{"add_two", true},
		{"v2", true},
		{"addTwo", false},
		{"2v", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSnakeCase(tt.name); got != tt.want {
			t.Errorf("isSnakeCase(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// --- Unused parameters ---

func TestUnusedParam(t *testing.T) {
	warnings := parseAndLint(t, `int fun first(int a, int b) { ret a }`)
	if !containsWarning(warnings, "parameter 'b' in 'first' is never used") {
		t.Errorf("Expected unused param warning, got: %v", warnings)
	}
	if containsWarning(warnings, "parameter 'a'") {
		t.Errorf("Did not expect warning for 'a', got: %v", warnings)
	}
}

// --- Unused variables ---

func TestUnusedVariable(t *testing.T) {
	warnings := parseAndLint(t, `int fun f(int a) {
  int tmp = a
  ret a
}`)
	if !containsWarning(warnings, "variable 'tmp' is declared but never used") {
		t.Errorf("Expected unused variable warning, got: %v", warnings)
	}
}

func TestAssignedOnlyIsUnused(t *testing.T) {
	warnings := parseAndLint(t, `int x
x = 1`)
	if !containsWarning(warnings, "variable 'x' is declared but never used") {
		t.Errorf("Expected unused variable warning, got: %v", warnings)
	}
}

func TestIndexedTargetIsUsed(t *testing.T) {
	warnings := parseAndLint(t, `int v[2]
v[0] = 1`)
	if containsWarning(warnings, "variable 'v'") {
		t.Errorf("Did not expect warning for 'v', got: %v", warnings)
	}
}

func TestGlobalReadInFunctionIsUsed(t *testing.T) {
	warnings := parseAndLint(t, `int g = 1
int fun get() { ret g }`)
	if containsWarning(warnings, "variable 'g'") {
		t.Errorf("Did not expect warning for 'g', got: %v", warnings)
	}
}

func TestUnusedVariableInNestedBlocks(t *testing.T) {
	warnings := parseAndLint(t, `int n = 1
if n > 0 then {
  int inner = 2
}
for n = 0, n < 3, n = n + 1 {
  int loop = 3
}`)
	if !containsWarning(warnings, "variable 'inner'") {
		t.Errorf("Expected warning for 'inner', got: %v", warnings)
	}
	if !containsWarning(warnings, "variable 'loop'") {
		t.Errorf("Expected warning for 'loop', got: %v", warnings)
	}
	if containsWarning(warnings, "variable 'n'") {
		t.Errorf("Did not expect warning for 'n', got: %v", warnings)
	}
}

// --- Higher-order functions ---

func TestHigherOrderLintsLambdaOnly(t *testing.T) {
	warnings := parseAndLint(t, `int v[3]
map(int fun keep(int x) { ret 1 }, v)`)
	if !containsWarning(warnings, "parameter 'x' in 'keep' is never used") {
		t.Errorf("Expected unused lambda param warning, got: %v", warnings)
	}
	if containsWarning(warnings, "v_ti") || containsWarning(warnings, "v_map") {
		t.Errorf("Did not expect warnings about generated code, got: %v", warnings)
	}
	if containsWarning(warnings, "variable 'v'") {
		t.Errorf("Did not expect warning for mapped array, got: %v", warnings)
	}
}

func TestCleanProgramNoWarnings(t *testing.T) {
	warnings := parseAndLint(t, `int fun add(int a, int b) {
  ret a + b
}
int c = add(1, 2)
c = add(c, c)`)
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", warnings)
	}
}

func TestLintNilTree(t *testing.T) {
	if n := Lint(nil).Count(); n != 0 {
		t.Errorf("Expected no diagnostics, got %d", n)
	}
}

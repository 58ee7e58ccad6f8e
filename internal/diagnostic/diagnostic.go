package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Kind classifies what went wrong. Syntax is the zero value so that
// parser diagnostics need not name a kind.
type Kind int

const (
	Syntax Kind = iota
	TypeError
	ScopeError
	ArityError
	DataError
	Style
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case TypeError:
		return "type"
	case ScopeError:
		return "scope"
	case ArityError:
		return "arity"
	case DataError:
		return "data"
	case Style:
		return "style"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single compiler error, warning, or info message
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Line     int
	Column   int
	File     string // optional file path (for multi-file compilation)
	Hint     string // optional suggestion
}

// Sink receives diagnostics as they are produced. A sink never aborts
// the caller; deciding what an error means is left to the driver.
type Sink interface {
	Report(d Diagnostic)
}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard is a Sink that drops everything reported to it.
var Discard Sink = discard{}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Report appends d, making Diagnostics usable as a Sink.
func (d *Diagnostics) Report(item Diagnostic) {
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.Report(Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.Report(Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Infof adds an info diagnostic with formatted message
func (d *Diagnostics) Infof(line, col int, format string, args ...interface{}) {
	d.Report(Diagnostic{
		Severity: Info,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(func(item Diagnostic) bool { return item.Severity == Error })
}

// Warnings returns only the warning-level diagnostics
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(func(item Diagnostic) bool { return item.Severity == Warning })
}

// OfKind returns the diagnostics classified as k.
func (d *Diagnostics) OfKind(k Kind) []Diagnostic {
	return d.filter(func(item Diagnostic) bool { return item.Kind == k })
}

func (d *Diagnostics) filter(keep func(Diagnostic) bool) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, item := range d.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return len(d.Errors())
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return len(d.Warnings())
}

// Merge appends every diagnostic of other, stamping file on those that
// do not carry one yet.
func (d *Diagnostics) Merge(file string, other *Diagnostics) {
	for _, item := range other.items {
		if item.File == "" {
			item.File = file
		}
		d.items = append(d.items, item)
	}
}

// PromoteWarnings turns every warning into an error.
func (d *Diagnostics) PromoteWarnings() {
	for i := range d.items {
		if d.items[i].Severity == Warning {
			d.items[i].Severity = Error
		}
	}
}

// Format returns human-readable error messages
// Output format:
//
//	error[filename:3:10]: undeclared variable x
//	  hint: did you mean y?
//	warning[filename:5:1]: value truncated to "ab"
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		fileToUse := filename
		if item.File != "" {
			fileToUse = item.File
		}

		builder.WriteString(fmt.Sprintf("%s[%s:%d:%d]: %s",
			item.Severity.String(),
			fileToUse,
			item.Line,
			item.Column,
			item.Message,
		))

		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
}

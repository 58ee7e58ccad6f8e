package diagnostic

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestCounts(t *testing.T) {
	d := New()
	d.Errorf(1, 2, "bad %s", "thing")
	d.Warningf(3, 4, "odd")
	d.Infof(5, 6, "fyi")

	be.Equal(t, d.Count(), 3)
	be.Equal(t, d.ErrorCount(), 1)
	be.Equal(t, d.WarningCount(), 1)
	be.True(t, d.HasErrors())
	be.Equal(t, d.Errors()[0].Message, "bad thing")
}

func TestReportKeepsKind(t *testing.T) {
	d := New()
	var sink Sink = d
	sink.Report(Diagnostic{Severity: Error, Kind: ScopeError, Message: "undeclared variable x"})
	sink.Report(Diagnostic{Severity: Warning, Kind: DataError, Message: "value truncated"})

	be.Equal(t, len(d.OfKind(ScopeError)), 1)
	be.Equal(t, len(d.OfKind(TypeError)), 0)
	be.Equal(t, d.OfKind(DataError)[0].Severity, Warning)
}

func TestDiscard(t *testing.T) {
	// Must not panic and must not be observable.
	Discard.Report(Diagnostic{Severity: Error, Message: "lost"})
}

func TestFormat(t *testing.T) {
	d := New()
	be.Equal(t, d.Format("a.luk"), "")

	d.Report(Diagnostic{Severity: Error, Message: "undeclared variable x", Line: 3, Column: 10, Hint: "did you mean y?"})
	d.Warningf(5, 1, "unused variable z")

	want := "error[a.luk:3:10]: undeclared variable x\n  hint: did you mean y?\nwarning[a.luk:5:1]: unused variable z"
	be.Equal(t, d.Format("a.luk"), want)
}

func TestMergeAndPromote(t *testing.T) {
	inner := New()
	inner.Warningf(1, 1, "w")
	inner.Report(Diagnostic{Severity: Error, File: "other.luk", Message: "e"})

	outer := New()
	outer.Merge("main.luk", inner)
	be.Equal(t, outer.All()[0].File, "main.luk")
	be.Equal(t, outer.All()[1].File, "other.luk")

	outer.PromoteWarnings()
	be.Equal(t, outer.ErrorCount(), 2)

	outer.Clear()
	be.Equal(t, outer.Count(), 0)
}

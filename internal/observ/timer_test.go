package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin(PhaseConvert)
	tm.End(idx, "3 decls")
	tm.Record(PhaseWrite, 2*time.Millisecond)
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != PhaseConvert || r.Phases[0].Note != "3 decls" {
		t.Fatalf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.Phases[1].DurationMS != 2 {
		t.Fatalf("write = %v ms, want 2", r.Phases[1].DurationMS)
	}
	if r.TotalMS < 2 {
		t.Fatalf("total %v below recorded phase", r.TotalMS)
	}
}

func TestAggregate(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1, Count: 1}, {Name: "convert", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "convert", DurationMS: 4, Count: 1}, {Name: "write", DurationMS: 1}}}

	got := Aggregate(a, b)
	if got.TotalMS != 8 {
		t.Fatalf("total = %v, want 8", got.TotalMS)
	}
	want := []PhaseReport{
		{Name: "load", DurationMS: 1, Count: 1},
		{Name: "convert", DurationMS: 6, Count: 2},
		{Name: "write", DurationMS: 1, Count: 1},
	}
	if len(got.Phases) != len(want) {
		t.Fatalf("phases = %+v", got.Phases)
	}
	for i := range want {
		if got.Phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, got.Phases[i], want[i])
		}
	}
	if s := got.Slowest(1); len(s) != 1 || s[0].Name != "convert" {
		t.Fatalf("Slowest(1) = %+v", s)
	}
	if !strings.Contains(got.Summary(), "convert") || !strings.Contains(got.Summary(), "x2") {
		t.Fatalf("summary:\n%s", got.Summary())
	}
}

func TestEmptyReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("nil timer report = %+v", r)
	}
	if s := Aggregate().Summary(); !strings.Contains(s, "total") {
		t.Fatalf("summary: %q", s)
	}
}

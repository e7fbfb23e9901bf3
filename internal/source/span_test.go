package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{"shift normal span", Span{File: 1, Start: 10, End: 20}, 5, Span{File: 1, Start: 5, End: 15}},
		{"shift by zero", Span{File: 1, Start: 10, End: 20}, 0, Span{File: 1, Start: 10, End: 20}},
		{"shift equals start", Span{File: 1, Start: 10, End: 20}, 10, Span{File: 1, Start: 0, End: 10}},
		{"shift past start keeps span", Span{File: 1, Start: 10, End: 20}, 15, Span{File: 1, Start: 10, End: 20}},
		{"zero-length span", Span{File: 1, Start: 10, End: 10}, 3, Span{File: 1, Start: 7, End: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.ShiftLeft(tt.shift); got != tt.expected {
				t.Errorf("ShiftLeft(%d) = %v, want %v", tt.shift, got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must keep receiver, got %v", got)
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{Start: 0, End: 5}, Span{Start: 5, End: 9}, false},
		{Span{Start: 0, End: 6}, Span{Start: 5, End: 9}, true},
		{Span{Start: 3, End: 3}, Span{Start: 0, End: 9}, false},
		{Span{File: 1, Start: 0, End: 9}, Span{File: 2, Start: 0, End: 9}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpan_Zeroide(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 12}
	if got := s.ZeroideToStart(); got != (Span{File: 3, Start: 7, End: 7}) || !got.Empty() {
		t.Fatalf("ZeroideToStart = %v", got)
	}
	if got := s.ZeroideToEnd(); got != (Span{File: 3, Start: 12, End: 12}) {
		t.Fatalf("ZeroideToEnd = %v", got)
	}
}

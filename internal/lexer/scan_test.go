package lexer

import "testing"

func TestScanNumber(t *testing.T) {
	tests := []struct {
		in   string
		text string
		kind NumberKind
	}{
		{"42", "42", NumberInt},
		{"-7,", "-7", NumberInt},
		{"+3.25)", "+3.25", NumberFloat},
		{"1e-5", "1e-5", NumberFloat},
		{"2.5E3]", "2.5E3", NumberFloat},
		{"1_000", "1_000", NumberInt},
		{"1.", "", NumberNone},
		{"1.x", "", NumberNone},
		{"abc", "", NumberNone},
		{"-", "", NumberNone},
	}
	for _, tt := range tests {
		c := NewCursor(createFile(tt.in))
		text, kind := c.ScanNumber()
		if text != tt.text || kind != tt.kind {
			t.Errorf("ScanNumber(%q) = %q/%d, want %q/%d", tt.in, text, kind, tt.text, tt.kind)
		}
		if kind == NumberNone && c.Off != 0 {
			t.Errorf("ScanNumber(%q) consumed input on failure", tt.in)
		}
	}
}

func TestScanString(t *testing.T) {
	tests := []struct {
		in     string
		text   string
		triple bool
		closed bool
	}{
		{`"abc" rest`, `"abc"`, false, true},
		{`'it\'s'`, `'it\'s'`, false, true},
		{`b"raw"`, `b"raw"`, false, true},
		{`rb'x'`, `rb'x'`, false, true},
		{"\"\"\"doc\nmore\"\"\" x", "\"\"\"doc\nmore\"\"\"", true, true},
		{"'open\nnext", "'open", false, false},
	}
	for _, tt := range tests {
		c := NewCursor(createFile(tt.in))
		text, info := c.ScanString()
		if text != tt.text || info.Triple != tt.triple || info.Closed != tt.closed {
			t.Errorf("ScanString(%q) = %q %+v", tt.in, text, info)
		}
	}
	c := NewCursor(createFile(`xy"no"`))
	if c.AtString() {
		t.Fatalf("xy is not a string prefix")
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"abc"`, "abc"},
		{`'abc'`, "abc"},
		{`"""doc string"""`, "doc string"},
		{`r'''raw'''`, "raw"},
		{`b""`, ""},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIdentAndKeyword(t *testing.T) {
	c := NewCursor(createFile("classify(x)"))
	if c.EatKeyword("class") {
		t.Fatalf("class must not match a prefix of classify")
	}
	if got := c.ScanIdent(); got != "classify" {
		t.Fatalf("ScanIdent = %q", got)
	}

	c = NewCursor(createFile("np.ndarray[double]"))
	if got := c.ScanDotted(false); got != "np.ndarray" {
		t.Fatalf("ScanDotted = %q", got)
	}

	c = NewCursor(createFile("..pkg.mod import"))
	if got := c.ScanDotted(true); got != "..pkg.mod" {
		t.Fatalf("ScanDotted relative = %q", got)
	}

	c = NewCursor(createFile(". import x"))
	if got := c.ScanDotted(true); got != "." {
		t.Fatalf("ScanDotted bare dot = %q", got)
	}

	c = NewCursor(createFile("mod. x"))
	if got := c.ScanDotted(false); got != "mod" {
		t.Fatalf("ScanDotted trailing dot = %q", got)
	}
}

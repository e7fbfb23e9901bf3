package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		v    int
		want zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.v); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, zapcore.InfoLevel).Sugar()
	l.Debugw("hidden")
	l.Warnw("unparsed characters", "path", "a.pyx", "count", 3)
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked at info level: %q", out)
	}
	if !strings.Contains(out, "warn") || !strings.Contains(out, `"path": "a.pyx"`) {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestComponentLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Set(zap.New(core).Sugar())
	t.Cleanup(func() { Set(prev) })

	Component("driver").Infow("stub written", "path", "a.pyi")

	entries := logs.FilterMessage("stub written").All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "driver" || fields["path"] != "a.pyi" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestSetNilFallsBackToNop(t *testing.T) {
	prev := Set(nil)
	t.Cleanup(func() { Set(prev) })
	L().Infow("dropped")
}

// Package logger держит общий zap-логгер процесса.
//
// До Initialize используется no-op логгер, так что пакеты могут логировать
// с момента загрузки.
package logger

import (
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for the -v flag count.
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // -v: written stubs, config source
	VerbosityDebug = 2 // -vv: cache hits, per-phase timings
)

// Options configures Initialize.
type Options struct {
	Verbosity int
	JSON      bool
	Output    io.Writer // default os.Stderr
}

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Initialize replaces the process logger.
func Initialize(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	current.Store(New(out, opts.JSON, VerbosityToLevel(opts.Verbosity)).Sugar())
}

// New builds a logger writing to w. Console output drops timestamps and
// callers; JSON output keeps the production field set.
func New(w io.Writer, json bool, level zapcore.Level) *zap.Logger {
	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// VerbosityToLevel maps the -v count to a zap level.
//
//	0     -> warn
//	1     -> info
//	2+    -> debug
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// L returns the process logger.
func L() *zap.SugaredLogger { return current.Load() }

// Set replaces the process logger and returns the previous one. Tests use it
// with zaptest/observer.
func Set(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return current.Swap(l)
}

// Component returns a child logger tagged with the component name.
func Component(name string) *zap.SugaredLogger {
	return L().With("component", name)
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

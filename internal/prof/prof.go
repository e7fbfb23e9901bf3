// Package prof wires the runtime profilers to command line flags.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"

	"github.com/cockroachdb/errors"
)

// Options names the output files; empty paths are skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Session is a set of running profilers.
type Session struct {
	opts      Options
	cpuFile   *os.File
	traceFile *os.File
	once      sync.Once
	err       error
}

// Start enables the requested profilers. On failure everything already
// started is stopped again.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "failed to start cpu profile")
		}
		s.cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			s.stopCPU()
			return nil, errors.Wrap(err, "failed to create trace file")
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, errors.Wrap(err, "failed to start trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the profilers and writes the heap profile. Only the first call
// does anything; later calls return the same error.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if s.traceFile != nil {
			trace.Stop()
			s.err = errors.CombineErrors(s.err, s.traceFile.Close())
		}
		s.stopCPU()
		if s.opts.Mem != "" {
			s.err = errors.CombineErrors(s.err, writeHeap(s.opts.Mem))
		}
	})
	return s.err
}

func (s *Session) stopCPU() {
	if s.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	s.err = errors.CombineErrors(s.err, s.cpuFile.Close())
	s.cpuFile = nil
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create heap profile")
	}
	defer func() { err = errors.CombineErrors(err, f.Close()) }()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "failed to write heap profile")
}

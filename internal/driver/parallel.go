package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/logger"
	"cystub/internal/observ"
	"cystub/internal/source"
	"cystub/internal/stubgen"
)

// Options configures Generate.
type Options struct {
	Format format.Options
	// Fingerprint identifies Format.Hooks in cache keys; hooks are
	// functions and cannot be hashed themselves.
	Fingerprint    string
	Extension      string // default ".pyi"
	MaxDiagnostics int
	Jobs           int // <= 0: GOMAXPROCS
	// Check compares instead of writing: stale stubs are reported and the
	// files are left alone.
	Check  bool
	Verify bool
	Cache  *Cache // nil disables caching
	Sink   Sink
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path         string
	StubPath     string
	FileID       source.FileID
	Stub         string
	Residue      string
	ResidueChars int
	Decls        int
	Cached       bool
	// Changed: the stub file was written, or with Check, would be.
	Changed bool
	// Skipped explains why no stub was produced for a loaded file.
	Skipped string
	Bag     *diag.Bag
	Timing  observ.Report
	Err     error
}

// Run collects the results of one Generate call.
type Run struct {
	Files   *source.FileSet
	Results []FileResult
}

// HasErrors reports whether any file failed or carries an error diagnostic.
func (r *Run) HasErrors() bool {
	for i := range r.Results {
		if r.Results[i].Err != nil || r.Results[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Changed returns the stub paths written (or, with Check, out of date).
func (r *Run) Changed() []string {
	var out []string
	for i := range r.Results {
		if r.Results[i].Changed {
			out = append(out, r.Results[i].StubPath)
		}
	}
	return out
}

// Timings aggregates per-file phase timings.
func (r *Run) Timings() observ.Report {
	reports := make([]observ.Report, len(r.Results))
	for i := range r.Results {
		reports[i] = r.Results[i].Timing
	}
	return observ.Aggregate(reports...)
}

// StubPath returns the stub written next to src.
func StubPath(src, ext string) string {
	if ext == "" {
		ext = ".pyi"
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + ext
}

// sourceRank orders sources that share a stub path: the implementation
// wins over its declaration file.
func sourceRank(path string) int {
	switch filepath.Ext(path) {
	case ".pyx":
		return 0
	case ".py":
		return 1
	case ".pxd":
		return 2
	default:
		return 3
	}
}

// Generate converts files in parallel and writes (or checks) their stubs.
// Files are loaded up front; FileSet is not safe for concurrent mutation.
// Per-file problems land in FileResult; the error is reserved for
// cancellation.
func Generate(ctx context.Context, files []string, opts Options) (*Run, error) {
	log := logger.Component("driver")
	run := &Run{Files: source.NewFileSet(), Results: make([]FileResult, len(files))}
	if len(files) == 0 {
		return run, nil
	}

	for _, path := range files {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Загружаем последовательно, дальше только чтение.
	owner := make(map[string]int, len(files))
	loadTimes := make([]time.Duration, len(files))
	for i, path := range files {
		res := &run.Results[i]
		res.Path = path
		res.StubPath = StubPath(path, opts.Extension)
		res.Bag = diag.NewBag(opts.MaxDiagnostics)

		start := time.Now()
		id, err := run.Files.Load(path)
		elapsed := time.Since(start)
		loadTimes[i] = elapsed
		if err != nil {
			res.Err = errors.Wrapf(err, "failed to load %s", path)
			log.Errorw("load failed", "path", path, "error", err)
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: res.Err, Elapsed: elapsed})
			continue
		}
		res.FileID = id
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusDone, Elapsed: elapsed})

		if j, ok := owner[res.StubPath]; ok {
			if sourceRank(path) >= sourceRank(files[j]) {
				shadow(run, i, files[j])
				continue
			}
			shadow(run, j, path)
		}
		owner[res.StubPath] = i
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range run.Results {
		res := &run.Results[i]
		if res.Err != nil || res.Skipped != "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			generateOne(run.Files.Get(res.FileID), res, loadTimes[i], opts, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return run, err
	}

	for i := range run.Results {
		res := &run.Results[i]
		status := StatusDone
		if res.Err != nil || res.Bag.HasErrors() {
			status = StatusError
		}
		emit(opts.Sink, Event{File: res.Path, Stage: StageWrite, Status: status, Err: res.Err, Cached: res.Cached})
	}
	return run, nil
}

func shadow(run *Run, i int, by string) {
	res := &run.Results[i]
	res.Skipped = "stub comes from " + by
	diag.ReportInfo(diag.BagReporter{Bag: res.Bag}, diag.ScnInfo, source.Span{File: res.FileID},
		fmt.Sprintf("no stub generated; %s also maps to %s", by, res.StubPath)).Emit()
}

func generateOne(file *source.File, res *FileResult, load time.Duration, opts Options, log *zap.SugaredLogger) {
	tm := observ.NewTimer()
	tm.Record(observ.PhaseLoad, load)
	defer func() { res.Timing = tm.Report() }()

	emit(opts.Sink, Event{File: res.Path, Stage: StageConvert, Status: StatusWorking})
	key := CacheKey(file.Hash, opts.Fingerprint, opts.Format, opts.MaxDiagnostics)

	idx := tm.Begin(observ.PhaseCache)
	entry, hit, err := opts.Cache.Get(key)
	tm.End(idx, "")
	if err != nil {
		log.Warnw("cache read failed", "path", res.Path, "error", err)
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID},
			"stub cache: "+err.Error()).Emit()
	}

	if hit && (!opts.Verify || entry.Verified) {
		log.Debugw("cache hit", "path", res.Path, "key", key.String()[:12])
		res.Cached = true
		entry.restore(file.ID, res.Bag)
	} else {
		idx = tm.Begin(observ.PhaseConvert)
		conv := stubgen.Convert(file, stubgen.Options{Format: opts.Format, MaxDiagnostics: opts.MaxDiagnostics})
		tm.End(idx, fmt.Sprintf("%d decls", len(conv.Matches)))

		if opts.Verify {
			emit(opts.Sink, Event{File: res.Path, Stage: StageVerify, Status: StatusWorking})
			idx = tm.Begin(observ.PhaseVerify)
			verifyStub(file, conv, opts.Format)
			tm.End(idx, "")
		}
		entry = entryFromResult(conv)
		entry.Verified = opts.Verify
		res.Bag.Merge(conv.Bag)
		if err := opts.Cache.Put(key, entry); err != nil {
			log.Warnw("cache write failed", "path", res.Path, "error", err)
		}
	}
	emit(opts.Sink, Event{File: res.Path, Stage: StageConvert, Status: StatusDone, Cached: res.Cached})

	res.Stub = entry.Stub
	res.Residue = entry.Residue
	res.ResidueChars = entry.ResidueChars
	res.Decls = entry.Decls
	if entry.ResidueChars > 0 {
		log.Warnf("%s: %d unparsed characters", res.Path, entry.ResidueChars)
	}

	idx = tm.Begin(observ.PhaseWrite)
	writeStub(file, res, opts, log)
	tm.End(idx, "")
}

// writeStub writes or checks the stub file. An empty stub never creates or
// removes a file; Check still reports a stub left over from earlier
// declarations.
func writeStub(file *source.File, res *FileResult, opts Options, log *zap.SugaredLogger) {
	reporter := diag.BagReporter{Bag: res.Bag}
	if res.Stub == "" {
		res.Skipped = "no declarations"
		if _, err := os.Stat(res.StubPath); opts.Check && err == nil {
			res.Changed = true
			diag.ReportWarning(reporter, diag.VfyStaleStubFile, source.Span{File: file.ID},
				fmt.Sprintf("%s is out of date: the source has no declarations", res.StubPath)).Emit()
		}
		return
	}
	emit(opts.Sink, Event{File: res.Path, Stage: StageWrite, Status: StatusWorking})

	existing, err := os.ReadFile(res.StubPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		res.Err = errors.Wrapf(err, "failed to read %s", res.StubPath)
		diag.ReportError(reporter, diag.IOWriteFileError, source.Span{File: file.ID}, res.Err.Error()).Emit()
		return
	}
	if err == nil && bytes.Equal(existing, []byte(res.Stub)) {
		return
	}
	res.Changed = true
	if opts.Check {
		diag.ReportWarning(reporter, diag.VfyStaleStubFile, source.Span{File: file.ID},
			fmt.Sprintf("%s is out of date", res.StubPath)).Emit()
		return
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(res.StubPath); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(res.StubPath, []byte(res.Stub), mode); err != nil {
		res.Changed = false
		res.Err = errors.Wrapf(err, "failed to write %s", res.StubPath)
		diag.ReportError(reporter, diag.IOWriteFileError, source.Span{File: file.ID}, res.Err.Error()).Emit()
		return
	}
	log.Infow("stub written", "path", res.StubPath, "decls", res.Decls)
}

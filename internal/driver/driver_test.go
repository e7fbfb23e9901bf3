package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cystub/internal/diag"
	"cystub/internal/logger"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Set(prev) })
	return logs
}

func TestStubPath(t *testing.T) {
	tests := []struct{ src, ext, want string }{
		{"pkg/mod.pyx", ".pyi", "pkg/mod.pyi"},
		{"mod.pxd", "", "mod.pyi"},
		{"a.b/mod", ".pyi", "a.b/mod.pyi"},
	}
	for _, tt := range tests {
		if got := StubPath(tt.src, tt.ext); got != tt.want {
			t.Errorf("StubPath(%q, %q) = %q, want %q", tt.src, tt.ext, got, tt.want)
		}
	}
}

func TestDiscoveryExpand(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/a.pyx":         "",
		"pkg/b.pxd":         "",
		"pkg/notes.txt":     "",
		"pkg/build/gen.pyx": "",
		"build/top.pyx":     "",
		"other/c.pyx":       "",
	})
	d, err := NewDiscovery(root, []string{".pyx", ".pxd"}, []string{"**/build/**"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := d.Expand(context.Background(), []string{
		filepath.Join(root, "pkg"),
		filepath.Join(root, "other", "c.pyx"),
		filepath.Join(root, "pkg", "a.pyx"),
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		filepath.Join(root, "other", "c.pyx"),
		filepath.Join(root, "pkg", "a.pyx"),
		filepath.Join(root, "pkg", "b.pxd"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}

	if !d.Ignored(filepath.Join(root, "build", "top.pyx")) {
		t.Errorf("root-level build directory not ignored")
	}
}

func TestDiscoveryGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/x/a.pyx": "",
		"src/x/b.pxd": "",
		"src/y/c.pyx": "",
	})
	d, err := NewDiscovery(root, []string{".pyx", ".pxd"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	pattern := filepath.ToSlash(root) + "/src/**/*.pyx"
	got, err := d.Expand(context.Background(), []string{pattern})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{filepath.Join(root, "src", "x", "a.pyx"), filepath.Join(root, "src", "y", "c.pyx")}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestDiscoveryNoInputs(t *testing.T) {
	root := t.TempDir()
	d, err := NewDiscovery(root, []string{".pyx"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Expand(context.Background(), []string{root}); !errors.Is(err, ErrNoInputs) {
		t.Fatalf("want ErrNoInputs, got %v", err)
	}
	if _, err := NewDiscovery(root, nil, []string{"[unclosed"}); err == nil {
		t.Fatal("want error for bad ignore pattern")
	}
}

func TestGenerateWritesStubs(t *testing.T) {
	logs := observeLogs(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.pyx": "def add(a, b):\n    pass\nx = compute()\n",
		"b.pyx": "print('no declarations')\n",
	})
	files := []string{filepath.Join(root, "a.pyx"), filepath.Join(root, "b.pyx")}

	var mu sync.Mutex
	var events []Event
	sink := SinkFunc(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	run, err := Generate(context.Background(), files, Options{Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if run.HasErrors() {
		t.Fatalf("unexpected errors: %+v", run.Results)
	}

	a := run.Results[0]
	if got := readFile(t, a.StubPath); got != "def add(a, b):\n    ...\n" {
		t.Fatalf("stub = %q", got)
	}
	if !a.Changed || a.Residue != "x = compute()" || a.ResidueChars != 13 || a.Decls != 1 {
		t.Fatalf("result = %+v", a)
	}

	b := run.Results[1]
	if b.Skipped != "no declarations" || b.Changed {
		t.Fatalf("empty stub result = %+v", b)
	}
	if _, err := os.Stat(b.StubPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("empty stub written: %v", err)
	}

	if n := logs.FilterMessage(a.Path + ": 13 unparsed characters").Len(); n != 1 {
		t.Errorf("want one residue warning, got %d", n)
	}
	if n := logs.FilterMessage("stub written").Len(); n != 1 {
		t.Errorf("want one write log, got %d", n)
	}

	var finals int
	for _, e := range events {
		if e.Stage == StageWrite && e.Status == StatusDone {
			finals++
		}
	}
	if finals != 2 {
		t.Errorf("want 2 final events, got %d", finals)
	}
	if len(run.Timings().Phases) == 0 {
		t.Error("no timings recorded")
	}

	again, err := Generate(context.Background(), files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if again.Results[0].Changed {
		t.Error("unchanged stub rewritten")
	}
}

func TestGenerateCheckMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"m.pyx": "cpdef int square(int x):\n    return x * x\n",
		"m.pyi": "# stale\n",
	})
	src := filepath.Join(root, "m.pyx")

	run, err := Generate(context.Background(), []string{src}, Options{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	res := run.Results[0]
	if !res.Changed {
		t.Fatal("stale stub not detected")
	}
	if got := readFile(t, res.StubPath); got != "# stale\n" {
		t.Fatalf("check mode modified the stub: %q", got)
	}
	var stale bool
	for _, d := range res.Bag.Items() {
		stale = stale || d.Code == diag.VfyStaleStubFile
	}
	if !stale {
		t.Fatal("no stale-stub diagnostic")
	}
	if got := run.Changed(); len(got) != 1 || got[0] != res.StubPath {
		t.Fatalf("Changed() = %v", got)
	}
}

func TestGenerateCheckModeEmptySource(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"m.pyx": "print('declarations moved away')\n",
		"m.pyi": "def f():\n    ...\n",
		"n.pyx": "x = 1\n",
	})
	files := []string{filepath.Join(root, "m.pyx"), filepath.Join(root, "n.pyx")}

	run, err := Generate(context.Background(), files, Options{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	m, n := run.Results[0], run.Results[1]
	if !m.Changed || m.Skipped == "" {
		t.Fatalf("leftover stub not flagged: %+v", m)
	}
	if got := readFile(t, m.StubPath); got != "def f():\n    ...\n" {
		t.Fatalf("check mode modified the stub: %q", got)
	}
	if n.Changed {
		t.Fatalf("missing stub for an empty source flagged: %+v", n)
	}
	if got := run.Changed(); len(got) != 1 || got[0] != m.StubPath {
		t.Fatalf("Changed() = %v", got)
	}

	run, err = Generate(context.Background(), files[:1], Options{})
	if err != nil {
		t.Fatal(err)
	}
	if run.Results[0].Changed {
		t.Fatal("write mode touched a leftover stub")
	}
	if _, err := os.Stat(m.StubPath); err != nil {
		t.Fatalf("leftover stub removed: %v", err)
	}
}

func TestGenerateShadowedDeclarationFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"m.pxd": "cdef int f(int x)\n",
		"m.pyx": "def g():\n    pass\n",
	})
	files := []string{filepath.Join(root, "m.pxd"), filepath.Join(root, "m.pyx")}

	run, err := Generate(context.Background(), files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if run.Results[0].Skipped == "" {
		t.Fatalf(".pxd not shadowed: %+v", run.Results[0])
	}
	if got := readFile(t, filepath.Join(root, "m.pyi")); got != "def g():\n    ...\n" {
		t.Fatalf("stub = %q", got)
	}
}

func TestGenerateMissingFile(t *testing.T) {
	run, err := Generate(context.Background(), []string{filepath.Join(t.TempDir(), "gone.pyx")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if run.Results[0].Err == nil || !run.HasErrors() {
		t.Fatal("missing file not reported")
	}
}

func TestGenerateUsesCache(t *testing.T) {
	logs := observeLogs(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"m.pyx": "def f():\n    pass\ny = 1\n"})
	src := filepath.Join(root, "m.pyx")

	cacheDir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache, Fingerprint: "identity", Check: true}
	first, err := Generate(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Results[0].Cached {
		t.Fatal("first run reported a cache hit")
	}

	// Свежий кеш: только диск.
	opts.Cache, err = OpenCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	res := second.Results[0]
	if !res.Cached || res.Stub != first.Results[0].Stub || res.ResidueChars != 5 {
		t.Fatalf("cached result = %+v", res)
	}
	var residue bool
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ScnResidue && d.Primary.File == res.FileID {
			residue = true
		}
	}
	if !residue {
		t.Fatal("cached diagnostics not restored")
	}
	if logs.FilterMessage("cache hit").Len() != 1 {
		t.Error("cache hit not logged")
	}

	opts.Fingerprint = "python"
	third, err := Generate(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Results[0].Cached {
		t.Fatal("different hooks reused a cached stub")
	}
}

func TestCacheKeyTracksDiagnosticsLimit(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"m.pyx": "def broken(:\n    pass\ndef ok():\n    pass\nx = compute()\n"})
	src := filepath.Join(root, "m.pyx")
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	limited, err := Generate(context.Background(), []string{src}, Options{Cache: cache, MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	if n := limited.Results[0].Bag.Len(); n != 1 {
		t.Fatalf("limited run kept %d diagnostics", n)
	}

	full, err := Generate(context.Background(), []string{src}, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	res := full.Results[0]
	if res.Cached {
		t.Fatal("entry filled under a lower limit was reused")
	}
	if res.Bag.Len() < 2 {
		t.Fatalf("full run kept %d diagnostics", res.Bag.Len())
	}
}

func TestCacheDropAll(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key{1, 2, 3}
	if err := cache.Put(key, &Entry{Schema: cacheSchemaVersion, Stub: "def f(): ...\n"}); err != nil {
		t.Fatal(err)
	}
	if e, ok, err := cache.Get(key); err != nil || !ok || e.Stub != "def f(): ...\n" {
		t.Fatalf("Get = %+v, %v, %v", e, ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok || cache.Len() != 0 {
		t.Fatal("entry survived DropAll")
	}

	var none *Cache
	if _, ok, err := none.Get(key); ok || err != nil {
		t.Fatal("nil cache must miss silently")
	}
}

func TestRemoveStubs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.pyx": "", "a.pyi": "", "b.pxd": ""})
	removed, err := RemoveStubs(context.Background(),
		[]string{filepath.Join(root, "a.pyx"), filepath.Join(root, "b.pxd")}, ".pyi")
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != filepath.Join(root, "a.pyi") {
		t.Fatalf("removed = %v", removed)
	}
}

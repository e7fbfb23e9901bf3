package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"

	"cystub/internal/typemap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Root = dir
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[output]\nline_width = 72\n[typemap]\npreset = \"python\"\n")
	nested := filepath.Join(root, "pkg", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{Dir: nested})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) || cfg.Root != root {
		t.Fatalf("path=%q root=%q", cfg.Path, cfg.Root)
	}
	if cfg.Output.LineWidth != 72 || cfg.Typemap.Preset != "python" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Output.Extension != ".pyi" {
		t.Fatalf("default extension lost: %q", cfg.Output.Extension)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[run]\njobs = 2\n")
	t.Setenv("CYSTUB_RUN_JOBS", "5")

	cfg, err := Load(LoadOptions{Dir: root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Jobs != 5 || cfg.Jobs() != 5 {
		t.Fatalf("jobs = %d, want 5", cfg.Run.Jobs)
	}
}

func TestDotEnvNextToConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	writeFile(t, filepath.Join(root, ".env"), "CYSTUB_OUTPUT_INDENT=2\n")
	t.Setenv("CYSTUB_OUTPUT_INDENT", "")
	_ = os.Unsetenv("CYSTUB_OUTPUT_INDENT")

	cfg, err := Load(LoadOptions{Dir: root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Indent != 2 {
		t.Fatalf("indent = %d, want 2", cfg.Output.Indent)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"extension without dot", func(c *Config) { c.Output.Extension = "pyi" }},
		{"indent zero", func(c *Config) { c.Output.Indent = 0 }},
		{"narrow lines", func(c *Config) { c.Output.LineWidth = 10 }},
		{"unknown preset", func(c *Config) { c.Typemap.Preset = "numpy" }},
		{"no extensions", func(c *Config) { c.Scan.Extensions = nil }},
		{"output scanned", func(c *Config) { c.Scan.Extensions = append(c.Scan.Extensions, ".pyi") }},
		{"negative jobs", func(c *Config) { c.Run.Jobs = -1 }},
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := Validate(c); !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir)
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if _, err := WriteDefault(dir); !errors.Is(err, ErrExists) {
		t.Fatalf("second write: want ErrExists, got %v", err)
	}

	cfg, err := Load(LoadOptions{File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Path, want.Root = path, dir
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestTableMergesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "types.toml"), "bogus = \"x\"\n[partial]\nnp_float = \"float\"\n")
	c := Default()
	c.Root = root
	c.Typemap.Preset = "python"
	c.Typemap.File = "types.toml"

	tbl, err := c.Table()
	if err == nil {
		t.Fatalf("want unknown-key error for mistyped entry")
	}
	if tbl.Partial["double"] != "float" {
		t.Fatalf("preset entries lost: %v", tbl.Partial)
	}

	writeFile(t, filepath.Join(root, "types.toml"), "[partial]\nnp_float = \"float\"\n")
	tbl, err = c.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if got := tbl.Hooks().ApplyPartial("np_float"); got != "float" {
		t.Fatalf("ApplyPartial(np_float) = %q", got)
	}
	if c.FormatOptions(typemap.Identity()).LineWidth != c.Output.LineWidth {
		t.Fatalf("FormatOptions ignores line width")
	}
}

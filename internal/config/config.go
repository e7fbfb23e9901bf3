// Package config loads cystub.toml.
//
// Priority, highest first: CYSTUB_* environment (including a .env next to
// the config file), the config file, defaults.
package config

import (
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"cystub/internal/format"
	"cystub/internal/typemap"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "cystub.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded cystub.toml.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Typemap TypemapConfig `mapstructure:"typemap"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Run     RunConfig     `mapstructure:"run"`

	// Path is the file the values came from, empty when only defaults and
	// environment were used. Root is its directory or the start directory.
	Path string `mapstructure:"-"`
	Root string `mapstructure:"-"`
}

type OutputConfig struct {
	Extension string `mapstructure:"extension"`
	Indent    int    `mapstructure:"indent"`
	LineWidth int    `mapstructure:"line_width"`
}

// TypemapConfig selects the translation hooks: a preset, optionally
// extended by a table file.
type TypemapConfig struct {
	Preset string `mapstructure:"preset"`
	File   string `mapstructure:"file"`
}

type ScanConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Ignore     []string `mapstructure:"ignore"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"` // пусто: $XDG_CACHE_HOME/cystub
}

type RunConfig struct {
	Jobs   int  `mapstructure:"jobs"` // 0: GOMAXPROCS
	Verify bool `mapstructure:"verify"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Extension: ".pyi",
			Indent:    format.DefaultIndentWidth,
			LineWidth: format.DefaultLineWidth,
		},
		Typemap: TypemapConfig{
			Preset: "identity",
		},
		Scan: ScanConfig{
			Extensions: []string{".pyx", ".pxd", ".pxi"},
			Ignore:     []string{"**/build/**", "**/.git/**", "**/.tox/**"},
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Validate checks value ranges and the typemap preset.
func Validate(c *Config) error {
	if !strings.HasPrefix(c.Output.Extension, ".") || len(c.Output.Extension) < 2 {
		return errors.Wrapf(ErrInvalid, "output.extension %q must start with a dot", c.Output.Extension)
	}
	if c.Output.Indent < 1 || c.Output.Indent > 8 {
		return errors.Wrapf(ErrInvalid, "output.indent %d out of range 1..8", c.Output.Indent)
	}
	if c.Output.LineWidth < 20 {
		return errors.Wrapf(ErrInvalid, "output.line_width %d is below 20", c.Output.LineWidth)
	}
	if !slices.Contains(typemap.Presets(), c.Typemap.Preset) {
		return errors.WithHintf(
			errors.Wrapf(ErrInvalid, "typemap.preset %q is unknown", c.Typemap.Preset),
			"known presets: %s", strings.Join(typemap.Presets(), ", "))
	}
	if len(c.Scan.Extensions) == 0 {
		return errors.Wrap(ErrInvalid, "scan.extensions is empty")
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Wrapf(ErrInvalid, "scan.extensions entry %q must start with a dot", ext)
		}
		if ext == c.Output.Extension {
			return errors.Wrapf(ErrInvalid, "scan.extensions contains the output extension %q", ext)
		}
	}
	if c.Run.Jobs < 0 {
		return errors.Wrapf(ErrInvalid, "run.jobs %d is negative", c.Run.Jobs)
	}
	return nil
}

// Jobs returns the effective worker count.
func (c *Config) Jobs() int {
	if c.Run.Jobs > 0 {
		return c.Run.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Table builds the typemap table: the preset merged with the table file.
// A table file with unknown keys still yields the decoded table together
// with an error wrapping typemap.ErrUnknownKeys.
func (c *Config) Table() (typemap.Table, error) {
	t, err := typemap.Preset(c.Typemap.Preset)
	if err != nil {
		return typemap.Table{}, err
	}
	if c.Typemap.File == "" {
		return t, nil
	}
	path := c.Typemap.File
	if !filepath.IsAbs(path) && c.Root != "" {
		path = filepath.Join(c.Root, path)
	}
	file, err := typemap.LoadTable(path)
	if err != nil && !errors.Is(err, typemap.ErrUnknownKeys) {
		return typemap.Table{}, err
	}
	return t.Merge(file), err
}

// FormatOptions returns renderer options for hooks h.
func (c *Config) FormatOptions(h typemap.Hooks) format.Options {
	return format.Options{
		Hooks:       h,
		IndentWidth: c.Output.Indent,
		LineWidth:   c.Output.LineWidth,
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CYSTUB_OUTPUT_EXTENSION.
const EnvPrefix = "CYSTUB"

// keys lists every config key; each is bound to its environment variable.
var keys = []string{
	"output.extension",
	"output.indent",
	"output.line_width",
	"typemap.preset",
	"typemap.file",
	"scan.extensions",
	"scan.ignore",
	"cache.enabled",
	"cache.dir",
	"run.jobs",
	"run.verify",
}

// LoadOptions selects where configuration comes from.
type LoadOptions struct {
	// File is an explicit config path (--config). When empty, FileName is
	// looked up from Dir upwards.
	File string
	// Dir is the start directory for the lookup; empty means the working
	// directory.
	Dir string
}

// Find returns the nearest FileName in startDir or its parents.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load resolves and decodes the configuration, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	path := opts.File
	root := opts.Dir
	if path == "" {
		found, ok, err := Find(opts.Dir)
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		root = filepath.Dir(path)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		root = wd
	}

	// .env рядом с конфигом не перекрывает уже заданные переменные.
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to read .env")
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	cfg.Path = path
	cfg.Root = root
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	d := Default()
	v.SetDefault("output.extension", d.Output.Extension)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("output.line_width", d.Output.LineWidth)
	v.SetDefault("typemap.preset", d.Typemap.Preset)
	v.SetDefault("typemap.file", d.Typemap.File)
	v.SetDefault("scan.extensions", d.Scan.Extensions)
	v.SetDefault("scan.ignore", d.Scan.Ignore)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("run.jobs", d.Run.Jobs)
	v.SetDefault("run.verify", d.Run.Verify)
	return v
}

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cystub/internal/config"
	"cystub/internal/driver"
	"cystub/internal/logger"
	"cystub/internal/typemap"
)

const appName = "cystub"

var profileCleanup = func() {}

// setupRuntime applies the persistent flags shared by every command.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	verbose, _ := pf.GetCount("verbose")
	jsonLog, _ := pf.GetBool("json-log")
	quiet, _ := pf.GetBool("quiet")
	if quiet {
		verbose = logger.VerbosityQuiet
	}
	logger.Initialize(logger.Options{Verbosity: verbose, JSON: jsonLog, Output: cmd.ErrOrStderr()})

	colorFlag, _ := pf.GetString("color")
	enabled, err := colorEnabled(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !enabled

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	profileCleanup = cleanup
	return nil
}

func teardownRuntime() {
	profileCleanup()
	logger.Sync()
}

func colorEnabled(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == "", nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, errors.Newf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// session is the resolved configuration of one command invocation.
type session struct {
	cfg     *config.Config
	table   typemap.Table
	hooks   typemap.Hooks
	color   bool
	quiet   bool
	timings bool
	verbose int
	maxDiag int
}

func loadSession(cmd *cobra.Command) (*session, error) {
	pf := cmd.Root().PersistentFlags()
	cfgPath, _ := pf.GetString("config")
	cfg, err := config.Load(config.LoadOptions{File: cfgPath})
	if err != nil {
		return nil, err
	}

	table, err := cfg.Table()
	switch {
	case errors.Is(err, typemap.ErrUnknownKeys):
		logger.Component("config").Warnw("typemap table has unknown keys", "error", err)
	case err != nil:
		return nil, err
	}
	hooks := table.Hooks()
	// ScanAndRender и прочие внешние вызовы видят те же хуки.
	typemap.SetDefault(hooks)

	s := &session{cfg: cfg, table: table, hooks: hooks, color: !color.NoColor}
	s.quiet, _ = pf.GetBool("quiet")
	s.timings, _ = pf.GetBool("timings")
	s.verbose, _ = pf.GetCount("verbose")
	s.maxDiag, _ = pf.GetInt("max-diagnostics")

	if cfg.Path != "" {
		logger.Component("config").Debugw("configuration loaded", "path", cfg.Path, "preset", cfg.Typemap.Preset)
	}
	return s, nil
}

// openCache returns nil when caching is disabled or the directory is
// unusable; generation then runs uncached.
func (s *session) openCache(disabled bool) *driver.Cache {
	if disabled || !s.cfg.Cache.Enabled {
		return nil
	}
	dir := s.cfg.Cache.Dir
	if dir == "" {
		d, err := driver.DefaultCacheDir(appName)
		if err != nil {
			logger.Component("cache").Warnw("cache disabled", "error", err)
			return nil
		}
		dir = d
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.cfg.Root, dir)
	}
	cache, err := driver.OpenCache(dir)
	if err != nil {
		logger.Component("cache").Warnw("cache disabled", "dir", dir, "error", err)
		return nil
	}
	return cache
}

func (s *session) discovery() (*driver.Discovery, error) {
	return driver.NewDiscovery(s.cfg.Root, s.cfg.Scan.Extensions, s.cfg.Scan.Ignore)
}

// inputsOrRoot defaults to the project root when no inputs were given.
func (s *session) inputsOrRoot(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{s.cfg.Root}
}

func (s *session) driverOptions() driver.Options {
	return driver.Options{
		Format:         s.cfg.FormatOptions(s.hooks),
		Fingerprint:    s.table.Fingerprint(),
		Extension:      s.cfg.Output.Extension,
		MaxDiagnostics: s.maxDiag,
		Jobs:           s.cfg.Jobs(),
		Verify:         s.cfg.Run.Verify,
	}
}

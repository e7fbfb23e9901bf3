package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cystub/internal/driver"
	"cystub/internal/logger"
	"cystub/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Regenerate stubs when sources change",
	Long: `Generate stubs once, then watch the given directories (default: the project
root) and regenerate the stubs of changed files until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watcher.DefaultDebounce, "quiet period before a batch of changes is processed")
	watchCmd.Flags().Bool("no-cache", false, "ignore and do not update the stub cache")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	log := logger.Component("watch")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	disc, err := s.discovery()
	if err != nil {
		return err
	}
	dirs := s.inputsOrRoot(args)
	opts := s.driverOptions()
	opts.Cache = s.openCache(noCache)

	regen := func(files []string) {
		run, err := driver.Generate(ctx, files, opts)
		if err != nil {
			if ctx.Err() == nil {
				log.Errorw("generation failed", "error", err)
			}
			return
		}
		// ошибки не прерывают наблюдение
		_ = reportRun(cmd, s, run, false, diagText)
	}

	if files, err := disc.Expand(ctx, dirs); err == nil {
		regen(files)
	} else {
		log.Warnw("initial generation skipped", "error", err)
	}

	w, err := watcher.New(dirs, watcher.Options{
		Accept: func(p string) bool {
			return disc.HasSourceExt(p) && !disc.Ignored(p)
		},
		SkipDir:  disc.Ignored,
		Debounce: debounce,
	})
	if err != nil {
		return err
	}
	log.Infow("watching", "dirs", dirs)
	return w.Run(ctx, func(changed []string) {
		existing := changed[:0]
		for _, p := range changed {
			if _, err := os.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}
		if len(existing) == 0 {
			return
		}
		log.Infow("regenerating", "files", len(existing))
		regen(existing)
	})
}

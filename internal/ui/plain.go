package ui

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"cystub/internal/driver"
)

// BarSink draws a single-line progress bar for terminals where the full
// view is turned off. It counts final events only.
type BarSink struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewBarSink creates a bar for total files writing to w.
func NewBarSink(w io.Writer, total int, description string) *BarSink {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &BarSink{bar: bar}
}

func (s *BarSink) OnEvent(ev driver.Event) {
	if ev.File == "" || ev.Stage != driver.StageWrite {
		return
	}
	if ev.Status != driver.StatusDone && ev.Status != driver.StatusError {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.bar.Add(1)
}

// Finish completes the bar.
func (s *BarSink) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.bar.Finish()
}

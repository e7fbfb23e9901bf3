package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cystub/internal/driver"
	"cystub/internal/ui"
)

type generateOutcome struct {
	run *driver.Run
	err error
}

func runGenerateWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Run, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		run, err := driver.Generate(ctx, files, opts)
		outcomeCh <- generateOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти раньше: не блокируем воркеры
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}

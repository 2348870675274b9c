package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"amberfy/internal/driver"
	"amberfy/internal/pipeline"
	"amberfy/internal/ui"
)

type batchOutcome struct {
	result driver.DirResult
	err    error
}

func runBatchWithUI(ctx context.Context, title string, req driver.DirRequest) (driver.DirResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.ConvertDir(ctx, reqCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

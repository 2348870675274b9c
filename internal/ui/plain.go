package ui

import (
	"fmt"
	"io"
	"sync"

	"amberfy/internal/pipeline"
)

// PlainSink prints one line per finished file, for terminals without a TUI
// and for logs. Safe for concurrent use.
type PlainSink struct {
	W io.Writer

	mu     sync.Mutex
	cached map[string]bool
}

func (s *PlainSink) OnEvent(evt pipeline.Event) {
	if evt.File == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case evt.Status == pipeline.StatusCached:
		if s.cached == nil {
			s.cached = make(map[string]bool)
		}
		s.cached[evt.File] = true
	case evt.Status == pipeline.StatusError:
		fmt.Fprintf(s.W, "%-7s %s: %v\n", "error", evt.File, evt.Err)
	case evt.Stage == pipeline.StageWrite && evt.Status == pipeline.StatusDone:
		label := "done"
		if s.cached[evt.File] {
			label = "cached"
		}
		fmt.Fprintf(s.W, "%-7s %s\n", label, evt.File)
	}
}

package pipeline

import "time"

// Stage describes a high-level conversion phase.
type Stage string

const (
	// StageLoad is the shader job loading stage.
	StageLoad Stage = "load"
	// StageAssemble is the script assembly stage.
	StageAssemble Stage = "assemble"
	// StageWrite is the output writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the job is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the job is currently converting.
	StatusWorking Status = "working"
	// StatusDone indicates the job finished.
	StatusDone Status = "done"
	// StatusError indicates the job failed.
	StatusError Status = "error"
	// StatusCached indicates the script came from the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for a shader job (or for the overall batch when
// File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations for one conversion.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

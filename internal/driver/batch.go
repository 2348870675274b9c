package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"amberfy/internal/amber"
	"amberfy/internal/diag"
	"amberfy/internal/observ"
	"amberfy/internal/pipeline"
)

// DirRequest describes a batch conversion of every shader job under Root.
type DirRequest struct {
	// Root is the directory walked for shader jobs.
	Root string

	// Settings apply to every job in the batch.
	Settings amber.Settings

	// ProcessingInfo is stamped on every job file, e.g. "no processing" or
	// "optimized with spirv-opt -O".
	ProcessingInfo string

	// Jobs bounds the worker pool. Zero or negative means GOMAXPROCS.
	Jobs int

	// Cache, when non-nil, is consulted per job.
	Cache *ScriptCache

	// Sink receives progress events for every job. Nil drops them.
	Sink pipeline.ProgressSink
}

// DirResult reports a finished batch.
type DirResult struct {
	// Pairs are the discovered conversions, sorted by variant path.
	Pairs []Pair

	// Results are the per-pair outcomes, index-aligned with Pairs. The slot
	// of a failed pair holds whatever stages completed before the failure.
	Results []Result

	// Bag collects one classified diagnostic per failed pair, sorted.
	Bag *diag.Bag

	// Timing breaks the batch down into discovery and conversion phases.
	Timing observ.Report
}

// FileTest builds the amber test for one discovered pair.
func (p Pair) FileTest(processingInfo string) amber.FileTest {
	test := amber.FileTest{
		Variant: amber.JobFile{
			NamePrefix:      variantDirName,
			AsmSpirvJobJSON: p.Variant,
			ProcessingInfo:  processingInfo,
		},
	}
	if p.Reference != "" {
		test.Reference = &amber.JobFile{
			NamePrefix:      referenceDirName,
			AsmSpirvJobJSON: p.Reference,
			ProcessingInfo:  processingInfo,
		}
	}
	return test
}

// ConvertDir discovers every shader job under req.Root and converts them
// concurrently. A failed job contributes a diagnostic to the result's Bag
// and the batch carries on; the returned error is reserved for walk
// failures and context cancellation.
func ConvertDir(ctx context.Context, req DirRequest) (DirResult, error) {
	timer := observ.NewTimer()

	discover := timer.Begin("discover")
	pairs, err := DiscoverJobs(req.Root)
	timer.End(discover, fmt.Sprintf("%d jobs", len(pairs)))
	if err != nil {
		return DirResult{Timing: timer.Report()}, err
	}

	out := DirResult{
		Pairs:   pairs,
		Results: make([]Result, len(pairs)),
		Bag:     diag.NewBag(len(pairs)),
	}
	if len(pairs) == 0 {
		out.Timing = timer.Report()
		return out, nil
	}

	sink := req.Sink
	if sink == nil {
		sink = pipeline.NopSink{}
	}
	for _, pair := range pairs {
		sink.OnEvent(pipeline.Event{File: pair.Variant, Status: pipeline.StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	workers := min(jobs, len(pairs))

	// Диагностики собираем по индексам, чтобы не синхронизировать Bag.
	failures := make([]*diag.Diagnostic, len(pairs))

	convert := timer.Begin("convert")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pair := range pairs {
		g.Go(func(i int, pair Pair) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				res, err := Convert(gctx, Request{
					Test:     pair.FileTest(req.ProcessingInfo),
					Output:   pair.Output,
					Settings: req.Settings,
					Cache:    req.Cache,
					Sink:     sink,
				})

				// Мьютекс не нужен — индекс i уникален.
				out.Results[i] = res
				if err != nil {
					d := diag.FromError(pair.Variant, err)
					failures[i] = &d
				}
				return nil
			}
		}(i, pair))
	}

	if err := g.Wait(); err != nil {
		timer.End(convert, "cancelled")
		out.Timing = timer.Report()
		return out, err
	}
	timer.End(convert, fmt.Sprintf("%d workers", workers))

	for _, d := range failures {
		if d != nil {
			out.Bag.Add(*d)
		}
	}
	out.Bag.Sort()

	out.Timing = timer.Report()
	return out, nil
}

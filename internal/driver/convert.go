package driver

import (
	"context"
	"time"

	"amberfy/internal/amber"
	"amberfy/internal/ctxlog"
	"amberfy/internal/pipeline"
)

// Request describes a single conversion: one file-based test rendered into
// one AmberScript file.
type Request struct {
	// Test locates the variant job and, optionally, its reference.
	Test amber.FileTest

	// Output is the path the script is written to. Parent directories are
	// created as needed.
	Output string

	// Settings select the script's header sections and trailing commands.
	Settings amber.Settings

	// Cache, when non-nil, short-circuits the load and assemble stages for
	// inputs converted before with the same settings.
	Cache *ScriptCache

	// Sink receives progress events. Nil drops them.
	Sink pipeline.ProgressSink
}

// Result reports one finished conversion.
type Result struct {
	// Output is the path the script was written to.
	Output string

	// Script is the rendered text, byte-identical to the file contents.
	Script string

	// Cached reports whether the script came from the disk cache.
	Cached bool

	// Timings holds the duration of each stage that ran.
	Timings pipeline.Timings
}

// Convert runs the load, assemble and write stages for one test, timing
// each stage and reporting it through the sink as it runs. A cache hit
// skips load and assemble entirely; the write still happens, so the output
// file exists either way.
func Convert(ctx context.Context, req Request) (Result, error) {
	sink := req.Sink
	if sink == nil {
		sink = pipeline.NopSink{}
	}
	logger := ctxlog.FromContext(ctx)
	file := req.Test.Variant.AsmSpirvJobJSON
	res := Result{Output: req.Output}

	var key Digest
	haveKey := false
	if req.Cache != nil {
		k, err := CacheKey(req.Test, req.Settings)
		if err != nil {
			// Unreadable inputs surface as a load error below.
			logger.Debug("cache key unavailable", "file", file, "err", err)
		} else {
			key = k
			haveKey = true
			script, ok, err := req.Cache.Get(key)
			if err != nil {
				logger.Warn("cache read failed", "file", file, "err", err)
			} else if ok {
				res.Script = script
				res.Cached = true
				sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageAssemble, Status: pipeline.StatusCached})
				if err := writeStage(&res, sink, file); err != nil {
					return res, err
				}
				logger.Info("amberfy", "variant", file, "output", req.Output, "cached", true)
				return res, nil
			}
		}
	}

	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	start := time.Now()
	test, err := req.Test.ToTest()
	elapsed := time.Since(start)
	res.Timings.Set(pipeline.StageLoad, elapsed)
	if err != nil {
		sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err, Elapsed: elapsed})
		return res, err
	}
	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageLoad, Status: pipeline.StatusDone, Elapsed: elapsed})

	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageAssemble, Status: pipeline.StatusWorking})
	start = time.Now()
	script, err := amber.Script(test, req.Settings)
	elapsed = time.Since(start)
	res.Timings.Set(pipeline.StageAssemble, elapsed)
	if err != nil {
		sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageAssemble, Status: pipeline.StatusError, Err: err, Elapsed: elapsed})
		return res, err
	}
	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageAssemble, Status: pipeline.StatusDone, Elapsed: elapsed})
	res.Script = script

	if req.Cache != nil && haveKey {
		if err := req.Cache.Put(key, script); err != nil {
			logger.Warn("cache write failed", "file", file, "err", err)
		}
	}

	if err := writeStage(&res, sink, file); err != nil {
		return res, err
	}
	logger.Info("amberfy", "variant", file, "output", req.Output)
	return res, nil
}

func writeStage(res *Result, sink pipeline.ProgressSink, file string) error {
	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	start := time.Now()
	err := amber.SaveScript(res.Output, res.Script)
	elapsed := time.Since(start)
	res.Timings.Set(pipeline.StageWrite, elapsed)
	if err != nil {
		sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: elapsed})
	return nil
}

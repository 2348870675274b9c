package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"amberfy/internal/ctxlog"
	"amberfy/internal/diag"
	"amberfy/internal/driver"
	"amberfy/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] DIR",
	Short: "Convert every shader job found under a directory",
	Long: `Walk DIR for shader job files (.json with at least one .asm stage),
pair variant jobs with their reference jobs, and convert each pair into
an Amber script next to the variant job.

Failures are collected per job and reported at the end; one broken job
never stops the rest of the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	addScriptFlags(batchCmd)
	batchCmd.Flags().Int("jobs", 0, "max parallel conversions (0 = number of CPUs)")
	batchCmd.Flags().Bool("no-cache", false, "skip the rendered-script disk cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]

	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	settings, processing, err := buildScriptSettings(cmd, manifest)
	if err != nil {
		return err
	}

	var batchCfg batchConfig
	if manifest != nil {
		batchCfg = manifest.Config.Batch
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("jobs") && batchCfg.Jobs != nil {
		jobs = *batchCfg.Jobs
	}

	noCache, err := resolveBoolFlag(cmd, "no-cache", batchCfg.NoCache)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var cache *driver.ScriptCache
	if !noCache {
		cache, err = driver.OpenScriptCache("amberfy")
		if err != nil {
			// Кеш опционален: работаем дальше без него
			ctxlog.FromContext(ctx).Warn("script cache unavailable", "err", err)
			cache = nil
		}
	}

	req := driver.DirRequest{
		Root:           root,
		Settings:       settings,
		ProcessingInfo: processing,
		Jobs:           jobs,
		Cache:          cache,
	}

	var out driver.DirResult
	if shouldUseTUI(mode) {
		out, err = runBatchWithUI(ctx, "amberfy batch", req)
	} else {
		req.Sink = &ui.PlainSink{W: cmd.OutOrStdout()}
		out, err = driver.ConvertDir(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("batch conversion failed: %w", err)
	}

	if showTimings {
		printPhaseTimings(os.Stderr, out.Timing)
	}

	cached := 0
	for _, res := range out.Results {
		if res.Cached {
			cached++
		}
	}

	if out.Bag.HasErrors() {
		fmt.Fprint(os.Stderr, diag.FormatReport(out.Bag))
		failed := color.New(color.FgRed, color.Bold).Sprintf("%d of %d conversions failed", out.Bag.Len(), len(out.Pairs))
		fmt.Fprintln(os.Stderr, failed)
		// Suppress cobra usage output on conversion failures
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - failures already printed
	}

	if cached > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "converted %d shader jobs (%d cached)\n", len(out.Pairs), cached)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "converted %d shader jobs\n", len(out.Pairs))
	}
	return nil
}

// Package main implements the amberfy CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"amberfy/internal/ctxlog"
	"amberfy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "amberfy",
	Short: "Convert SPIR-V assembly shader jobs into AmberScript tests",
	Long: `amberfy turns fuzzer-found shader jobs (disassembled SPIR-V plus a
uniform/SSBO description in JSON) into self-contained AmberScript files the
Amber GPU test runner can execute.`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("log-level", "warn", "log verbosity (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("ui", "auto", "user interface (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newLogger builds the stderr logger for one command invocation.
func newLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// commandContext returns the command's context with the configured logger
// attached.
func commandContext(cmd *cobra.Command) (context.Context, error) {
	levelStr, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	return ctxlog.WithLogger(cmd.Context(), newLogger(levelStr)), nil
}

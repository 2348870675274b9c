package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter amberfy.toml",
	Long: `Create an amberfy.toml manifest in the given directory (or the current
one when [path] is omitted). convert and batch pick the manifest up from
any subdirectory, so one file can configure a whole tree of shader jobs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes an amberfy project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// an amberfy.toml manifest.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a description from the directory basename, and refuses to
// initialize if amberfy.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Derive a description from the directory basename
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "shader-jobs"
	}

	manifestPath := filepath.Join(target, "amberfy.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized amberfy project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - amberfy.toml\n")
	return nil
}

// buildDefaultManifest returns a starter TOML manifest with every section
// present and the optional keys commented out.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Amberfy project manifest
[script]
short_description = "%s"
# copyright_file = "copyright.txt"
# comment_file = "comment.txt"
# extra_commands_file = "extra_commands.txt"
# generated_comment = true
# graphicsfuzz_comment = true
# default_fence_timeout = false

[spirv_opt]
# args = ["-O"]
# hash = ""

[batch]
# jobs = 0
# no_cache = false
`, name)
}

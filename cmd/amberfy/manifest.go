package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectManifest is an optional amberfy.toml found by walking upward from
// the working directory. Every section and key is optional; flags that the
// user sets explicitly win over manifest values.
type projectManifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Script   scriptConfig   `toml:"script"`
	SpirvOpt spirvOptConfig `toml:"spirv_opt"`
	Batch    batchConfig    `toml:"batch"`
}

type scriptConfig struct {
	ShortDescription    string `toml:"short_description"`
	CopyrightFile       string `toml:"copyright_file"`
	CommentFile         string `toml:"comment_file"`
	ExtraCommandsFile   string `toml:"extra_commands_file"`
	GeneratedComment    *bool  `toml:"generated_comment"`
	GraphicsFuzzComment *bool  `toml:"graphicsfuzz_comment"`
	DefaultFenceTimeout *bool  `toml:"default_fence_timeout"`
}

type spirvOptConfig struct {
	Args []string `toml:"args"`
	Hash string   `toml:"hash"`
}

type batchConfig struct {
	Jobs    *int  `toml:"jobs"`
	NoCache *bool `toml:"no_cache"`
}

func findAmberfyToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "amberfy.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findAmberfyToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg manifestConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// resolveManifestPath turns a manifest-relative path into an absolute one.
// Absolute paths pass through untouched.
func (m *projectManifest) resolveManifestPath(path string) string {
	if m == nil || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Root, filepath.FromSlash(path))
}

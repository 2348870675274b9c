package shaderjob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stage file extensions. The extension names the pipeline stage, not the
// language: NAME.frag is GLSL, NAME.frag.asm is SPIR-V assembly.
const (
	ExtFragment = ".frag"
	ExtVertex   = ".vert"
	ExtCompute  = ".comp"
)

// Language suffixes appended after the stage extension.
const (
	SuffixGLSL     = ""
	SuffixSPIRV    = ".spv"
	SuffixAsmSPIRV = ".asm"
)

// AllExtensions lists every stage extension a shader job may carry.
var AllExtensions = []string{ExtFragment, ExtVertex, ExtCompute}

// StagePath returns the path of the stage file belonging to jobJSON for the
// given extension and language suffix: the .json extension is replaced, so
// dir/foo.json with (".comp", ".asm") becomes dir/foo.comp.asm.
func StagePath(jobJSON, ext, suffix string) string {
	base := strings.TrimSuffix(jobJSON, filepath.Ext(jobJSON))
	return base + ext + suffix
}

// RelatedFiles returns the stage files of jobJSON that exist on disk, in the
// cross-product order of exts and suffixes.
func RelatedFiles(jobJSON string, exts, suffixes []string) ([]string, error) {
	var files []string
	for _, ext := range exts {
		for _, suffix := range suffixes {
			candidate := StagePath(jobJSON, ext, suffix)
			if _, err := os.Stat(candidate); err == nil {
				files = append(files, candidate)
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
	}
	return files, nil
}

// ReadStage reads the stage file of jobJSON for the given extension and
// suffix. ok is false when the stage file does not exist, which is not an
// error: absent stages are how pass-through shaders are expressed.
func ReadStage(jobJSON, ext, suffix string) (text string, ok bool, err error) {
	path := StagePath(jobJSON, ext, suffix)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), true, nil
}

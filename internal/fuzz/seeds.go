package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)

	// минимальные примеры на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"injectionSwitch": {"func": "glUniform2f", "args": [0.0, 1.0], "binding": 0}}`))
	f.Add([]byte(`{"$compute": {"num_groups": [4, 1, 1], "buffer": {"binding": 0, "fields": [{"type": "int", "data": [0]}]}}}`))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "amber", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.json файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

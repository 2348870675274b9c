package amber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amberfy/internal/ctxlog"
)

// apacheHeader matches the copyright file a test campaign typically supplies.
const apacheHeader = `
Copyright 2019 The GraphicsFuzz Project Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
implied. See the License for the specific language governing
permissions and limitations under the License.
`

func fullSettings() Settings {
	return Settings{
		CopyrightHeaderText:    apacheHeader,
		AddGeneratedComment:    true,
		AddGraphicsFuzzComment: true,
		ShortDescription:       "A fragment shader that always writes red",
		CommentText:            "The test passes because both shaders render the same image.",
		SpirvOptArgs:           []string{"--eliminate-dead-branches", "--merge-return"},
		SpirvOptHash:           "9215c1b7df0029f27807e8c8d7ec80532ce90a87",
		ExtraCommands:          "\nEXPECT variant_framebuffer IDX 0 0 SIZE 256 256 EQ_RGBA 255 0 0 255\n",
	}
}

func computeSettings() Settings {
	return Settings{
		AddGraphicsFuzzComment: true,
		ShortDescription:       "A compute shader that writes a sequence to an SSBO",
	}
}

// compareGolden compares actual output with the golden file at path.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("write golden file: %v", err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.", path)
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}
	if string(expected) != actual {
		t.Errorf("output differs from golden %s:\n%s", path, firstDiff(string(expected), actual))
	}
}

// firstDiff reports the first line where expected and actual disagree.
func firstDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")
	n := len(expectedLines)
	if len(actualLines) > n {
		n = len(actualLines)
	}
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			return fmt.Sprintf("line %d:\n- %q\n+ %q", i+1, e, a)
		}
	}
	return "outputs differ only in length"
}

func graphicsVariantFile() JobFile {
	return JobFile{
		NamePrefix:      "variant",
		AsmSpirvJobJSON: filepath.Join("testdata", "graphics", "variant", "variant.json"),
		SourceJSON:      filepath.Join("testdata", "graphics", "source", "variant.json"),
		ProcessingInfo:  "optimized with spirv-opt --eliminate-dead-branches --merge-return",
	}
}

func computeVariantFile() JobFile {
	return JobFile{
		NamePrefix:      "variant",
		AsmSpirvJobJSON: filepath.Join("testdata", "compute", "variant", "variant.json"),
	}
}

func TestGraphicsScriptWithReference(t *testing.T) {
	fileTest := FileTest{
		Reference: &JobFile{
			NamePrefix:      "reference",
			AsmSpirvJobJSON: filepath.Join("testdata", "graphics", "reference", "reference.json"),
		},
		Variant: graphicsVariantFile(),
	}
	test, err := fileTest.ToTest()
	if err != nil {
		t.Fatalf("ToTest returned error: %v", err)
	}
	script, err := Script(test, fullSettings())
	if err != nil {
		t.Fatalf("Script returned error: %v", err)
	}
	compareGolden(t, filepath.Join("testdata", "golden", "graphics_pair.amber"), script)
}

func TestGraphicsScriptVariantOnly(t *testing.T) {
	fileTest := FileTest{
		Variant: JobFile{
			NamePrefix:      "variant",
			AsmSpirvJobJSON: filepath.Join("testdata", "graphics", "variant", "variant.json"),
		},
	}
	test, err := fileTest.ToTest()
	if err != nil {
		t.Fatalf("ToTest returned error: %v", err)
	}
	script, err := Script(test, Settings{})
	if err != nil {
		t.Fatalf("Script returned error: %v", err)
	}
	if strings.Contains(script, "EXPECT") {
		t.Fatalf("single-job script must not contain a comparison")
	}
	compareGolden(t, filepath.Join("testdata", "golden", "graphics_solo.amber"), script)
}

func TestComputeScript(t *testing.T) {
	test, err := FileTest{Variant: computeVariantFile()}.ToTest()
	if err != nil {
		t.Fatalf("ToTest returned error: %v", err)
	}
	script, err := Script(test, computeSettings())
	if err != nil {
		t.Fatalf("Script returned error: %v", err)
	}
	compareGolden(t, filepath.Join("testdata", "golden", "compute.amber"), script)
}

func TestComputeScriptIgnoresReference(t *testing.T) {
	variant, err := computeVariantFile().ToJob()
	if err != nil {
		t.Fatalf("ToJob returned error: %v", err)
	}
	solo, err := Script(Test{Variant: variant}, computeSettings())
	if err != nil {
		t.Fatalf("Script returned error: %v", err)
	}
	paired, err := Script(Test{Reference: variant, Variant: variant}, computeSettings())
	if err != nil {
		t.Fatalf("Script returned error: %v", err)
	}
	if solo != paired {
		t.Fatalf("reference job changed compute output:\n%s", firstDiff(solo, paired))
	}
}

func TestScriptMismatchedPair(t *testing.T) {
	_, err := Script(Test{Reference: &ComputeJob{}, Variant: &GraphicsJob{}}, Settings{})
	if !errors.Is(err, ErrInconsistentTestPair) {
		t.Fatalf("expected ErrInconsistentTestPair, got %v", err)
	}
}

type bogusJob struct{}

func (bogusJob) isJob() {}

func TestScriptUnknownJobKind(t *testing.T) {
	_, err := Script(Test{Variant: bogusJob{}}, Settings{})
	if !errors.Is(err, ErrUnknownJobKind) {
		t.Fatalf("expected ErrUnknownJobKind, got %v", err)
	}
}

func TestWriteScript(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	out := filepath.Join(t.TempDir(), "results", "test.amber")
	written, err := WriteScript(ctx, FileTest{Variant: computeVariantFile()}, out, computeSettings())
	if err != nil {
		t.Fatalf("WriteScript returned error: %v", err)
	}
	if written != out {
		t.Fatalf("WriteScript = %q, want %q", written, out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	golden, err := os.ReadFile(filepath.Join("testdata", "golden", "compute.amber"))
	if err != nil {
		t.Fatalf("reading golden: %v", err)
	}
	if string(data) != string(golden) {
		t.Fatalf("written script differs from golden:\n%s", firstDiff(string(golden), string(data)))
	}
}

func TestWriteScriptLoadFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	out := filepath.Join(t.TempDir(), "test.amber")
	missing := FileTest{Variant: JobFile{
		NamePrefix:      "variant",
		AsmSpirvJobJSON: filepath.Join(t.TempDir(), "nope.json"),
	}}
	if _, err := WriteScript(ctx, missing, out, Settings{}); err == nil {
		t.Fatalf("expected error for missing job JSON")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output must not exist after a failed conversion")
	}
}

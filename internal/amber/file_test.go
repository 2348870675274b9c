package amber

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestToJobGraphics(t *testing.T) {
	job, err := graphicsVariantFile().ToJob()
	if err != nil {
		t.Fatalf("ToJob returned error: %v", err)
	}
	graphics, ok := job.(*GraphicsJob)
	if !ok {
		t.Fatalf("ToJob = %T, want *GraphicsJob", job)
	}
	if graphics.NamePrefix != "variant" {
		t.Fatalf("NamePrefix = %q, want variant", graphics.NamePrefix)
	}
	if graphics.Vertex.SpirvAsm == "" {
		t.Fatalf("vertex assembly should be loaded")
	}
	if graphics.Vertex.Source != "" {
		t.Fatalf("no vertex GLSL exists, got %q", graphics.Vertex.Source)
	}
	if graphics.Fragment.SpirvAsm == "" || graphics.Fragment.Source == "" {
		t.Fatalf("fragment assembly and GLSL should both be loaded")
	}
	if !strings.Contains(graphics.UniformDefinitions, "BUFFER variant_threshold DATA_TYPE int32 DATA") {
		t.Fatalf("uniform definitions incomplete:\n%s", graphics.UniformDefinitions)
	}
}

func TestToJobGraphicsPassthroughVertex(t *testing.T) {
	file := JobFile{
		NamePrefix:      "reference",
		AsmSpirvJobJSON: filepath.Join("testdata", "graphics", "reference", "reference.json"),
	}
	job, err := file.ToJob()
	if err != nil {
		t.Fatalf("ToJob returned error: %v", err)
	}
	graphics, ok := job.(*GraphicsJob)
	if !ok {
		t.Fatalf("ToJob = %T, want *GraphicsJob", job)
	}
	if graphics.Vertex.SpirvAsm != "" {
		t.Fatalf("reference job has no vertex assembly, got %d bytes", len(graphics.Vertex.SpirvAsm))
	}
}

func TestToJobCompute(t *testing.T) {
	job, err := computeVariantFile().ToJob()
	if err != nil {
		t.Fatalf("ToJob returned error: %v", err)
	}
	compute, ok := job.(*ComputeJob)
	if !ok {
		t.Fatalf("ToJob = %T, want *ComputeJob", job)
	}
	if compute.NumGroups != "8 4 1" {
		t.Fatalf("NumGroups = %q, want %q", compute.NumGroups, "8 4 1")
	}
	if compute.InitialBufferTemplate != "BUFFER {} DATA_TYPE int32 DATA\n 0 1 2 3\nEND\n" {
		t.Fatalf("InitialBufferTemplate = %q", compute.InitialBufferTemplate)
	}
	if compute.EmptyBufferTemplate != "BUFFER {} DATA_TYPE int32 SIZE 4 0\n" {
		t.Fatalf("EmptyBufferTemplate = %q", compute.EmptyBufferTemplate)
	}
	if compute.Compute.Kind != StageCompute {
		t.Fatalf("Kind = %q, want compute", compute.Compute.Kind)
	}
}

func TestToJobMissingFragmentStage(t *testing.T) {
	dir := t.TempDir()
	jobJSON := filepath.Join(dir, "variant.json")
	writeFile(t, jobJSON, `{"u": {"func": "glUniform1f", "args": [1.0], "binding": 0}}`)

	_, err := JobFile{NamePrefix: "variant", AsmSpirvJobJSON: jobJSON}.ToJob()
	if !errors.Is(err, ErrMissingRequiredStage) {
		t.Fatalf("expected ErrMissingRequiredStage, got %v", err)
	}
}

func TestToJobComputeMetadataWithoutComputeStage(t *testing.T) {
	// Without a .comp.asm next to it the job counts as graphics, whatever
	// the JSON says, and fails on the absent fragment stage.
	dir := t.TempDir()
	jobJSON := filepath.Join(dir, "variant.json")
	writeFile(t, jobJSON, `{"$compute": {"num_groups": [1, 1, 1], "buffer": {"binding": 0, "fields": [{"type": "int", "data": [0]}]}}}`)

	_, err := JobFile{NamePrefix: "variant", AsmSpirvJobJSON: jobJSON}.ToJob()
	if !errors.Is(err, ErrMissingRequiredStage) {
		t.Fatalf("expected ErrMissingRequiredStage, got %v", err)
	}
}

func TestToJobComputeWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	jobJSON := filepath.Join(dir, "variant.json")
	writeFile(t, jobJSON, `{"u": {"func": "glUniform1f", "args": [1.0], "binding": 0}}`)
	writeFile(t, filepath.Join(dir, "variant.comp.asm"), "OpNop\n")

	_, err := JobFile{NamePrefix: "variant", AsmSpirvJobJSON: jobJSON}.ToJob()
	if !errors.Is(err, ErrMalformedComputeBuffer) {
		t.Fatalf("expected ErrMalformedComputeBuffer, got %v", err)
	}
}

func TestToJobUnsupportedUniform(t *testing.T) {
	dir := t.TempDir()
	jobJSON := filepath.Join(dir, "variant.json")
	writeFile(t, jobJSON, `{"u": {"func": "glUniform4ui", "args": [1], "binding": 0}}`)
	writeFile(t, filepath.Join(dir, "variant.frag.asm"), "OpNop\n")

	_, err := JobFile{NamePrefix: "variant", AsmSpirvJobJSON: jobJSON}.ToJob()
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestFileTestToTestReferenceFirst(t *testing.T) {
	// A broken reference surfaces before the variant is even read.
	dir := t.TempDir()
	badJSON := filepath.Join(dir, "reference.json")
	writeFile(t, badJSON, `{"u": {"func": "glUniform1f"`)

	fileTest := FileTest{
		Reference: &JobFile{NamePrefix: "reference", AsmSpirvJobJSON: badJSON},
		Variant:   graphicsVariantFile(),
	}
	if _, err := fileTest.ToTest(); err == nil {
		t.Fatalf("expected error from broken reference job")
	}
}

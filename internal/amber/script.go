package amber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"amberfy/internal/ctxlog"
)

const (
	// framebufferSize is the edge length of the square framebuffer every
	// graphics test renders into.
	framebufferSize = 256

	// rmseTolerance is the root-mean-square error allowed between reference
	// and variant framebuffers before the comparison fails.
	rmseTolerance = 7
)

// graphicsTest renders the script for a graphics test: per job a shader
// pair, its uniforms, a framebuffer and a pipeline, then a clear and a
// full-screen draw, with the reference job (when present) first. With both
// jobs present the script ends with a fuzzy framebuffer comparison.
func graphicsTest(test Test, settings Settings) (string, error) {
	variant, ok := test.Variant.(*GraphicsJob)
	if !ok {
		return "", fmt.Errorf("graphics test requires a graphics variant: %w", ErrInconsistentTestPair)
	}

	jobs := []*GraphicsJob{variant}
	if test.Reference != nil {
		reference, ok := test.Reference.(*GraphicsJob)
		if !ok {
			return "", fmt.Errorf("reference and variant jobs must be the same kind: %w", ErrInconsistentTestPair)
		}
		jobs = append([]*GraphicsJob{reference}, jobs...)
	}

	var b strings.Builder
	b.WriteString(header(settings))

	for _, job := range jobs {
		prefix := job.NamePrefix
		vertexShaderName := prefix + "_vertex_shader"
		fragmentShaderName := prefix + "_fragment_shader"

		b.WriteString(shaderDef(job.Vertex, vertexShaderName))
		b.WriteString(shaderDef(job.Fragment, fragmentShaderName))

		b.WriteString("\n")
		b.WriteString(job.UniformDefinitions)

		fmt.Fprintf(&b, "\nBUFFER %s_framebuffer FORMAT B8G8R8A8_UNORM\n", prefix)

		fmt.Fprintf(&b, "\nPIPELINE graphics %s_pipeline\n", prefix)
		fmt.Fprintf(&b, "  ATTACH %s\n", vertexShaderName)
		fmt.Fprintf(&b, "  ATTACH %s\n", fragmentShaderName)
		fmt.Fprintf(&b, "  FRAMEBUFFER_SIZE %d %d\n", framebufferSize, framebufferSize)
		fmt.Fprintf(&b, "  BIND BUFFER %s_framebuffer AS color LOCATION 0\n", prefix)
		b.WriteString(job.UniformBindings)
		b.WriteString("END\n")
		fmt.Fprintf(&b, "CLEAR_COLOR %s_pipeline 0 0 0 255\n", prefix)

		fmt.Fprintf(&b, "\nCLEAR %s_pipeline\n", prefix)
		fmt.Fprintf(&b, "RUN %s_pipeline DRAW_RECT POS 0 0 SIZE %d %d\n",
			prefix, framebufferSize, framebufferSize)
		b.WriteString("\n")
	}

	// The comparison is the last directive and carries no trailing newline.
	for i := 1; i < len(jobs); i++ {
		fmt.Fprintf(&b, "EXPECT %s_framebuffer RMSE_BUFFER %s_framebuffer TOLERANCE %d",
			jobs[0].NamePrefix, jobs[i].NamePrefix, rmseTolerance)
	}

	if settings.ExtraCommands != "" {
		b.WriteString(settings.ExtraCommands)
	}
	return b.String(), nil
}

// computeTest renders the script for a compute test: the shader, its
// uniforms, the SSBO with its initial data, a pipeline binding the SSBO at
// descriptor set 0 binding 0, and the dispatch. A reference job, if any, is
// ignored; what a reference comparison should check for compute tests is
// not settled.
func computeTest(test Test, settings Settings) (string, error) {
	variant, ok := test.Variant.(*ComputeJob)
	if !ok {
		return "", fmt.Errorf("compute test requires a compute variant: %w", ErrInconsistentTestPair)
	}

	shaderName := variant.NamePrefix + "_compute_shader"
	ssboName := variant.NamePrefix + "_ssbo"

	var b strings.Builder
	b.WriteString(header(settings))

	b.WriteString(shaderDef(variant.Compute, shaderName))

	b.WriteString("\n")
	b.WriteString(variant.UniformDefinitions)

	b.WriteString("\n")
	b.WriteString(fillTemplate(variant.InitialBufferTemplate, ssboName))

	b.WriteString("\nPIPELINE compute gfz_pipeline\n")
	fmt.Fprintf(&b, "  ATTACH %s\n", shaderName)
	fmt.Fprintf(&b, "  BIND BUFFER %s AS storage DESCRIPTOR_SET 0 BINDING 0\n", ssboName)
	b.WriteString(variant.UniformBindings)
	b.WriteString("END\n")

	fmt.Fprintf(&b, "\nRUN gfz_pipeline %s\n", variant.NumGroups)

	if settings.ExtraCommands != "" {
		b.WriteString(settings.ExtraCommands)
	}
	return b.String(), nil
}

// Script renders the AmberScript text for a resolved test, dispatching on
// the kind of the variant job.
func Script(test Test, settings Settings) (string, error) {
	switch test.Variant.(type) {
	case *GraphicsJob:
		return graphicsTest(test, settings)
	case *ComputeJob:
		return computeTest(test, settings)
	default:
		return "", fmt.Errorf("shader job type %T: %w", test.Variant, ErrUnknownJobKind)
	}
}

// WriteScript loads a file-based test, renders it and writes the script to
// outputPath, creating parent directories as needed. On any error nothing
// is written. Returns outputPath for chaining.
func WriteScript(ctx context.Context, test FileTest, outputPath string, settings Settings) (string, error) {
	logger := ctxlog.FromContext(ctx)
	if test.Reference != nil {
		logger.Info("amberfy",
			"variant", test.Variant.AsmSpirvJobJSON,
			"reference", test.Reference.AsmSpirvJobJSON,
			"output", outputPath)
	} else {
		logger.Info("amberfy",
			"variant", test.Variant.AsmSpirvJobJSON,
			"output", outputPath)
	}

	resolved, err := test.ToTest()
	if err != nil {
		return "", err
	}
	script, err := Script(resolved, settings)
	if err != nil {
		return "", err
	}
	if err := SaveScript(outputPath, script); err != nil {
		return "", err
	}
	return outputPath, nil
}

// SaveScript writes a rendered script to path, creating parent directories
// as needed.
func SaveScript(path, script string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w %q: %w", ErrOutputWrite, path, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("%w %q: %w", ErrOutputWrite, path, err)
	}
	return nil
}

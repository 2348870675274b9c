package amber

import (
	"fmt"
	"strings"

	"amberfy/internal/shaderjob"
)

// JobFile locates a shader job on disk and knows how to load it into a Job.
// Stage files are found next to AsmSpirvJobJSON by the naming convention the
// shaderjob package implements.
type JobFile struct {
	// NamePrefix namespaces the job's names in the script, e.g. "reference"
	// or "variant".
	NamePrefix string

	// AsmSpirvJobJSON is the job JSON whose siblings hold disassembled
	// SPIR-V (.asm) stages.
	AsmSpirvJobJSON string

	// SourceJSON, when set, is a sibling job JSON whose stage files hold the
	// original GLSL, emitted as comments above each shader.
	SourceJSON string

	// ProcessingInfo records how the assembly was produced, e.g. "optimized
	// with spirv-opt -O".
	ProcessingInfo string
}

// isComputeJob reports whether the job carries a compute stage. A job with
// more than one matching compute file has no well-defined kind.
func (f JobFile) isComputeJob() (bool, error) {
	files, err := shaderjob.RelatedFiles(f.AsmSpirvJobJSON,
		[]string{shaderjob.ExtCompute}, []string{shaderjob.SuffixAsmSPIRV})
	if err != nil {
		return false, err
	}
	if len(files) > 1 {
		return false, fmt.Errorf("expected 1 or 0 compute shader files, got %s: %w",
			strings.Join(files, ", "), ErrAmbiguousJob)
	}
	return len(files) == 1, nil
}

// ToJob reads the job's document and stage files and builds the Job of the
// appropriate kind. The fragment stage is mandatory for graphics jobs and
// the compute stage for compute jobs; everything else is optional.
func (f JobFile) ToJob() (Job, error) {
	doc, err := shaderjob.ReadDocument(f.AsmSpirvJobJSON)
	if err != nil {
		return nil, err
	}
	compute, err := f.isComputeJob()
	if err != nil {
		return nil, err
	}
	if compute {
		return f.toComputeJob(doc)
	}
	return f.toGraphicsJob(doc)
}

func (f JobFile) toComputeJob(doc *shaderjob.Document) (Job, error) {
	var source string
	if f.SourceJSON != "" {
		text, ok, err := shaderjob.ReadStage(f.SourceJSON, shaderjob.ExtCompute, shaderjob.SuffixGLSL)
		if err != nil {
			return nil, err
		}
		if ok {
			source = text
		}
	}
	asm, ok, err := shaderjob.ReadStage(f.AsmSpirvJobJSON, shaderjob.ExtCompute, shaderjob.SuffixAsmSPIRV)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("compute stage %q: %w",
			shaderjob.StagePath(f.AsmSpirvJobJSON, shaderjob.ExtCompute, shaderjob.SuffixAsmSPIRV),
			ErrMissingRequiredStage)
	}

	common, err := f.renderUniforms(doc)
	if err != nil {
		return nil, err
	}
	initial, err := computeBufferDef(doc, false)
	if err != nil {
		return nil, err
	}
	empty, err := computeBufferDef(doc, true)
	if err != nil {
		return nil, err
	}
	numGroups, err := numGroupsDef(doc)
	if err != nil {
		return nil, err
	}
	return &ComputeJob{
		JobCommon: common,
		Compute: Shader{
			Kind:           StageCompute,
			SpirvAsm:       asm,
			Source:         source,
			ProcessingInfo: f.ProcessingInfo,
		},
		InitialBufferTemplate: initial,
		EmptyBufferTemplate:   empty,
		NumGroups:             numGroups,
	}, nil
}

func (f JobFile) toGraphicsJob(doc *shaderjob.Document) (Job, error) {
	var vertexSource, fragmentSource string
	if f.SourceJSON != "" {
		text, ok, err := shaderjob.ReadStage(f.SourceJSON, shaderjob.ExtVertex, shaderjob.SuffixGLSL)
		if err != nil {
			return nil, err
		}
		if ok {
			vertexSource = text
		}
		text, ok, err = shaderjob.ReadStage(f.SourceJSON, shaderjob.ExtFragment, shaderjob.SuffixGLSL)
		if err != nil {
			return nil, err
		}
		if ok {
			fragmentSource = text
		}
	}

	// The vertex stage may be absent; the job then gets a passthrough one.
	vertexAsm, _, err := shaderjob.ReadStage(f.AsmSpirvJobJSON, shaderjob.ExtVertex, shaderjob.SuffixAsmSPIRV)
	if err != nil {
		return nil, err
	}
	fragmentAsm, ok, err := shaderjob.ReadStage(f.AsmSpirvJobJSON, shaderjob.ExtFragment, shaderjob.SuffixAsmSPIRV)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fragment stage %q: %w",
			shaderjob.StagePath(f.AsmSpirvJobJSON, shaderjob.ExtFragment, shaderjob.SuffixAsmSPIRV),
			ErrMissingRequiredStage)
	}

	common, err := f.renderUniforms(doc)
	if err != nil {
		return nil, err
	}
	return &GraphicsJob{
		JobCommon: common,
		Vertex: Shader{
			Kind:           StageVertex,
			SpirvAsm:       vertexAsm,
			Source:         vertexSource,
			ProcessingInfo: f.ProcessingInfo,
		},
		Fragment: Shader{
			Kind:           StageFragment,
			SpirvAsm:       fragmentAsm,
			Source:         fragmentSource,
			ProcessingInfo: f.ProcessingInfo,
		},
	}, nil
}

func (f JobFile) renderUniforms(doc *shaderjob.Document) (JobCommon, error) {
	definitions, err := uniformBufferDef(doc, f.NamePrefix)
	if err != nil {
		return JobCommon{}, err
	}
	return JobCommon{
		NamePrefix:         f.NamePrefix,
		UniformDefinitions: definitions,
		UniformBindings:    uniformBufferBind(doc, f.NamePrefix),
	}, nil
}

// FileTest pairs an optional on-disk reference job with the variant job.
type FileTest struct {
	Reference *JobFile
	Variant   JobFile
}

// ToTest loads both jobs. The reference, when present, is loaded first so
// its errors surface first.
func (t FileTest) ToTest() (Test, error) {
	var reference Job
	if t.Reference != nil {
		job, err := t.Reference.ToJob()
		if err != nil {
			return Test{}, err
		}
		reference = job
	}
	variant, err := t.Variant.ToJob()
	if err != nil {
		return Test{}, err
	}
	return Test{Reference: reference, Variant: variant}, nil
}

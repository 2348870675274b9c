package amber

import "strings"

// JobCommon carries the fields every shader job kind shares. The uniform
// text is pre-rendered at load time so assembly is pure concatenation.
type JobCommon struct {
	// NamePrefix namespaces every buffer, shader and pipeline name the job
	// contributes to the script, letting a reference and a variant coexist.
	NamePrefix string

	// UniformDefinitions is the rendered block of BUFFER declarations for
	// the job's uniforms, e.g.
	//
	//	# resolution
	//	BUFFER variant_resolution DATA_TYPE vec2<float> DATA
	//	 256.0 256.0
	//	END
	UniformDefinitions string

	// UniformBindings is the rendered block of BIND BUFFER lines, indented
	// for splicing into a PIPELINE body.
	UniformBindings string
}

// GraphicsJob is a vertex + fragment shader job. A job with no vertex
// assembly gets a passthrough vertex stage.
type GraphicsJob struct {
	JobCommon
	Vertex   Shader
	Fragment Shader
}

// ComputeJob is a single compute stage with one storage buffer.
type ComputeJob struct {
	JobCommon
	Compute Shader

	// InitialBufferTemplate declares the SSBO with its initial data.
	// EmptyBufferTemplate declares a zero-filled buffer of the same size and
	// type, for a future reference comparison. Both are templates whose {}
	// hole takes the buffer name.
	InitialBufferTemplate string
	EmptyBufferTemplate   string

	// NumGroups is the rendered workgroup count, e.g. "8 4 1".
	NumGroups string
}

// Job is the closed set of shader job kinds a script can be built from.
type Job interface{ isJob() }

func (*GraphicsJob) isJob() {}
func (*ComputeJob) isJob()  {}

// Test pairs an optional reference job with the variant under test. With a
// reference present, a graphics script renders both and compares the
// framebuffers.
type Test struct {
	Reference Job
	Variant   Job
}

// fillTemplate substitutes name into the {} hole of a buffer template.
func fillTemplate(template, name string) string {
	return strings.Replace(template, "{}", name, 1)
}

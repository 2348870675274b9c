package amber

// FenceTimeoutMS is the fence timeout written into every script unless
// Settings.UseDefaultFenceTimeout is set. Fuzzer-found shaders routinely run
// long on slow or instrumented devices, so the runner's own default is far
// too tight.
const FenceTimeoutMS = 60000

// Settings selects the optional header sections and trailing commands of a
// generated script. The zero value yields the minimal script: the format
// marker followed by the explicit fence timeout.
//
// Settings is a plain value: copy it freely, mutate copies per job.
type Settings struct {
	// CopyrightHeaderText is a license header, rendered as a comment block
	// right after the format marker. Usually read from a file.
	CopyrightHeaderText string

	// AddGeneratedComment marks the script as machine-generated.
	AddGeneratedComment bool

	// AddGraphicsFuzzComment attributes the test to GraphicsFuzz.
	AddGraphicsFuzzComment bool

	// ShortDescription is a one-line summary of the test.
	ShortDescription string

	// CommentText is free-form prose, rendered as a comment block.
	CommentText string

	// UseDefaultFenceTimeout suppresses the SET ENGINE_DATA line and leaves
	// the runner's built-in timeout in force.
	UseDefaultFenceTimeout bool

	// ExtraCommands is appended verbatim after the last directive. Callers
	// supply complete lines, newlines included.
	ExtraCommands string

	// SpirvOptArgs, when non-empty, records the spirv-opt invocation that
	// produced the shaders. SpirvOptHash optionally pins the tool version.
	SpirvOptArgs []string
	SpirvOptHash string
}

package amber

import (
	"fmt"
	"strings"
)

// StageKind is the pipeline stage of a shader, spelled the way the SHADER
// directive expects it.
type StageKind string

const (
	StageVertex   StageKind = "vertex"
	StageFragment StageKind = "fragment"
	StageCompute  StageKind = "compute"
)

// Shader is one stage of a shader job. SpirvAsm holds the disassembled
// SPIR-V text exactly as it will appear in the script; an empty SpirvAsm
// means the stage is declared PASSTHROUGH. Source, when present, is the GLSL
// the assembly was compiled from and is emitted as a comment block above the
// declaration.
type Shader struct {
	Kind     StageKind
	SpirvAsm string
	Source   string

	// ProcessingInfo records how the assembly was produced, for example
	// "optimized with spirv-opt -O". Informational only; it never appears in
	// the script.
	ProcessingInfo string
}

// shaderDef renders the SHADER declaration for one stage under the given
// name. The assembly is trusted to end with a newline; spirv-dis output
// always does.
func shaderDef(shader Shader, name string) string {
	var b strings.Builder
	if shader.Source != "" {
		fmt.Fprintf(&b, "\n# %s is derived from the following GLSL:\n", name)
		b.WriteString(textAsComment(shader.Source))
	}
	if shader.SpirvAsm != "" {
		fmt.Fprintf(&b, "\nSHADER %s %s SPIRV-ASM\n", shader.Kind, name)
		b.WriteString(shader.SpirvAsm)
		b.WriteString("END\n")
	} else {
		fmt.Fprintf(&b, "\nSHADER %s %s PASSTHROUGH\n", shader.Kind, name)
	}
	return b.String()
}

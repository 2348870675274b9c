package amber

import "testing"

func TestShaderDefSpirvAsm(t *testing.T) {
	shader := Shader{Kind: StageFragment, SpirvAsm: "; SPIR-V\nOpCapability Shader\n"}
	got := shaderDef(shader, "variant_fragment_shader")
	want := "\nSHADER fragment variant_fragment_shader SPIRV-ASM\n" +
		"; SPIR-V\nOpCapability Shader\n" +
		"END\n"
	if got != want {
		t.Fatalf("shaderDef = %q, want %q", got, want)
	}
}

func TestShaderDefPassthrough(t *testing.T) {
	shader := Shader{Kind: StageVertex}
	got := shaderDef(shader, "reference_vertex_shader")
	if got != "\nSHADER vertex reference_vertex_shader PASSTHROUGH\n" {
		t.Fatalf("shaderDef = %q, want passthrough declaration", got)
	}
}

func TestShaderDefWithSource(t *testing.T) {
	shader := Shader{
		Kind:     StageFragment,
		SpirvAsm: "OpNop\n",
		Source:   "void main()\n{\n}\n",
	}
	got := shaderDef(shader, "variant_fragment_shader")
	want := "\n# variant_fragment_shader is derived from the following GLSL:\n" +
		"# void main()\n# {\n# }" +
		"\nSHADER fragment variant_fragment_shader SPIRV-ASM\nOpNop\nEND\n"
	if got != want {
		t.Fatalf("shaderDef = %q, want %q", got, want)
	}
}

func TestFillTemplate(t *testing.T) {
	got := fillTemplate("BUFFER {} DATA_TYPE int32 SIZE 4 0\n", "variant_ssbo")
	if got != "BUFFER variant_ssbo DATA_TYPE int32 SIZE 4 0\n" {
		t.Fatalf("fillTemplate = %q", got)
	}
}

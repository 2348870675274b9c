package fuzztests

import (
	"testing"

	"amberfy/internal/amber"
)

// FuzzScriptEmitters feeds arbitrary text through every emitter input a
// script touches: assembly bodies, GLSL comments, header settings. The
// emitters are pure concatenation and must never panic, whatever the text.
func FuzzScriptEmitters(f *testing.F) {
	f.Add("", "")
	f.Add("; SPIR-V\nOpCapability Shader\n", "#version 310 es\nvoid main() {}\n")
	f.Add("END\n", "*/ /*")
	f.Add("\n\n\n", "\r\n\t")
	f.Fuzz(func(t *testing.T, asm, source string) {
		job := &amber.GraphicsJob{
			JobCommon: amber.JobCommon{NamePrefix: "variant"},
			Vertex:    amber.Shader{Kind: amber.StageVertex, SpirvAsm: asm, Source: source},
			Fragment:  amber.Shader{Kind: amber.StageFragment, SpirvAsm: asm, Source: source},
		}
		settings := amber.Settings{
			CopyrightHeaderText: source,
			ShortDescription:    asm,
			CommentText:         source,
			ExtraCommands:       asm,
			SpirvOptArgs:        []string{asm, source},
		}
		script, err := amber.Script(amber.Test{Variant: job}, settings)
		if err != nil {
			t.Fatalf("graphics emission failed: %v", err)
		}
		if script == "" {
			t.Fatalf("graphics emission produced nothing")
		}

		_ = amber.TranslateType(asm)
	})
}

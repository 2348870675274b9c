package amber

import (
	"fmt"
	"strings"
	"unicode"
)

// textAsComment renders free-form text as a block of "# " comment lines.
// Leading and trailing blank lines are dropped, interior ones kept, and each
// rendered line is right-trimmed so blank interior lines come out as a bare
// "#". The result carries no trailing newline.
func textAsComment(text string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc("# "+line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// spirvOptArgsComment documents the spirv-opt invocation that produced the
// shaders. Empty args yield an empty string so the header stays untouched.
func spirvOptArgsComment(args []string, commitHash string) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("# Optimized using spirv-opt with the following arguments:\n")
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = fmt.Sprintf("# '%s'", arg)
	}
	b.WriteString(strings.Join(quoted, "\n"))
	if commitHash != "" {
		b.WriteString("\n# spirv-opt commit hash: " + commitHash)
	}
	b.WriteString("\n\n")
	return b.String()
}

// header renders the script preamble: the #!amber marker, the optional
// comment sections in their fixed order, and the fence timeout directive.
func header(settings Settings) string {
	var b strings.Builder
	b.WriteString("#!amber\n")
	if settings.CopyrightHeaderText != "" {
		b.WriteString("\n")
		b.WriteString(textAsComment(settings.CopyrightHeaderText))
		b.WriteString("\n\n")
	}
	if settings.AddGeneratedComment {
		b.WriteString("\n# Generated.\n\n")
	}
	if settings.AddGraphicsFuzzComment {
		b.WriteString("\n# A test for a bug found by GraphicsFuzz.\n")
	}
	if settings.ShortDescription != "" {
		fmt.Fprintf(&b, "\n# Short description: %s\n", settings.ShortDescription)
	}
	if settings.CommentText != "" {
		fmt.Fprintf(&b, "\n%s\n", textAsComment(settings.CommentText))
	}
	if len(settings.SpirvOptArgs) > 0 {
		b.WriteString("\n")
		b.WriteString(spirvOptArgsComment(settings.SpirvOptArgs, settings.SpirvOptHash))
		b.WriteString("\n")
	}
	if !settings.UseDefaultFenceTimeout {
		fmt.Fprintf(&b, "\nSET ENGINE_DATA fence_timeout_ms %d\n", FenceTimeoutMS)
	}
	return b.String()
}

// Package amber converts SPIR-V assembly shader jobs into AmberScript, the
// textual test format consumed by the Amber GPU test runner.
//
// # Purpose
//
//   - Model a shader job as either a graphics pair (vertex + fragment) or a
//     single compute stage, together with pre-rendered uniform text.
//   - Render the multi-section script exactly: header comments and the fence
//     timeout, shader declarations, uniform buffer definitions and bindings,
//     framebuffer/SSBO declarations, pipeline setup, run directives, and the
//     fuzzy framebuffer comparison for differential tests.
//   - Map host uniform setter names (glUniform*) and SSBO field type names
//     onto Amber's data-type tokens.
//
// # Scope
//
// The package consumes already-disassembled SPIR-V text and already-written
// job JSON; it never invokes a compiler or disassembler and never validates
// that the assembly is meaningful. Whitespace and directive spelling are part
// of the output contract: the runner parses the script strictly, so emission
// is byte-exact and deliberately free of any formatting cleverness.
//
// # Entry points
//
// Script renders a resolved Test; WriteScript resolves a FileTest from disk,
// renders it, and writes the result. Both fail atomically: on any error no
// output is produced. All failures wrap one of the package's sentinel errors
// (ErrUnsupportedType, ErrMissingRequiredStage, ErrAmbiguousJob,
// ErrMalformedComputeBuffer, ErrInconsistentTestPair, ErrUnknownJobKind,
// ErrOutputWrite).
package amber

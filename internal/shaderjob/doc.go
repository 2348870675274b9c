// Package shaderjob defines the on-disk layout of a shader job and the typed
// view of its JSON description.
//
// A shader job is a JSON file (NAME.json) describing uniforms and, for
// compute jobs, dispatch metadata. Its shader stages live next to it and are
// addressed by naming convention: NAME + stage extension + language suffix,
// e.g. NAME.frag (GLSL fragment source), NAME.comp.asm (disassembled SPIR-V
// compute stage).
//
// Invariants:
//   - Uniform order in Document matches the key order of the JSON object.
//   - Numeric literals (args, bindings, group counts, buffer data) are kept
//     verbatim as json.Number; nothing is reformatted.
//   - The reserved "$compute" key never appears among Document.Uniforms.
//   - Functions here read files and parse JSON; they never write anything.
package shaderjob

package amber

import "fmt"

// uniformTypes maps the GL uniform setter recorded in a shader job onto the
// Amber data type of the backing buffer. Matrix setters follow the GL naming:
// glUniformMatrix3x2fv sets a matrix with 3 columns and 2 rows.
var uniformTypes = map[string]string{
	"glUniform1i":          "int32",
	"glUniform2i":          "vec2<int32>",
	"glUniform3i":          "vec3<int32>",
	"glUniform4i":          "vec4<int32>",
	"glUniform1f":          "float",
	"glUniform2f":          "vec2<float>",
	"glUniform3f":          "vec3<float>",
	"glUniform4f":          "vec4<float>",
	"glUniformMatrix2fv":   "mat2x2<float>",
	"glUniformMatrix2x3fv": "mat2x3<float>",
	"glUniformMatrix2x4fv": "mat2x4<float>",
	"glUniformMatrix3x2fv": "mat3x2<float>",
	"glUniformMatrix3fv":   "mat3x3<float>",
	"glUniformMatrix3x4fv": "mat3x4<float>",
	"glUniformMatrix4x2fv": "mat4x2<float>",
	"glUniformMatrix4x3fv": "mat4x3<float>",
	"glUniformMatrix4fv":   "mat4x4<float>",
}

// ssboTypes maps a GLSL field type from the $compute metadata onto the Amber
// data type of the SSBO.
var ssboTypes = map[string]string{
	"int":   "int32",
	"ivec2": "vec2<int32>",
	"ivec3": "vec3<int32>",
	"ivec4": "vec4<int32>",
	"uint":  "uint32",
	"float": "float",
	"vec2":  "vec2<float>",
	"vec3":  "vec3<float>",
	"vec4":  "vec4<float>",
}

func uniformTypeToken(fn string) (string, error) {
	token, ok := uniformTypes[fn]
	if !ok {
		return "", fmt.Errorf("unknown uniform type for function %q: %w", fn, ErrUnsupportedType)
	}
	return token, nil
}

func ssboTypeToken(fieldType string) (string, error) {
	token, ok := ssboTypes[fieldType]
	if !ok {
		return "", fmt.Errorf("unsupported SSBO datum type %q: %w", fieldType, ErrUnsupportedType)
	}
	return token, nil
}

// TranslateType rewrites a scalar type name from SPIR-V cross-compilation
// output into Amber's vocabulary. Amber has no bool buffer type; booleans
// travel as uint.
func TranslateType(typeName string) string {
	if typeName == "bool" {
		return "uint"
	}
	return typeName
}

package amber

import (
	"fmt"
	"strings"

	"amberfy/internal/shaderjob"
)

// uniformBufferDef renders one BUFFER declaration per uniform, in document
// order, each preceded by a comment naming the uniform:
//
//	# uniforms for variant
//
//	# resolution
//	BUFFER variant_resolution DATA_TYPE vec2<float> DATA
//	 256.0 256.0
//	END
//
// Argument literals are emitted exactly as they were spelled in the job
// JSON.
func uniformBufferDef(doc *shaderjob.Document, prefix string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# uniforms for %s\n", prefix)
	b.WriteString("\n")
	for _, u := range doc.Uniforms {
		dataType, err := uniformTypeToken(u.Func)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "# %s\n", u.Name)
		fmt.Fprintf(&b, "BUFFER %s_%s DATA_TYPE %s DATA\n", prefix, u.Name, dataType)
		for _, arg := range u.Args {
			fmt.Fprintf(&b, " %s", arg)
		}
		b.WriteString("\n")
		b.WriteString("END\n")
	}
	return b.String(), nil
}

// uniformBufferBind renders the BIND BUFFER line for each uniform, indented
// two spaces for splicing into a PIPELINE body:
//
//	  BIND BUFFER variant_resolution AS uniform DESCRIPTOR_SET 0 BINDING 2
func uniformBufferBind(doc *shaderjob.Document, prefix string) string {
	var b strings.Builder
	for _, u := range doc.Uniforms {
		fmt.Fprintf(&b, "  BIND BUFFER %s_%s AS uniform DESCRIPTOR_SET 0 BINDING %s\n",
			prefix, u.Name, u.Binding)
	}
	return b.String()
}

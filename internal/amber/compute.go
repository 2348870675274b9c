package amber

import (
	"fmt"
	"strings"

	"amberfy/internal/shaderjob"
)

// computeBufferDef renders the SSBO declaration template for a compute job.
// Field data is flattened in order into one value list:
//
//	BUFFER {} DATA_TYPE int32 DATA
//	 0 1 2
//	END
//
// With makeEmptyBuffer set, a same-size buffer filled with the first value
// is declared instead, for capturing output via the COPY command without
// listing hundreds of values that would just be overwritten:
//
//	BUFFER {} DATA_TYPE int32 SIZE 3 0
//
// All fields must share one type; Amber buffers are homogeneous.
func computeBufferDef(doc *shaderjob.Document, makeEmptyBuffer bool) (string, error) {
	if doc.Compute == nil {
		return "", fmt.Errorf("cannot find %q key in shader job JSON: %w",
			shaderjob.ComputeKey, ErrMalformedComputeBuffer)
	}
	fields := doc.Compute.Buffer.Fields
	if len(fields) == 0 {
		return "", fmt.Errorf("compute shader test with empty SSBO: %w", ErrMalformedComputeBuffer)
	}
	for _, field := range fields[1:] {
		if field.Type != fields[0].Type {
			return "", fmt.Errorf("all SSBO field types must be the same: %w", ErrMalformedComputeBuffer)
		}
	}
	dataType, err := ssboTypeToken(fields[0].Type)
	if err != nil {
		return "", err
	}
	var values []string
	for _, field := range fields {
		for _, v := range field.Data {
			values = append(values, v.String())
		}
	}
	if len(values) == 0 {
		return "", fmt.Errorf("compute SSBO fields carry no data: %w", ErrMalformedComputeBuffer)
	}

	var b strings.Builder
	if makeEmptyBuffer {
		fmt.Fprintf(&b, "BUFFER {} DATA_TYPE %s SIZE %d %s\n", dataType, len(values), values[0])
	} else {
		fmt.Fprintf(&b, "BUFFER {} DATA_TYPE %s DATA\n", dataType)
		fmt.Fprintf(&b, " %s\n", strings.Join(values, " "))
		b.WriteString("END\n")
	}
	return b.String(), nil
}

// numGroupsDef renders the workgroup counts for the RUN directive, e.g.
// "8 4 1".
func numGroupsDef(doc *shaderjob.Document) (string, error) {
	if doc.Compute == nil {
		return "", fmt.Errorf("cannot find %q key in shader job JSON: %w",
			shaderjob.ComputeKey, ErrMalformedComputeBuffer)
	}
	if len(doc.Compute.NumGroups) == 0 {
		return "", fmt.Errorf("%q key without num_groups: %w",
			shaderjob.ComputeKey, ErrMalformedComputeBuffer)
	}
	dims := make([]string, len(doc.Compute.NumGroups))
	for i, d := range doc.Compute.NumGroups {
		dims[i] = d.String()
	}
	return strings.Join(dims, " "), nil
}

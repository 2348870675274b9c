package amber

import (
	"errors"
	"testing"
)

const computeDoc = `{
	"$compute": {
		"num_groups": [8, 4, 1],
		"buffer": {
			"binding": 0,
			"fields": [
				{"type": "int", "data": [0]},
				{"type": "int", "data": [1, 2, 3]}
			]
		}
	}
}`

func TestComputeBufferDef(t *testing.T) {
	doc := mustParse(t, computeDoc)
	got, err := computeBufferDef(doc, false)
	if err != nil {
		t.Fatalf("computeBufferDef returned error: %v", err)
	}
	want := "BUFFER {} DATA_TYPE int32 DATA\n 0 1 2 3\nEND\n"
	if got != want {
		t.Fatalf("computeBufferDef = %q, want %q", got, want)
	}
}

func TestComputeBufferDefEmptyBuffer(t *testing.T) {
	doc := mustParse(t, computeDoc)
	got, err := computeBufferDef(doc, true)
	if err != nil {
		t.Fatalf("computeBufferDef returned error: %v", err)
	}
	if got != "BUFFER {} DATA_TYPE int32 SIZE 4 0\n" {
		t.Fatalf("computeBufferDef = %q, want sized declaration", got)
	}
}

func TestComputeBufferDefFloatLiterals(t *testing.T) {
	doc := mustParse(t, `{
		"$compute": {
			"num_groups": [1, 1, 1],
			"buffer": {"binding": 0, "fields": [{"type": "vec2", "data": [0.0, 1.5]}]}
		}
	}`)
	got, err := computeBufferDef(doc, false)
	if err != nil {
		t.Fatalf("computeBufferDef returned error: %v", err)
	}
	if got != "BUFFER {} DATA_TYPE vec2<float> DATA\n 0.0 1.5\nEND\n" {
		t.Fatalf("computeBufferDef = %q", got)
	}
}

func TestComputeBufferDefErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "missing compute key",
			doc:  `{"u": {"func": "glUniform1f", "args": [1.0], "binding": 0}}`,
			want: ErrMalformedComputeBuffer,
		},
		{
			name: "no fields",
			doc:  `{"$compute": {"num_groups": [1, 1, 1], "buffer": {"binding": 0, "fields": []}}}`,
			want: ErrMalformedComputeBuffer,
		},
		{
			name: "mixed field types",
			doc:  `{"$compute": {"num_groups": [1, 1, 1], "buffer": {"binding": 0, "fields": [{"type": "int", "data": [0]}, {"type": "float", "data": [1.0]}]}}}`,
			want: ErrMalformedComputeBuffer,
		},
		{
			name: "no data",
			doc:  `{"$compute": {"num_groups": [1, 1, 1], "buffer": {"binding": 0, "fields": [{"type": "int", "data": []}]}}}`,
			want: ErrMalformedComputeBuffer,
		},
		{
			name: "unsupported field type",
			doc:  `{"$compute": {"num_groups": [1, 1, 1], "buffer": {"binding": 0, "fields": [{"type": "double", "data": [0]}]}}}`,
			want: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.doc)
			_, err := computeBufferDef(doc, false)
			if !errors.Is(err, tt.want) {
				t.Fatalf("computeBufferDef error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNumGroupsDef(t *testing.T) {
	doc := mustParse(t, computeDoc)
	got, err := numGroupsDef(doc)
	if err != nil {
		t.Fatalf("numGroupsDef returned error: %v", err)
	}
	if got != "8 4 1" {
		t.Fatalf("numGroupsDef = %q, want %q", got, "8 4 1")
	}
}

func TestNumGroupsDefMissing(t *testing.T) {
	doc := mustParse(t, `{"$compute": {"num_groups": [], "buffer": {"binding": 0, "fields": [{"type": "int", "data": [0]}]}}}`)
	_, err := numGroupsDef(doc)
	if !errors.Is(err, ErrMalformedComputeBuffer) {
		t.Fatalf("expected ErrMalformedComputeBuffer, got %v", err)
	}
}

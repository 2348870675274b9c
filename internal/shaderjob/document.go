package shaderjob

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ComputeKey is the reserved top-level key holding compute dispatch metadata.
const ComputeKey = "$compute"

// ErrInvalidDocument tags every parse failure of a shader job JSON file.
var ErrInvalidDocument = errors.New("invalid shader job JSON")

// Uniform is one uniform entry of a shader job, in document order.
type Uniform struct {
	Name    string
	Func    string
	Args    []json.Number
	Binding json.Number
}

// BufferField is one typed run of values inside the compute SSBO.
type BufferField struct {
	Type string
	Data []json.Number
}

// ComputeBuffer describes the initial contents of the compute in/out buffer.
// Binding is parsed for completeness but the generated script always binds
// the SSBO at binding 0.
type ComputeBuffer struct {
	Binding json.Number
	Fields  []BufferField
}

// ComputeInfo is the value of the reserved "$compute" key.
type ComputeInfo struct {
	NumGroups []json.Number
	Buffer    ComputeBuffer
}

// Document is the typed, order-preserving view of a shader job JSON file.
type Document struct {
	Uniforms []Uniform
	Compute  *ComputeInfo
}

// uniformEntry mirrors the JSON shape of a uniform value.
type uniformEntry struct {
	Func    string        `json:"func"`
	Args    []json.Number `json:"args"`
	Binding json.Number   `json:"binding"`
}

type bufferFieldEntry struct {
	Type string        `json:"type"`
	Data []json.Number `json:"data"`
}

type computeEntry struct {
	NumGroups []json.Number `json:"num_groups"`
	Buffer    struct {
		Binding json.Number        `json:"binding"`
		Fields  []bufferFieldEntry `json:"fields"`
	} `json:"buffer"`
}

// ParseDocument parses a shader job JSON description. Object key order is
// preserved: uniforms iterate exactly as written in the file. Duplicate keys
// keep their first position and last value.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	doc := &Document{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidDocument, tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: value of %q: %w", ErrInvalidDocument, name, err)
		}

		if name == ComputeKey {
			info, err := parseComputeInfo(raw)
			if err != nil {
				return nil, err
			}
			doc.Compute = info
			continue
		}

		uniform, err := parseUniform(name, raw)
		if err != nil {
			return nil, err
		}
		if at, seen := index[name]; seen {
			doc.Uniforms[at] = uniform
			continue
		}
		index[name] = len(doc.Uniforms)
		doc.Uniforms = append(doc.Uniforms, uniform)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level object", ErrInvalidDocument)
	}
	return doc, nil
}

// ReadDocument reads and parses the shader job JSON at path.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func parseUniform(name string, raw json.RawMessage) (Uniform, error) {
	var entry uniformEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Uniform{}, fmt.Errorf("%w: uniform %q: %w", ErrInvalidDocument, name, err)
	}
	if entry.Func == "" {
		return Uniform{}, fmt.Errorf("%w: uniform %q: missing \"func\"", ErrInvalidDocument, name)
	}
	if entry.Binding == "" {
		return Uniform{}, fmt.Errorf("%w: uniform %q: missing \"binding\"", ErrInvalidDocument, name)
	}
	return Uniform{
		Name:    name,
		Func:    entry.Func,
		Args:    entry.Args,
		Binding: entry.Binding,
	}, nil
}

func parseComputeInfo(raw json.RawMessage) (*ComputeInfo, error) {
	var entry computeEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, ComputeKey, err)
	}
	info := &ComputeInfo{
		NumGroups: entry.NumGroups,
		Buffer: ComputeBuffer{
			Binding: entry.Buffer.Binding,
		},
	}
	for _, field := range entry.Buffer.Fields {
		info.Buffer.Fields = append(info.Buffer.Fields, BufferField{
			Type: field.Type,
			Data: field.Data,
		})
	}
	return info, nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if delim, ok := tok.(json.Delim); !ok || rune(delim) != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidDocument, want, tok)
	}
	return nil
}

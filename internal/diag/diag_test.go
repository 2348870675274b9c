package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"amberfy/internal/amber"
	"amberfy/internal/shaderjob"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"unsupported type", fmt.Errorf("uniform %q: %w", "glFoo", amber.ErrUnsupportedType), ConvUnsupportedType},
		{"missing stage", fmt.Errorf("fragment: %w", amber.ErrMissingRequiredStage), ConvMissingStage},
		{"ambiguous", amber.ErrAmbiguousJob, ConvAmbiguousJob},
		{"malformed buffer", amber.ErrMalformedComputeBuffer, ConvMalformedComputeBuffer},
		{"inconsistent pair", amber.ErrInconsistentTestPair, ConvInconsistentPair},
		{"unknown kind", amber.ErrUnknownJobKind, ConvUnknownJobKind},
		{"parse", fmt.Errorf("x.json: %w", shaderjob.ErrInvalidDocument), ParseError},
		{"write", fmt.Errorf("%w %q: %w", amber.ErrOutputWrite, "out.amber", errors.New("disk full")), IOWriteError},
		{"unclassified", errors.New("boom"), Unknown},
		{"nil", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeID(t *testing.T) {
	if got := ConvMissingStage.ID(); got != "AMB1002" {
		t.Fatalf("ID = %q, want AMB1002", got)
	}
	if got := Unknown.ID(); got != "AMB0000" {
		t.Fatalf("ID = %q, want AMB0000", got)
	}
}

func TestCodeTitle(t *testing.T) {
	if got := ConvAmbiguousJob.Title(); got == "" || got == codeDescription[Unknown] {
		t.Fatalf("Title = %q, want a specific description", got)
	}
	if got := Code(9999).Title(); got != codeDescription[Unknown] {
		t.Fatalf("unknown code Title = %q, want fallback", got)
	}
}

func TestBagCap(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Diagnostic{Path: "a"}) || !bag.Add(Diagnostic{Path: "b"}) {
		t.Fatalf("adds under the cap must succeed")
	}
	if bag.Add(Diagnostic{Path: "c"}) {
		t.Fatalf("add over the cap must fail")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Path: "a"})
	b := NewBag(1)
	b.Add(Diagnostic{Path: "b"})
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len = %d after merge, want 2", a.Len())
	}
}

func TestFormatReportStableOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(FromError("z/variant.json", amber.ErrMissingRequiredStage))
	bag.Add(FromError("a/variant.json", amber.ErrUnsupportedType))
	bag.Add(FromError("a/variant.json", amber.ErrAmbiguousJob))

	got := FormatReport(bag)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "a/variant.json: AMB1001:") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "a/variant.json: AMB1003:") {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "z/variant.json: AMB1002:") {
		t.Fatalf("line 2 = %q", lines[2])
	}
}

func TestFormatReportEmpty(t *testing.T) {
	if got := FormatReport(NewBag(4)); got != "" {
		t.Fatalf("FormatReport = %q, want empty", got)
	}
	if got := FormatReport(nil); got != "" {
		t.Fatalf("FormatReport(nil) = %q, want empty", got)
	}
}

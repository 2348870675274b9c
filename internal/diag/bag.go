package diag

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// Bag collects diagnostics, capped at max.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag returns an empty Bag holding at most max diagnostics. Caps beyond
// 65535 saturate.
func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, max), max: clampCap(max)}
}

func clampCap(n int) uint16 {
	v, err := safecast.Conv[uint16](n)
	if err != nil {
		return math.MaxUint16
	}
	return v
}

// Add appends d, returning false once the cap is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic was collected.
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics. Do not
// modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends every diagnostic of other, growing the cap as needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		b.max = clampCap(total)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by path, then code, then message, so reports are
// deterministic whatever order the batch produced them in.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})
}

// FormatReport renders one stable line per diagnostic:
//
//	path: AMB1002: fragment stage "x.frag.asm": missing required stage
//
// The input is sorted in place first.
func FormatReport(bag *Bag) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	bag.Sort()
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "%s: %s: %s\n", d.Path, d.Code.ID(), d.Message)
	}
	return sb.String()
}

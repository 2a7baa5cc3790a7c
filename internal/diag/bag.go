package diag

import "sort"

// Bag accumulates diagnostics up to a limit.
type Bag struct {
	items   []Diagnostic
	max     int // 0 means unlimited
	dropped int
}

// NewBag returns a bag that keeps at most max diagnostics.
// A max of 0 or less keeps everything.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{max: max}
}

// Add appends d unless the limit has been reached.
// It returns false if d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped returns the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether any diagnostic is an error or worse.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasFatal reports whether any diagnostic is fatal.
func (b *Bag) HasFatal() bool {
	for i := range b.items {
		if b.items[i].Severity == SevFatal {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics held.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, honoring b's limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders diagnostics by position, then severity (most severe
// first), then code, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Pos != dj.Pos {
			return di.Pos.Before(dj.Pos)
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})
}

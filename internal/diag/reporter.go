package diag

import "github.com/you-not-fish/opcanon/internal/syntax"

// Reporter receives diagnostics from a phase.
type Reporter interface {
	Report(code Code, sev Severity, pos syntax.Pos, msg string)
}

// BagReporter writes into a Bag, tagging each entry with Func.
type BagReporter struct {
	Bag  *Bag
	Func string
}

// Report implements Reporter.
func (r BagReporter) Report(code Code, sev Severity, pos syntax.Pos, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Pos: pos, Message: msg, Func: r.Func,
	})
}

type dedupKey struct {
	code Code
	sev  Severity
	pos  syntax.Pos
	msg  string
}

// DedupReporter wraps another Reporter and suppresses duplicate
// diagnostics with the same code, severity, position and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that forwards unique diagnostics
// to next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

// Report implements Reporter.
func (r *DedupReporter) Report(code Code, sev Severity, pos syntax.Pos, msg string) {
	key := dedupKey{code: code, sev: sev, pos: pos, msg: msg}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, pos, msg)
	}
}

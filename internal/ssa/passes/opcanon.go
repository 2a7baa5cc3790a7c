package passes

import (
	"fmt"
	"log/slog"

	"github.com/you-not-fish/opcanon/internal/opinfo"
	"github.com/you-not-fish/opcanon/internal/ssa"
)

// OpCanonOptions configures the op canonicalization pass.
type OpCanonOptions struct {
	// PromoteTensorLiterals rewrites constant tensor constructor calls
	// into Const ops before decoding.
	PromoteTensorLiterals bool

	// Emit, if set, receives the canonical descriptor of every op call
	// that passed validation, in program order.
	Emit func(*opinfo.Descriptor)
}

// OpCanon returns the pass that decodes, validates and canonicalizes
// every op call in a function. A call with invalid attributes is
// reported and left alone. A malformed call aborts the function with an
// error wrapping opinfo.ErrMalformed; a broken rewrite aborts it with
// an *opinfo.InternalError.
func OpCanon(a *opinfo.Analyzer, opts OpCanonOptions) Pass {
	return Pass{
		Name: "opcanon",
		Fn: func(f *ssa.Func) error {
			return opCanon(f, a, opts)
		},
	}
}

func opCanon(f *ssa.Func, a *opinfo.Analyzer, opts OpCanonOptions) error {
	log := a.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var ops, rejected int
	for _, v := range f.Values() {
		if v.Block == nil {
			// Replaced by an earlier rewrite.
			continue
		}
		if opts.PromoteTensorLiterals {
			nv, err := a.PromoteTensorLiteral(v)
			if err != nil {
				return err
			}
			v = nv
		}
		if v.Op == ssa.OpTupleExtract {
			// The projected call is visited on its own.
			continue
		}

		d := a.Decode(v)
		if d == nil {
			if opinfo.IsCandidate(v) {
				return fmt.Errorf("%s: %w", v.LongString(), opinfo.ErrMalformed)
			}
			continue
		}
		ops++
		if !a.Check(d) {
			rejected++
			continue
		}
		cd, err := a.Canonicalize(d)
		if err != nil {
			return err
		}
		if opts.Emit != nil {
			opts.Emit(cd)
		}
	}

	log.Debug("opcanon done",
		slog.String("func", f.Name),
		slog.Int("ops", ops),
		slog.Int("rejected", rejected))
	return nil
}

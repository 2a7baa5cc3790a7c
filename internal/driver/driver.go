// Package driver runs op canonicalization over every function of a
// module. Functions are processed concurrently, each one sequentially
// and with its own diagnostic bag.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/opcanon/internal/config"
	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/encode"
	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/opinfo"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/ssa/passes"
)

// Options configures a driver run.
type Options struct {
	Config config.Config

	// Logger receives progress events. Nil discards them.
	Logger *slog.Logger

	// DumpOut receives SSA dumps when Config.Pass.DumpIntermediates is
	// set, grouped per function in module order. Nil means os.Stderr.
	DumpOut io.Writer
}

// FuncResult is the outcome for one function.
type FuncResult struct {
	Func    string
	Bag     *diag.Bag
	Records []encode.Record

	// Err is set when the function was abandoned, and Records is then
	// empty. Malformed ops wrap opinfo.ErrMalformed and failed rewrites
	// wrap opinfo.ErrInternal.
	Err error

	dump bytes.Buffer
}

// Result is the outcome for a module.
type Result struct {
	Module *ssa.Module
	Funcs  []*FuncResult

	// Diagnostics holds the diagnostics of every function, sorted.
	Diagnostics *diag.Bag
}

// Records returns the records of every function in module order.
func (r *Result) Records() []encode.Record {
	var recs []encode.Record
	for _, fr := range r.Funcs {
		recs = append(recs, fr.Records...)
	}
	return recs
}

// Err joins the errors of every abandoned function.
func (r *Result) Err() error {
	var errs []error
	for _, fr := range r.Funcs {
		if fr.Err != nil {
			errs = append(errs, fmt.Errorf("func %s: %w", fr.Func, fr.Err))
		}
	}
	return errors.Join(errs...)
}

// Run canonicalizes every op call of m in place. The returned error is
// only set when ctx is cancelled; per-function failures are recorded in
// the result.
func Run(ctx context.Context, m *ssa.Module, opts Options) (*Result, error) {
	return run(ctx, m, opts, canonicalize)
}

// Decode decodes every op call of m without rewriting anything.
func Decode(ctx context.Context, m *ssa.Module, opts Options) (*Result, error) {
	return run(ctx, m, opts, decode)
}

type funcJob func(f *ssa.Func, a *opinfo.Analyzer, opts *Options, fr *FuncResult) error

func run(ctx context.Context, m *ssa.Module, opts Options, job funcJob) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config
	if cfg.Target.WordSize == 0 {
		cfg.Target.WordSize = opabi.Word64
	}
	jobs := cfg.Driver.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	res := &Result{Module: m, Funcs: make([]*FuncResult, len(m.Funcs))}
	if len(m.Funcs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(m.Funcs)))
		for i, f := range m.Funcs {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				fr := &FuncResult{Func: f.Name, Bag: diag.NewBag(cfg.Diagnostics.Max)}
				a := &opinfo.Analyzer{
					WordSize:   cfg.Target.WordSize,
					Reporter:   diag.NewDedupReporter(diag.BagReporter{Bag: fr.Bag, Func: f.Name}),
					IsInternal: cfg.Diagnostics.IsInternal,
					Logger:     log.With(slog.String("func", f.Name)),
				}
				fr.Err = job(f, a, &opts, fr)
				if fr.Err != nil {
					fr.Records = nil
					log.Debug("function abandoned", slog.String("func", f.Name), slog.Any("err", fr.Err))
				}
				res.Funcs[i] = fr
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	res.Diagnostics = diag.NewBag(0)
	for _, fr := range res.Funcs {
		res.Diagnostics.Merge(fr.Bag)
	}
	res.Diagnostics.Sort()

	if cfg.Pass.DumpIntermediates {
		if err := writeDumps(opts.DumpOut, res.Funcs); err != nil {
			return nil, err
		}
	}

	log.Info("module processed",
		slog.String("module", m.Name),
		slog.Int("funcs", len(m.Funcs)),
		slog.Int("ops", len(res.Records())),
		slog.Int("diagnostics", res.Diagnostics.Len()))
	return res, nil
}

func canonicalize(f *ssa.Func, a *opinfo.Analyzer, opts *Options, fr *FuncResult) error {
	pc := opts.Config.Pass
	pipeline := []passes.Pass{
		passes.OpCanon(a, passes.OpCanonOptions{
			PromoteTensorLiterals: pc.PromoteTensorLiterals,
			Emit: func(d *opinfo.Descriptor) {
				fr.Records = append(fr.Records, encode.FromDescriptor(d, a.WordSize))
			},
		}),
	}
	if pc.Cleanup {
		pipeline = append(pipeline, passes.Pass{Name: "cleanup", Fn: passes.Cleanup})
	}

	pcfg := passes.Config{Verify: pc.Verify, DumpFunc: pc.DumpFunc, Out: &fr.dump}
	if pc.DumpIntermediates {
		pcfg.DumpBefore = "*"
		pcfg.DumpAfter = "*"
	}
	return passes.Run(f, pipeline, pcfg)
}

func decode(f *ssa.Func, a *opinfo.Analyzer, _ *Options, fr *FuncResult) error {
	for _, v := range f.Values() {
		if v.Op == ssa.OpTupleExtract {
			continue
		}
		d := a.Decode(v)
		if d == nil {
			continue
		}
		a.Check(d)
		fr.Records = append(fr.Records, encode.FromDescriptor(d, a.WordSize))
	}
	return nil
}

func writeDumps(w io.Writer, frs []*FuncResult) error {
	if w == nil {
		w = os.Stderr
	}
	for _, fr := range frs {
		if _, err := fr.dump.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

// Package passes runs per-function passes over SSA form with optional
// verification and dumps between them.
package passes

import (
	"fmt"
	"io"
	"os"

	"github.com/you-not-fish/opcanon/internal/ssa"
)

// Pass describes a single SSA pass.
type Pass struct {
	Name string
	Fn   func(f *ssa.Func) error
}

// Config controls pass execution behavior.
type Config struct {
	DumpBefore string    // dump SSA before this pass ("*" for all)
	DumpAfter  string    // dump SSA after this pass ("*" for all)
	Verify     bool      // verify SSA and dominance before/after each pass
	DumpFunc   string    // restrict dumps to this function name
	Out        io.Writer // dump destination; os.Stderr if nil
}

// Run executes the given passes on f in order. It stops at the first
// pass that fails or leaves f invalid.
func Run(f *ssa.Func, passes []Pass, cfg Config) error {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
			fmt.Fprintf(out, "--- before %s (%s) ---\n", p.Name, f.Name)
			ssa.Fprint(out, f)
			fmt.Fprintln(out)
		}

		if cfg.Verify {
			if err := verify(f); err != nil {
				return fmt.Errorf("verify before %s: %w", p.Name, err)
			}
		}

		if err := p.Fn(f); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}

		if cfg.Verify {
			if err := verify(f); err != nil {
				return fmt.Errorf("verify after %s: %w", p.Name, err)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
			fmt.Fprintf(out, "--- after %s (%s) ---\n", p.Name, f.Name)
			ssa.Fprint(out, f)
			fmt.Fprintln(out)
		}
	}
	return nil
}

func verify(f *ssa.Func) error {
	if err := ssa.Verify(f); err != nil {
		return err
	}
	ssa.ComputeDom(f)
	return ssa.VerifyDom(f)
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

func matchFunc(filter, name string) bool {
	return filter == "" || filter == name
}

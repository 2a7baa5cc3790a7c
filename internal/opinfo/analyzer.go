package opinfo

import (
	"log/slog"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

// Analyzer holds the target facts and collaborators shared by every
// step of the pass. The zero value targets a 64-bit word, drops
// diagnostics and treats no code as internal.
type Analyzer struct {
	// WordSize is the target word size in bits (32 or 64).
	WordSize int

	// Reporter receives fatal descriptor faults and attribute misuse.
	Reporter diag.Reporter

	// IsInternal reports whether a position lies in library code that
	// should not be shown to users.
	IsInternal func(syntax.Pos) bool

	// Logger receives debug events for each rewrite.
	Logger *slog.Logger
}

func (a *Analyzer) wordSize() int {
	if a.WordSize == opabi.Word32 {
		return opabi.Word32
	}
	return opabi.Word64
}

func (a *Analyzer) typeCode(t types.Type) opabi.DType {
	return opabi.TypeCode(t, a.wordSize())
}

func (a *Analyzer) report(code diag.Code, sev diag.Severity, pos syntax.Pos, msg string) {
	if a.Reporter != nil {
		a.Reporter.Report(code, sev, pos, msg)
	}
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// UserPos returns the position diagnostics about v should point at.
// See package-level UserPos.
func (a *Analyzer) UserPos(v *ssa.Value) syntax.Pos {
	return UserPos(v, a.IsInternal)
}

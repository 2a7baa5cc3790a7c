package opinfo

import (
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

// UserPos returns the source position a diagnostic about v should be
// reported at. Values inlined from library code are attributed to the
// innermost call site outside of it; isInternal decides what counts as
// library code and may be nil.
//
// A field projection that unwraps a builtin or handle typed field is
// attributed to the aggregate it reads from, which usually carries the
// user's location.
func UserPos(v *ssa.Value, isInternal func(syntax.Pos) bool) syntax.Pos {
	for v.Op == ssa.OpStructExtract && len(v.Args) == 1 &&
		(types.IsBuiltin(v.Type) || types.IsHandle(v.Type)) {
		v = v.Args[0]
	}
	internal := func(p syntax.Pos) bool {
		return isInternal != nil && isInternal(p)
	}

	if v.Scope == nil {
		return v.Pos
	}
	if v.Pos.IsValid() && !internal(v.Pos) {
		return v.Pos
	}
	for s := v.Scope; s != nil; s = s.Parent {
		if s.CallPos.IsValid() && !internal(s.CallPos) {
			return s.CallPos
		}
	}
	return v.Pos
}

package passes

import "github.com/you-not-fish/opcanon/internal/ssa"

// Cleanup removes what canonicalization leaves behind: phis whose
// incoming values are all the same, stack slots that are only ever
// written, and pure values nothing uses. Calls, stores into live
// storage and releases are kept.
func Cleanup(f *ssa.Func) error {
	foldTrivialPhis(f)
	removeWriteOnlySlots(f)
	removeDeadValues(f)
	return nil
}

// foldTrivialPhis replaces each phi whose arguments are all one value
// (or the phi itself) with that value.
func foldTrivialPhis(f *ssa.Func) {
	changed := true
	for changed {
		changed = false
		for _, v := range f.Values() {
			if v.Op != ssa.OpPhi || v.Block == nil {
				continue
			}
			if trivial := trivialPhi(v); trivial != nil {
				f.ReplaceUses(v, trivial)
				f.RemoveValue(v)
				changed = true
			}
		}
	}
}

// trivialPhi returns the single non-self value if the phi is trivial
// (all args are the same value or self-references), or nil if non-trivial.
func trivialPhi(phi *ssa.Value) *ssa.Value {
	var unique *ssa.Value
	for _, arg := range phi.Args {
		if arg == nil || arg == phi {
			continue
		}
		if unique == nil {
			unique = arg
		} else if arg != unique {
			return nil // multiple distinct args
		}
	}
	return unique
}

// removeWriteOnlySlots deletes stack slots whose every use is a store
// into the slot, together with those stores.
func removeWriteOnlySlots(f *ssa.Func) {
	for _, v := range f.Values() {
		if v.Op != ssa.OpAllocStack || v.Block == nil {
			continue
		}
		uses := f.Uses(v)
		writeOnly := true
		for _, u := range uses {
			if u.User == nil || u.User.Op != ssa.OpStore || u.Index != 0 {
				writeOnly = false
				break
			}
		}
		if !writeOnly {
			continue
		}
		for _, u := range uses {
			if u.User.Block != nil {
				f.RemoveValue(u.User)
			}
		}
		f.RemoveValue(v)
	}
}

// removeDeadValues removes unused pure values until none are left.
// Arguments stay: they describe the signature.
func removeDeadValues(f *ssa.Func) {
	changed := true
	for changed {
		changed = false
		for _, v := range f.Values() {
			if v.Block == nil || v.Uses != 0 || !v.IsPure() || v.Op == ssa.OpArg {
				continue
			}
			f.RemoveValue(v)
			changed = true
		}
	}
}

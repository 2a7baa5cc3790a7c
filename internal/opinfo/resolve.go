package opinfo

import (
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

// ScalarOperand strips the wrappers around a scalar operand: single
// field structs, and local storage written by exactly one store. It
// returns nil for an address it cannot see through. Any other value is
// returned unchanged; the caller decides whether it is a literal.
func ScalarOperand(v *ssa.Value) *ssa.Value {
	for v != nil {
		if types.IsAddress(v.Type) {
			if v.Op != ssa.OpAllocStack {
				return nil
			}
			v = storedValue(v)
			continue
		}
		if v.Op == ssa.OpStruct && len(v.Args) == 1 {
			v = v.Args[0]
			continue
		}
		return v
	}
	return nil
}

// storedValue returns the value written by the only store to addr, or
// nil if there is not exactly one. Besides that store, the slot may only
// be read: loads, releases and tagged op calls that take it by address.
// Any other use could write through the address.
func storedValue(addr *ssa.Value) *ssa.Value {
	f := addr.Func()
	if f == nil {
		return nil
	}
	var stored *ssa.Value
	for _, u := range f.Uses(addr) {
		if u.User == nil {
			return nil
		}
		switch u.User.Op {
		case ssa.OpStore:
			if u.Index != 0 || stored != nil {
				// Stored elsewhere, or written twice.
				return nil
			}
			stored = u.User.Args[1]
		case ssa.OpLoad, ssa.OpRelease:
		case ssa.OpGraphOp, ssa.OpApply:
			if !IsCandidate(u.User) {
				return nil
			}
		default:
			return nil
		}
	}
	return stored
}

// stringPackers are the builtins that pack a native string
// representation; the literal is their first operand.
var stringPackers = map[string]bool{
	"and":           true,
	"or":            true,
	"zextOrBitCast": true,
	"ptrtoint":      true,
}

// stringLiteral follows the fixed chain of values that wrap a UTF-8
// string literal.
func stringLiteral(v *ssa.Value) *ssa.Value {
	for v != nil {
		switch v.Op {
		case ssa.OpConstString:
			if ssa.StringEncoding(v.AuxInt) != ssa.UTF8 {
				return nil
			}
			return v
		case ssa.OpStruct, ssa.OpBitCast:
			if len(v.Args) == 0 {
				return nil
			}
			v = v.Args[0]
		case ssa.OpEnum:
			if len(v.Args) != 1 {
				return nil
			}
			v = v.Args[0]
		case ssa.OpBuiltin:
			name, _ := v.Aux.(string)
			if !stringPackers[name] || len(v.Args) == 0 {
				return nil
			}
			v = v.Args[0]
		default:
			return nil
		}
	}
	return nil
}

// AttrConstant returns the value that makes v a valid attribute, or nil
// if v is not a compile-time constant. Strings resolve to their UTF-8
// literal; a decodable array whose elements are all constant resolves
// to v itself; anything else must reduce to an integer literal of at
// most 64 bits, a float literal, a UTF-8 string literal or a type tag
// with an external type code.
func (a *Analyzer) AttrConstant(v *ssa.Value) *ssa.Value {
	if v == nil {
		return nil
	}
	if types.IsString(v.Type) {
		return stringLiteral(v)
	}
	if _, ok := a.constArray(v); ok {
		return v
	}

	v = ScalarOperand(v)
	if v == nil {
		return nil
	}
	switch v.Op {
	case ssa.OpConstFloat:
		return v
	case ssa.OpConstInt:
		if w, ok := a.intWidth(v.Type); ok && w <= 64 {
			return v
		}
	case ssa.OpConstString:
		if ssa.StringEncoding(v.AuxInt) == ssa.UTF8 {
			return v
		}
	case ssa.OpMetatype:
		if t, ok := v.Aux.(types.Type); ok && a.typeCode(t) != 0 {
			return v
		}
	}
	return nil
}

// constArray decodes v as an array whose elements are all attribute
// constants. The returned elements are the resolved constants.
func (a *Analyzer) constArray(v *ssa.Value) (*Array, bool) {
	if _, ok := types.ArrayElem(v.Type); !ok {
		return nil, false
	}
	arr, ok := DecodeArray(v)
	if !ok {
		return nil, false
	}
	resolved := make([]*ssa.Value, len(arr.Elements))
	for i, elt := range arr.Elements {
		c := a.AttrConstant(elt)
		if c == nil {
			return nil, false
		}
		resolved[i] = c
	}
	arr.Elements = resolved
	return arr, true
}

// intWidth returns the bit width of an integer literal's type. Standard
// library integers report the width of the builtin they wrap.
func (a *Analyzer) intWidth(t types.Type) (int, bool) {
	if _, ok := types.IsStd(t); ok {
		if s, ok := t.Underlying().(*types.Struct); ok && s.NumFields() == 1 {
			t = s.Field(0).Type()
		}
	}
	return types.IntWidth(t, a.wordSize())
}

// isIntLiteral reports whether v is an integer literal.
func isIntLiteral(v *ssa.Value) bool {
	return v != nil && v.Op == ssa.OpConstInt
}

// isNumericLiteral reports whether v is an integer or float literal.
func isNumericLiteral(v *ssa.Value) bool {
	return v != nil && (v.Op == ssa.OpConstInt || v.Op == ssa.OpConstFloat)
}

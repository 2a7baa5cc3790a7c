package opinfo

import (
	"log/slog"

	"github.com/you-not-fish/opcanon/internal/opname"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

// operand is one planned operand of a rewritten call.
type operand struct {
	entry opname.Entry
	value *ssa.Value // existing value; nil for an expanded array
	array *Array     // array expanded into a marker and its elements
}

// builder assembles the operands of a rewritten call. Expanded arrays
// are only materialized by emit, so a plan that turns out to change
// nothing leaves the function untouched.
type builder struct {
	op       string
	operands []operand
}

func (b *builder) add(e opname.Entry, v *ssa.Value) {
	b.operands = append(b.operands, operand{entry: e, value: v})
}

// addArray plans the expansion of arr under attribute name with the
// given role. A Normal array becomes an ArrayMarker so that an empty
// array still has an operand.
func (b *builder) addArray(name string, role opname.Role, arr *Array) {
	if role == opname.Normal {
		role = opname.ArrayMarker
	}
	b.operands = append(b.operands, operand{
		entry: opname.Entry{Name: name, Role: role},
		array: arr,
	})
}

// sameAs reports whether the plan reproduces call exactly.
func (b *builder) sameAs(call *ssa.Value) bool {
	if len(b.operands) != len(call.Args) {
		return false
	}
	var entries []opname.Entry
	for i, o := range b.operands {
		if o.array != nil || o.value != call.Args[i] {
			return false
		}
		entries = append(entries, o.entry)
	}
	return opname.Encode(b.op, entries) == call.Name()
}

// emit materializes the planned operands before at and returns the
// operand list and name encoding. Array elements defined in another
// function are re-created as literals; each consumed array is released.
func (b *builder) emit(at *ssa.Value) ([]*ssa.Value, string, error) {
	f := at.Func()
	var args []*ssa.Value
	var entries []opname.Entry
	for _, o := range b.operands {
		if o.array == nil {
			args = append(args, o.value)
			entries = append(entries, o.entry)
			continue
		}

		args = append(args, newMarker(f, at, o.array.Elem))
		entries = append(entries, o.entry)
		for _, elt := range o.array.Elements {
			local, err := localize(f, at, elt)
			if err != nil {
				return nil, "", err
			}
			args = append(args, local)
			entries = append(entries, opname.Entry{Name: o.entry.Name, Role: opname.ArrayElement})
		}
		f.NewValueBefore(at, ssa.OpRelease, nil, o.array.Value)
	}
	return args, opname.Encode(b.op, entries), nil
}

// newMarker inserts a type tag for elem before at.
func newMarker(f *ssa.Func, at *ssa.Value, elem types.Type) *ssa.Value {
	m := f.NewValueBefore(at, ssa.OpMetatype, types.NewMetatype(elem))
	m.Aux = elem
	return m
}

// localize returns v if it belongs to f, and otherwise a copy of the
// literal inserted before at. Only integer and float literals can be
// copied across functions.
func localize(f *ssa.Func, at, v *ssa.Value) (*ssa.Value, error) {
	if v.Func() == f {
		return v, nil
	}
	if !v.Op.IsLiteral() {
		return nil, internalf(at, "cannot re-create %s from %s in this function", v.Op, v.Func().Name)
	}
	c := f.NewValueBefore(at, v.Op, v.Type)
	c.AuxInt = v.AuxInt
	c.AuxFloat = v.AuxFloat
	return c, nil
}

// replace builds a new call of the same kind as old from the assembled
// operands, moves every use over and removes old.
func replace(old *ssa.Value, op ssa.Op, name string, args []*ssa.Value) *ssa.Value {
	f := old.Func()
	nv := f.NewValueBefore(old, op, old.Type, args...)
	nv.Aux = name
	f.ReplaceUses(old, nv)
	f.RemoveValue(old)
	return nv
}

// Canonicalize rewrites the call behind d into canonical form: scalar
// inputs are unwrapped, attributes are replaced by their literal
// constants and constant arrays are expanded into a type marker
// followed by one element operand each. d must have passed Validate.
//
// If the call is already canonical it is left alone and d is returned.
// Otherwise the call is replaced and the descriptor of the new call is
// returned. A failure is always an *InternalError.
func (a *Analyzer) Canonicalize(d *Descriptor) (*Descriptor, error) {
	call := d.Value
	b := &builder{op: d.Op}
	for i, e := range d.Entries {
		arg := d.Operand(i)
		if e.Role.IsInput() {
			if !types.IsHandle(arg.Type) {
				arg = ScalarOperand(arg)
			}
			if arg == nil {
				return nil, internalf(call, "input '%s' has no scalar value", e.Name)
			}
			b.add(e, arg)
			continue
		}

		if arg.Op == ssa.OpMetatype {
			// Already a marker.
			b.add(e, arg)
			continue
		}
		c := a.AttrConstant(arg)
		if c == nil {
			return nil, internalf(call, "attribute '%s' is not constant", e.Name)
		}
		if arr, ok := a.constArray(c); ok {
			b.addArray(e.Name, e.Role, arr)
			continue
		}
		b.add(e, c)
	}

	if b.sameAs(call) {
		return d, nil
	}

	args, name, err := b.emit(call)
	if err != nil {
		return nil, err
	}
	nv := replace(call, call.Op, name, args)

	nd, flt := a.decode(nv)
	if flt != nil || nd == nil {
		msg := "canonical call does not decode"
		if flt != nil {
			msg += ": " + flt.msg
		}
		return nil, internalf(nv, "%s", msg)
	}
	a.logger().Debug("canonicalized op",
		slog.String("func", nv.Func().Name),
		slog.String("op", nd.Op),
		slog.String("value", nv.String()),
		slog.Int("operands", len(nv.Args)),
		slog.Int("expanded", len(nv.Args)-len(d.Entries)))
	return nd, nil
}

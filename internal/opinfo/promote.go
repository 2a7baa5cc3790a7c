package opinfo

import (
	"fmt"
	"log/slog"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/opname"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

const valueAttr = "value"

// PromoteTensorLiteral rewrites a call to one of the library tensor
// constructors whose arguments are constant arrays into a Const graph
// op:
//
//	op_Const,value$tensor,$elt...,value$shape,$elt...,dtype
//
// The rank-1 constructor gets a shape of one dimension holding the
// scalar count. If the scalar count does not match the shape, the
// mismatch is reported and the call is left alone. The returned value
// is the replacement, or v if nothing was rewritten.
func (a *Analyzer) PromoteTensorLiteral(v *ssa.Value) (*ssa.Value, error) {
	if v.Op != ssa.OpApply {
		return v, nil
	}
	fn, ok := opabi.LookupPromotable(v.Name())
	if !ok || len(v.Args) != fn.NumArgs || !types.IsHandle(v.Type) {
		return v, nil
	}

	scalars, ok := a.constArray(v.Args[0])
	if !ok {
		return v, nil
	}
	b := &builder{op: opabi.ConstOp}
	b.addArray(valueAttr, opname.TensorValue, scalars)

	var shape *Array
	if fn.HasDims {
		shape, ok = a.constArray(v.Args[1])
		if !ok {
			return v, nil
		}
		count, ok, overflowed := elementCount(shape.Elements)
		if !ok {
			return v, nil
		}
		if overflowed {
			a.report(diag.AtrBadShape, diag.SevError, a.UserPos(v), fmt.Sprintf(
				"attribute '%s' has invalid shape", valueAttr))
			return v, nil
		}
		if count != uint64(scalars.Len()) {
			a.report(diag.AtrShapeMismatch, diag.SevError, a.UserPos(v), fmt.Sprintf(
				"tensor literal should have %d scalars for this shape, but has %d", count, scalars.Len()))
			return v, nil
		}
		b.addArray(valueAttr, opname.ShapeSpec, shape)
	}

	args, _, err := b.emit(v)
	if err != nil {
		return nil, err
	}
	f := v.Func()
	marker := args[0]
	entries := []opname.Entry{{Name: valueAttr, Role: opname.TensorValue}}
	for range scalars.Elements {
		entries = append(entries, opname.Entry{Name: valueAttr, Role: opname.ArrayElement})
	}
	if !fn.HasDims {
		n := f.NewValueBefore(v, ssa.OpConstInt, types.Typ[types.Int64])
		n.AuxInt = int64(scalars.Len())
		args = append(args, marker, n)
	}
	entries = append(entries, opname.Entry{Name: valueAttr, Role: opname.ShapeSpec})
	dims := len(args) - len(entries)
	for i := 0; i < dims; i++ {
		entries = append(entries, opname.Entry{Name: valueAttr, Role: opname.ArrayElement})
	}
	args = append(args, marker)
	entries = append(entries, opname.Entry{Name: "dtype", Role: opname.Normal})

	nv := replace(v, ssa.OpGraphOp, opname.Encode(opabi.ConstOp, entries), args)
	a.logger().Debug("promoted tensor literal",
		slog.String("func", f.Name),
		slog.String("callee", fn.Name),
		slog.String("value", nv.String()),
		slog.Int("scalars", scalars.Len()))
	return nv, nil
}

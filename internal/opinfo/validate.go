package opinfo

import (
	"errors"
	"fmt"
	"math/bits"

	"fortio.org/safecast"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/opname"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

func attrErr(code diag.Code, attr, format string, args ...interface{}) *AttrError {
	return &AttrError{Attr: attr, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks that every attribute operand of d is a constant of
// the kind its role requires. It returns the first violation as an
// *AttrError, or nil.
func (a *Analyzer) Validate(d *Descriptor) error {
	entries := d.Entries
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if e.Role.IsInput() {
			continue
		}
		arg := d.Operand(i)
		c := a.AttrConstant(arg)
		if c == nil {
			if _, isArray := types.ArrayElem(arg.Type); isArray && e.Role == opname.TensorValue {
				return attrErr(diag.AtrNotConstant, e.Name, "attribute '%s' requires an array of constant values", e.Name)
			}
			return attrErr(diag.AtrNotConstant, e.Name, "attribute '%s' requires a constant argument", e.Name)
		}

		switch e.Role {
		case opname.Normal:
		case opname.DTypeMarker:
			if !isIntLiteral(c) {
				return attrErr(diag.AtrWrongKind, e.Name, "attribute '%s' requires a constant integer", e.Name)
			}
		case opname.ShapeSpec, opname.ArrayMarker:
			if c.Op != ssa.OpMetatype {
				return attrErr(diag.AtrWrongKind, e.Name, "attribute '%s' requires a constant integer or floating point constant", e.Name)
			}
		case opname.ArrayElement:
			if !isNumericLiteral(c) {
				return attrErr(diag.AtrWrongKind, e.Name, "attribute '%s' requires a constant integer or floating point constant", e.Name)
			}
		case opname.TensorValue:
			if isNumericLiteral(c) || c.Op == ssa.OpMetatype {
				break
			}
			scalars, ok := a.constArray(c)
			if !ok {
				return attrErr(diag.AtrWrongKind, e.Name, "attribute '%s' requires a constant integer or floating point constant", e.Name)
			}
			next := i + 1
			if next >= len(entries) || entries[next].Name != e.Name || entries[next].Role != opname.ShapeSpec {
				if d.IsCall() {
					break
				}
				return attrErr(diag.AtrMissingShape, e.Name, "tensor array attribute '%s' must be followed by a shape", e.Name)
			}
			i = next
			if err := a.checkShape(e.Name, d.Operand(next), scalars.Len()); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkShape checks that shape is a constant integer array whose
// dimensions multiply out to n.
func (a *Analyzer) checkShape(attr string, shape *ssa.Value, n int) error {
	c := a.AttrConstant(shape)
	if c == nil {
		return attrErr(diag.AtrBadShape, attr, "attribute '%s' has invalid shape", attr)
	}
	if _, ok := types.ArrayElem(c.Type); !ok {
		return attrErr(diag.AtrBadShape, attr, "attribute '%s' has invalid shape", attr)
	}
	dims, ok := a.constArray(c)
	if !ok {
		return attrErr(diag.AtrBadShape, attr, "attribute '%s' has non-constant shape", attr)
	}
	count, ok, overflowed := elementCount(dims.Elements)
	if !ok {
		return attrErr(diag.AtrBadShape, attr, "attribute '%s' has non-constant shape", attr)
	}
	if overflowed {
		return attrErr(diag.AtrBadShape, attr, "attribute '%s' has invalid shape", attr)
	}
	if count != uint64(n) {
		return attrErr(diag.AtrShapeMismatch, attr, "tensor literal should have %d scalars for this shape, but has %d", count, n)
	}
	return nil
}

// elementCount multiplies constant integer dimensions. A product that
// does not fit in 64 bits is reported as overflowed.
func elementCount(dims []*ssa.Value) (count uint64, constant, overflowed bool) {
	count = 1
	for _, d := range dims {
		if !isIntLiteral(d) {
			return 0, false, false
		}
		n, err := safecast.Conv[uint64](d.AuxInt)
		if err != nil {
			return 0, false, false
		}
		hi, lo := bits.Mul64(count, n)
		if hi != 0 {
			overflowed = true
		}
		count = lo
	}
	return count, true, overflowed
}

// Check validates d and reports the first violation at the user-visible
// location of the call. It returns whether d is valid.
func (a *Analyzer) Check(d *Descriptor) bool {
	err := a.Validate(d)
	if err == nil {
		return true
	}
	code := diag.AtrInfo
	var ae *AttrError
	if errors.As(err, &ae) {
		code = ae.Code
	}
	a.report(code, diag.SevError, a.UserPos(d.Value), err.Error())
	return false
}

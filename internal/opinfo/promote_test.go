package opinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

func (x *fixture) apply(callee string, args ...*ssa.Value) *ssa.Value {
	v := x.value(ssa.OpApply, types.NewHandle(intT), args...)
	v.Aux = callee
	v.Pos = opPos
	return v
}

func TestPromoteTensorFromScalars(t *testing.T) {
	x := newFixture(t)
	call := x.apply("__tf_tensor_from_scalars", x.ints(1, 2, 3, 4), x.ints(2, 2))
	x.ret(call)

	nv, err := x.a.PromoteTensorLiteral(call)
	require.NoError(t, err)
	require.NotSame(t, call, nv)
	assert.Nil(t, call.Block)
	assert.Equal(t, ssa.OpGraphOp, nv.Op)
	assert.Same(t, nv, x.f.Entry.Controls[0])
	assert.Equal(t, "op_Const,value$tensor,$elt,$elt,$elt,$elt,value$shape,$elt,$elt,dtype", nv.Name())
	require.Len(t, nv.Args, 9)
	assert.Same(t, nv.Args[0], nv.Args[8], "dtype reuses the scalar type marker")
	for i, want := range []int64{1, 2, 3, 4} {
		assert.Equal(t, want, nv.Args[1+i].AuxInt)
	}
	assert.Equal(t, ssa.OpMetatype, nv.Args[5].Op)

	d := x.decode(nv)
	require.NoError(t, x.a.Validate(d))
	cd, err := x.a.Canonicalize(d)
	require.NoError(t, err)
	assert.Same(t, nv, cd.Value)
	x.verify()
}

func TestPromoteTensorFromScalars1D(t *testing.T) {
	x := newFixture(t)
	scalars := x.array(floatT, x.stdFloat(1.5), x.stdFloat(2.5))
	call := x.apply("__tf_tensor_from_scalars_1d", scalars)
	x.ret(call)

	nv, err := x.a.PromoteTensorLiteral(call)
	require.NoError(t, err)
	assert.Equal(t, "op_Const,value$tensor,$elt,$elt,value$shape,$elt,dtype", nv.Name())
	require.Len(t, nv.Args, 6)
	assert.Equal(t, 1.5, nv.Args[1].AuxFloat)
	assert.Equal(t, 2.5, nv.Args[2].AuxFloat)
	assert.Same(t, nv.Args[0], nv.Args[3])
	dim := nv.Args[4]
	assert.Equal(t, ssa.OpConstInt, dim.Op)
	assert.Equal(t, int64(2), dim.AuxInt)
	assert.True(t, types.Identical(int64T, dim.Type))

	require.NoError(t, x.a.Validate(x.decode(nv)))
	x.verify()
}

func TestPromoteShapeMismatch(t *testing.T) {
	x := newFixture(t)
	call := x.apply("__tf_tensor_from_scalars", x.ints(1, 2, 3), x.ints(2, 2))
	x.ret(call)

	nv, err := x.a.PromoteTensorLiteral(call)
	require.NoError(t, err)
	assert.Same(t, call, nv)
	assert.Same(t, x.f.Entry, call.Block)

	items := x.bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.AtrShapeMismatch, items[0].Code)
	assert.Equal(t, "tensor literal should have 4 scalars for this shape, but has 3", items[0].Message)
	assert.Equal(t, opPos, items[0].Pos)
}

func TestPromoteShapeOverflow(t *testing.T) {
	x := newFixture(t)
	call := x.apply("__tf_tensor_from_scalars", x.ints(1, 2, 3, 4), x.ints(1<<62+1, 4))
	x.ret(call)

	nv, err := x.a.PromoteTensorLiteral(call)
	require.NoError(t, err)
	assert.Same(t, call, nv)

	items := x.bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.AtrBadShape, items[0].Code)
	assert.Equal(t, "attribute 'value' has invalid shape", items[0].Message)
}

func TestPromoteLeavesOtherCalls(t *testing.T) {
	tests := []struct {
		name string
		make func(x *fixture) *ssa.Value
	}{
		{"other callee", func(x *fixture) *ssa.Value {
			return x.apply("makeTensor", x.ints(1), x.ints(1))
		}},
		{"non-constant scalars", func(x *fixture) *ssa.Value {
			return x.apply("__tf_tensor_from_scalars_1d", x.array(intT, x.arg("n", intT)))
		}},
		{"non-constant shape", func(x *fixture) *ssa.Value {
			return x.apply("__tf_tensor_from_scalars", x.ints(1), x.arg("s", arrayInt))
		}},
		{"float shape", func(x *fixture) *ssa.Value {
			return x.apply("__tf_tensor_from_scalars", x.ints(1), x.array(floatT, x.stdFloat(1)))
		}},
		{"wrong arity", func(x *fixture) *ssa.Value {
			return x.apply("__tf_tensor_from_scalars", x.ints(1))
		}},
		{"graph op", func(x *fixture) *ssa.Value {
			return x.op("__tf_tensor_from_scalars_1d", handleT, x.ints(1))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := newFixture(t)
			v := tt.make(x)
			before := x.f.NumValues()
			nv, err := x.a.PromoteTensorLiteral(v)
			require.NoError(t, err)
			assert.Same(t, v, nv)
			assert.Equal(t, before, x.f.NumValues())
			assert.Equal(t, 0, x.bag.Len())
		})
	}
}

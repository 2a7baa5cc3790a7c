package opinfo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

var (
	intT     = types.StdType("Int")
	floatT   = types.StdType("Float")
	stringT  = types.StdType("String")
	wordT    = types.Typ[types.Word]
	int64T   = types.Typ[types.Int64]
	int128T  = types.Typ[types.Int128]
	fp32T    = types.Typ[types.FPIEEE32]
	handleT  = types.NewHandle(floatT)
	bridgeT  = types.Typ[types.BridgeObject]
	rawPtrT  = types.Typ[types.RawPointer]
	opPos    = syntax.NewPos("model.swift", 7, 3)
	arrayInt = types.NewArray(intT)
)

// fixture builds a single-block function inside a module.
type fixture struct {
	t   *testing.T
	m   *ssa.Module
	f   *ssa.Func
	bag *diag.Bag
	a   *Analyzer
}

func newFixture(t *testing.T) *fixture {
	m := ssa.NewModule("test")
	f := ssa.NewFunc("main", nil)
	f.Entry.Kind = ssa.BlockReturn
	m.AddFunc(f)
	bag := diag.NewBag(0)
	return &fixture{
		t:   t,
		m:   m,
		f:   f,
		bag: bag,
		a: &Analyzer{
			WordSize: 64,
			Reporter: diag.BagReporter{Bag: bag, Func: f.Name},
		},
	}
}

func (x *fixture) value(op ssa.Op, typ types.Type, args ...*ssa.Value) *ssa.Value {
	return x.f.NewValue(x.f.Entry, op, typ, args...)
}

func (x *fixture) arg(name string, typ types.Type) *ssa.Value {
	v := x.value(ssa.OpArg, typ)
	v.Aux = name
	return v
}

func (x *fixture) cint(typ types.Type, n int64) *ssa.Value {
	v := x.value(ssa.OpConstInt, typ)
	v.AuxInt = n
	return v
}

func (x *fixture) cfloat(typ types.Type, f float64) *ssa.Value {
	v := x.value(ssa.OpConstFloat, typ)
	v.AuxFloat = f
	return v
}

// stdInt builds Int(n): a struct around a word literal.
func (x *fixture) stdInt(n int64) *ssa.Value {
	return x.value(ssa.OpStruct, intT, x.cint(wordT, n))
}

func (x *fixture) stdFloat(f float64) *ssa.Value {
	return x.value(ssa.OpStruct, floatT, x.cfloat(fp32T, f))
}

func (x *fixture) metatype(t types.Type) *ssa.Value {
	v := x.value(ssa.OpMetatype, types.NewMetatype(t))
	v.Aux = t
	return v
}

// str builds the usual String wrapping of a UTF-8 literal.
func (x *fixture) str(s string) *ssa.Value {
	lit := x.value(ssa.OpConstString, rawPtrT)
	lit.Aux = s
	toInt := x.value(ssa.OpBuiltin, wordT, lit)
	toInt.Aux = "ptrtoint"
	bits := x.value(ssa.OpBuiltin, wordT, toInt, x.cint(wordT, 1))
	bits.Aux = "or"
	obj := x.value(ssa.OpBitCast, bridgeT, bits)
	return x.value(ssa.OpStruct, stringT, obj)
}

// array lowers an array literal the way the compiler does: a tail
// allocated storage object with one store per element.
func (x *fixture) array(elem types.Type, elts ...*ssa.Value) *ssa.Value {
	storageT := types.ContiguousArrayStorage(elem)
	alloc := x.value(ssa.OpAllocRef, storageT, x.cint(wordT, int64(len(elts))))
	up := x.value(ssa.OpUpcast, types.ContiguousArrayStorageBase, alloc)
	tail := x.value(ssa.OpRefTailAddr, types.NewPointer(elem), up)
	for i, e := range elts {
		addr := tail
		if i > 0 {
			addr = x.value(ssa.OpIndexAddr, types.NewPointer(elem), tail, x.cint(wordT, int64(i)))
		}
		x.value(ssa.OpStore, nil, addr, e)
	}
	obj := x.value(ssa.OpRefCast, bridgeT, alloc)
	return x.value(ssa.OpStruct, types.NewArray(elem), obj)
}

// emptyArray refers to the shared empty array storage.
func (x *fixture) emptyArray(elem types.Type) *ssa.Value {
	g := x.m.Global("_swiftEmptyArrayStorage")
	if g == nil {
		g = x.m.NewGlobal("_swiftEmptyArrayStorage", types.EmptyArrayStorage)
	}
	ga := x.value(ssa.OpGlobalAddr, types.NewPointer(types.EmptyArrayStorage))
	ga.Aux = g
	p := x.value(ssa.OpAddrToPointer, rawPtrT, ga)
	ref := x.value(ssa.OpRawPointerToRef, types.EmptyArrayStorage, p)
	obj := x.value(ssa.OpRefCast, bridgeT, ref)
	return x.value(ssa.OpStruct, types.NewArray(elem), obj)
}

// staticArray refers to a global statically initialized with an object
// whose tail elements are int literals built in the initializer.
func (x *fixture) staticArray(name string, vals ...int64) *ssa.Value {
	storageT := types.ContiguousArrayStorage(intT)
	g := x.m.NewGlobal(name, storageT)
	init := g.InitFunc()
	count := init.NewValue(init.Entry, ssa.OpConstInt, wordT)
	count.AuxInt = int64(len(vals))
	obj := init.NewValue(init.Entry, ssa.OpObject, storageT, count)
	obj.AuxInt = 1
	for _, n := range vals {
		lit := init.NewValue(init.Entry, ssa.OpConstInt, wordT)
		lit.AuxInt = n
		obj.AddArg(init.NewValue(init.Entry, ssa.OpStruct, intT, lit))
	}
	g.SetInit(obj)

	gv := x.value(ssa.OpGlobalValue, storageT)
	gv.Aux = g
	cast := x.value(ssa.OpRefCast, bridgeT, gv)
	return x.value(ssa.OpStruct, arrayInt, cast)
}

func (x *fixture) op(name string, typ types.Type, args ...*ssa.Value) *ssa.Value {
	v := x.value(ssa.OpGraphOp, typ, args...)
	v.Aux = name
	v.Pos = opPos
	return v
}

func (x *fixture) ret(v *ssa.Value) {
	x.f.Entry.SetControl(v)
}

func (x *fixture) verify() {
	x.t.Helper()
	require.NoError(x.t, ssa.Verify(x.f))
	ssa.ComputeDom(x.f)
	require.NoError(x.t, ssa.VerifyDom(x.f))
}

func (x *fixture) decode(v *ssa.Value) *Descriptor {
	x.t.Helper()
	d := x.a.Decode(v)
	require.NotNil(x.t, d, "decode %s: %v", v.LongString(), x.bag.Items())
	return d
}

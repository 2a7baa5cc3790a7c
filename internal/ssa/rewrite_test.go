package ssa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/opcanon/internal/syntax"
)

func TestNewValueBefore(t *testing.T) {
	f := makeAddFunc()
	op := f.Entry.Values[2]
	op.Pos = syntax.NewPos("model.swift", 4, 9)
	op.Scope = &Scope{Func: "inlined", CallPos: syntax.NewPos("main.swift", 1, 1)}

	lit := f.NewValueBefore(op, OpConstInt, int64T)

	require.Len(t, f.Entry.Values, 4)
	assert.Same(t, lit, f.Entry.Values[2])
	assert.Same(t, op, f.Entry.Values[3])
	assert.Equal(t, op.Pos, lit.Pos)
	assert.Same(t, op.Scope, lit.Scope)
	assert.Same(t, f.Entry, lit.Block)

	ComputeDom(f)
	require.NoError(t, VerifyDom(f))
}

func TestNewValueBeforeDetachedPanics(t *testing.T) {
	f := makeAddFunc()
	other := makeAddFunc()
	assert.Panics(t, func() {
		f.NewValueBefore(other.Entry.Values[0], OpConstInt, int64T)
	})
}

func TestUsesAndUsers(t *testing.T) {
	f := makeAddFunc()
	x := f.Entry.Values[0]
	op := f.Entry.Values[2]

	// op_Add(x, x) and a copy of x: three argument slots.
	op.ReplaceArg(1, x)
	cp := f.NewValue(f.Entry, OpCopy, handleT, x)

	uses := f.Uses(x)
	require.Len(t, uses, 3)
	assert.Equal(t, Use{User: op, Block: f.Entry, Index: 0}, uses[0])
	assert.Equal(t, Use{User: op, Block: f.Entry, Index: 1}, uses[1])
	assert.Equal(t, Use{User: cp, Block: f.Entry, Index: 0}, uses[2])

	assert.Equal(t, []*Value{op, cp}, f.Users(x))

	ctl := f.Uses(op)
	require.Len(t, ctl, 1)
	assert.Nil(t, ctl[0].User)
	assert.Equal(t, 0, ctl[0].Index)
}

func TestReplaceUsesAndRemove(t *testing.T) {
	f := makeAddFunc()
	x, y, op := f.Entry.Values[0], f.Entry.Values[1], f.Entry.Values[2]

	repl := f.NewValueBefore(op, OpGraphOp, handleT, y, x)
	repl.Aux = "op_Add,y,x"

	f.ReplaceUses(op, repl)
	assert.Equal(t, int32(0), op.Uses)
	assert.Equal(t, int32(1), repl.Uses)
	assert.Same(t, repl, f.Entry.Controls[0])

	f.RemoveValue(op)
	assert.Nil(t, op.Block)
	assert.Nil(t, op.Args)
	assert.Equal(t, int32(1), x.Uses)
	assert.Equal(t, int32(1), y.Uses)
	assert.NotContains(t, f.Entry.Values, op)

	require.NoError(t, Verify(f))
}

func TestReplaceUsesSelf(t *testing.T) {
	f := makeAddFunc()
	op := f.Entry.Values[2]
	f.ReplaceUses(op, op)
	assert.Equal(t, int32(1), op.Uses)
}

func TestRemoveValueWithUsesPanics(t *testing.T) {
	f := makeAddFunc()
	assert.Panics(t, func() { f.RemoveValue(f.Entry.Values[0]) })
}

func TestProjectionFollowsReplacement(t *testing.T) {
	f := makeAddFunc()
	x, y, op := f.Entry.Values[0], f.Entry.Values[1], f.Entry.Values[2]
	proj := f.NewValue(f.Entry, OpTupleExtract, handleT, op)
	proj.AuxInt = 1

	repl := f.NewValueBefore(op, OpGraphOp, handleT, x, y)
	repl.Aux = "op_Add,x,y"
	f.ReplaceUses(op, repl)
	f.RemoveValue(op)

	assert.Same(t, repl, proj.Args[0])
	require.NoError(t, Verify(f))
}

func TestValuesSnapshot(t *testing.T) {
	f := makeAddFunc()
	snap := f.Values()
	require.Len(t, snap, 3)
	f.NewValue(f.Entry, OpConstInt, int64T)
	assert.Len(t, snap, 3)
	assert.Len(t, f.Values(), 4)
}

func TestModuleLookup(t *testing.T) {
	m := NewModule("m")
	f := makeAddFunc()
	m.AddFunc(f)
	g := m.NewGlobal("g", int64T)

	assert.Same(t, f, m.Func("add"))
	assert.Same(t, m, f.Module)
	assert.Nil(t, m.Func("missing"))
	assert.Same(t, g, m.Global("g"))
	assert.Nil(t, m.Global("missing"))
	assert.Same(t, m, g.InitFunc().Module)
	assert.Same(t, g.InitFunc(), g.InitFunc())
}

func TestGlobalSetInitReplaces(t *testing.T) {
	m := NewModule("m")
	g := m.NewGlobal("g", int64T)
	init := g.InitFunc()
	a := init.NewValue(init.Entry, OpConstInt, int64T)
	b := init.NewValue(init.Entry, OpConstInt, int64T)

	g.SetInit(a)
	g.SetInit(b)
	assert.Equal(t, int32(0), a.Uses)
	assert.Equal(t, int32(1), b.Uses)
	assert.Same(t, b, g.Init)
	require.NoError(t, Verify(init))
}

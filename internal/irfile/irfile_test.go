package irfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

const sample = `
module: model
globals:
  - name: shape
    type: Array<Int>
    init: obj
    values:
      - {name: n, op: ConstInt, type: Builtin.Word, int: 2}
      - {name: two, op: ConstInt, type: Builtin.Word, int: 2}
      - {name: e0, op: Struct, type: Int, args: [two]}
      - {name: e1, op: Struct, type: Int, args: [two]}
      - {name: obj, op: Object, type: ContiguousArrayStorage<Int>, args: [n, e0, e1], int: 1}
funcs:
  - name: main
    blocks:
      - name: entry
        succs: [left, right]
        control: [c]
        values:
          - {name: x, op: Arg, type: TensorHandle<Float>}
          - {name: c, op: Arg, type: Builtin.Int1, aux: cond, int: 1}
      - name: left
        succs: [join]
      - name: right
        succs: [join]
      - name: join
        kind: ret
        control: [y]
        values:
          - {name: p, op: Phi, type: TensorHandle<Float>, args: [x, x]}
          - {name: g, op: GlobalValue, type: ContiguousArrayStorage<Int>, aux: shape}
          - {name: dt, op: Metatype, aux: Float}
          - name: y
            op: GraphOp
            type: TensorHandle<Float>
            args: [p, dt]
            aux: "op_Cast,x,T$dtype"
            pos: "model.swift:3:1"
            scope:
              - {func: "Tensor.cast", call: "stdlib/Tensor.swift:40:5"}
              - {func: "helper", call: "model.swift:9:2"}
          - {op: ConstString, type: String, aux: "hi", encoding: utf16}
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "model", m.Name)
	require.Len(t, m.Funcs, 1)

	f := m.Func("main")
	require.NotNil(t, f)
	require.NoError(t, ssa.Verify(f))
	require.Len(t, f.Blocks, 4)
	assert.Equal(t, ssa.BlockIf, f.Entry.Kind)
	assert.Equal(t, ssa.BlockPlain, f.Blocks[1].Kind)
	assert.Equal(t, ssa.BlockReturn, f.Blocks[3].Kind)
	assert.Len(t, f.Blocks[3].Preds, 2)

	x := f.Entry.Values[0]
	assert.Equal(t, "x", x.Aux)
	c := f.Entry.Values[1]
	assert.Equal(t, "cond", c.Aux)
	assert.Equal(t, int64(1), c.AuxInt)

	join := f.Blocks[3]
	y := join.Values[3]
	assert.Equal(t, ssa.OpGraphOp, y.Op)
	assert.Equal(t, "op_Cast,x,T$dtype", y.Aux)
	assert.Equal(t, syntax.NewPos("model.swift", 3, 1), y.Pos)
	require.NotNil(t, y.Scope)
	assert.Equal(t, "Tensor.cast", y.Scope.Func)
	assert.Equal(t, syntax.NewPos("stdlib/Tensor.swift", 40, 5), y.Scope.CallPos)
	require.NotNil(t, y.Scope.Parent)
	assert.Equal(t, "helper", y.Scope.Parent.Func)
	assert.Nil(t, y.Scope.Parent.Parent)
	assert.Equal(t, join.Controls[0], y)

	dt := join.Values[2]
	assert.Equal(t, types.StdType("Float"), dt.Aux)
	assert.Equal(t, "Float.Type", dt.Type.String())

	s := join.Values[4]
	assert.Equal(t, "hi", s.Aux)
	assert.Equal(t, int64(ssa.UTF16), s.AuxInt)

	g := m.Global("shape")
	require.NotNil(t, g)
	assert.Same(t, g, join.Values[1].Global())
	require.NotNil(t, g.Init)
	assert.Equal(t, ssa.OpObject, g.Init.Op)
	assert.Len(t, g.Init.Args, 3)
	assert.NotSame(t, f, g.Init.Block.Func)
	require.NoError(t, ssa.Verify(g.InitFunc()))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "model", m.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read module file")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "module: m\nfuncs:\n  - name: f\n    blokcs: []\n", "failed to parse YAML"},
		{"no module", "funcs: []\n", "missing module name"},
		{"no blocks", "module: m\nfuncs:\n  - name: f\n", "func f: no blocks"},
		{"dup func", "module: m\nfuncs:\n  - {name: f, blocks: [{}]}\n  - {name: f, blocks: [{}]}\n", "func f: declared twice"},
		{"unknown op", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: Add}]\n", `value a: unknown op "Add"`},
		{"unknown arg", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: Copy, type: Int, args: [b]}]\n", "value a: unknown argument b"},
		{"unknown type", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: Arg, type: Foo}]\n", "unknown type Foo"},
		{"unknown global", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: GlobalAddr, type: '*Int', aux: g}]\n", `unknown global "g"`},
		{"graph op name", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: GraphOp, type: Int}]\n", "GraphOp needs a name in aux"},
		{"bad pos", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: Arg, type: Int, pos: nowhere}]\n", "value a"},
		{"encoding", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: ConstString, type: String, encoding: latin1}]\n", `unknown string encoding "latin1"`},
		{"dup value", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: Arg, type: Int}, {name: a, op: Arg, type: Int}]\n", "value a: declared twice"},
		{"block kind", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - kind: loop\n", `unknown block kind "loop"`},
		{"successor", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - succs: [nowhere]\n", "unknown successor nowhere"},
		{"control", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - control: [v]\n", "unknown control value v"},
		{"global init", "module: m\nglobals:\n  - {name: g, type: Int, init: v}\n", "global g: init v names no value"},
		{"missing args", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: a, op: RefCast, type: Builtin.BridgeObject}]\n", "has 0 args, want 1"},
		{"index address arity", "module: m\nfuncs:\n  - name: f\n    blocks:\n      - values: [{name: p, op: Arg, type: '*Int'}, {name: a, op: IndexAddr, type: '*Int', args: [p]}]\n", "has 1 args, want 2"},
		{"global init arity", "module: m\nglobals:\n  - name: g\n    type: Int\n    values: [{name: v, op: RawPointerToRef, type: EmptyArrayStorage}]\n", "func g.init"},
		{"global init value", "module: m\nglobals:\n  - name: g\n    type: Int\n    init: w\n    values: [{name: v, op: ConstInt, type: Builtin.Word}]\n", "init: unknown value w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTypeExpr(t *testing.T) {
	tests := []string{
		"Builtin.Int64",
		"Builtin.Word",
		"Builtin.FPIEEE32",
		"Int",
		"String",
		"*Int",
		"Array<Float>",
		"Optional<Array<Int32>>",
		"TensorHandle<Float>",
		"ContiguousArrayStorage<Int>",
		"ContiguousArrayStorageBase",
		"EmptyArrayStorage",
		"Int.Type",
		"(TensorHandle<Float>, TensorHandle<Int32>)",
		"()",
		"mylib.Vector",
	}
	p := newTypeParser()
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			typ, err := p.parse(src)
			require.NoError(t, err)
			assert.Equal(t, src, typ.String())
		})
	}
}

func TestTypeExprIdentity(t *testing.T) {
	p := newTypeParser()
	std, err := p.parse("std.Int")
	require.NoError(t, err)
	assert.Same(t, types.StdType("Int"), std)

	word, err := p.parse("Builtin.Word")
	require.NoError(t, err)
	assert.Same(t, types.Typ[types.Word], word)

	a, err := p.parse("mylib.Vector")
	require.NoError(t, err)
	b, err := p.parse("mylib.Vector")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestTypeExprErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", "expected type name"},
		{"Foo", "unknown type Foo"},
		{"Builtin.Int7", "unknown builtin type Builtin.Int7"},
		{"std.Vector", "unknown type std.Vector"},
		{"Array<Int", `expected '>'`},
		{"Array Int", `expected '<'`},
		{"Int]", "unexpected"},
		{"(Int Int)", `expected ','`},
	}
	p := newTypeParser()
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := p.parse(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

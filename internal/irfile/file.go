// Package irfile reads modules written as YAML. A module lists globals
// with their static initializers and functions as blocks of values:
//
//	module: model
//	globals:
//	  - name: shape
//	    type: Array<Int>
//	    init: obj
//	    values:
//	      - {name: n, op: ConstInt, type: Builtin.Word, int: 2}
//	      - {name: obj, op: Object, type: ContiguousArrayStorage<Int>, args: [n]}
//	funcs:
//	  - name: main
//	    blocks:
//	      - kind: ret
//	        control: [y]
//	        values:
//	          - {name: x, op: Arg, type: TensorHandle<Float>, aux: x}
//	          - {name: y, op: GraphOp, type: TensorHandle<Float>, args: [x], aux: "op_Neg,x", pos: "model.swift:3:1"}
//
// Values are referenced by name within their function; references may
// point forward, so phis can name values from later blocks.
package irfile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/opcanon/internal/ssa"
)

// File is the YAML form of a module.
type File struct {
	Module  string       `yaml:"module"`
	Globals []GlobalDecl `yaml:"globals"`
	Funcs   []FuncDecl   `yaml:"funcs"`
}

// GlobalDecl declares a global. Values, if present, form its static
// initializer and Init names the initializer value.
type GlobalDecl struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Init   string      `yaml:"init"`
	Values []ValueDecl `yaml:"values"`
}

// FuncDecl declares a function. The first block is the entry.
type FuncDecl struct {
	Name   string      `yaml:"name"`
	Blocks []BlockDecl `yaml:"blocks"`
}

// BlockDecl declares a basic block. Kind is one of plain, if, ret, exit.
type BlockDecl struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Succs   []string    `yaml:"succs"`
	Control []string    `yaml:"control"`
	Values  []ValueDecl `yaml:"values"`
}

// ValueDecl declares one value. Aux is interpreted by op: the literal
// text of a ConstString, the name of a GraphOp, Apply callee, Builtin,
// Arg or global, or the instance type of a Metatype.
type ValueDecl struct {
	Name     string      `yaml:"name"`
	Op       string      `yaml:"op"`
	Type     string      `yaml:"type"`
	Args     []string    `yaml:"args"`
	Int      int64       `yaml:"int"`
	Float    float64     `yaml:"float"`
	Aux      string      `yaml:"aux"`
	Encoding string      `yaml:"encoding"`
	Pos      string      `yaml:"pos"`
	Scope    []ScopeDecl `yaml:"scope"`
}

// ScopeDecl is one inlining level, innermost first.
type ScopeDecl struct {
	Func string `yaml:"func"`
	Call string `yaml:"call"`
}

// Load reads and builds the module at path.
func Load(path string) (*ssa.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes data and builds the module it describes.
func Parse(data []byte) (*ssa.Module, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Build(&file)
}

package ssa

import "github.com/you-not-fish/opcanon/internal/types"

// Module is a unit of functions and globals processed together.
type Module struct {
	Name    string
	Funcs   []*Func
	Globals []*Global
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunc appends f to the module.
func (m *Module) AddFunc(f *Func) {
	f.Module = m
	m.Funcs = append(m.Funcs, f)
}

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Global returns the global with the given name, or nil.
func (m *Module) Global(name string) *Global {
	for _, g := range m.Globals {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// NewGlobal declares a global variable of the given type.
func (m *Module) NewGlobal(name string, typ types.Type) *Global {
	g := &Global{Name: name, Type: typ, Module: m}
	m.Globals = append(m.Globals, g)
	return g
}

// Global is a module-level variable. A global with a static
// initializer keeps the initializer's values in its own function.
type Global struct {
	Name   string
	Type   types.Type
	Module *Module

	// Init is the value the global is statically initialized with,
	// or nil for plain storage.
	Init *Value

	initFunc *Func
}

// InitFunc returns the pseudo-function holding the static initializer,
// creating it on first use.
func (g *Global) InitFunc() *Func {
	if g.initFunc == nil {
		g.initFunc = NewFunc(g.Name+".init", nil)
		g.initFunc.Module = g.Module
		g.initFunc.Entry.Kind = BlockReturn
	}
	return g.initFunc
}

// SetInit records v as the static initializer. v must live in InitFunc;
// it becomes the pseudo-function's return value.
func (g *Global) SetInit(v *Value) {
	entry := g.InitFunc().Entry
	for _, c := range entry.Controls {
		if c != nil {
			c.Uses--
		}
	}
	entry.Controls = nil
	g.Init = v
	if v != nil {
		entry.SetControl(v)
	}
}

// String returns the global's name.
func (g *Global) String() string {
	return "@" + g.Name
}

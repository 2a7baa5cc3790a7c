package types

import "github.com/you-not-fish/opcanon/internal/syntax"

// Package represents a source module that declares nominal types.
type Package struct {
	name  string // module name (e.g., "std")
	scope *Scope // module-level scope
}

// NewPackage creates a new module whose scope sees the standard
// library and the builtin types.
func NewPackage(name string) *Package {
	parent := Universe
	if Std != nil {
		parent = Std.scope
	}
	return &Package{
		name:  name,
		scope: NewScope(parent, "module "+name),
	}
}

// Name returns the module name.
func (p *Package) Name() string {
	return p.name
}

// Scope returns the module-level scope.
func (p *Package) Scope() *Scope {
	return p.scope
}

// String returns the module name.
func (p *Package) String() string {
	return p.name
}

// DeclareNamed declares a nominal type in p. If a type with the same
// name already exists in p, it is returned instead.
func (p *Package) DeclareNamed(name string, underlying Type) *Named {
	if obj, ok := p.scope.Lookup(name).(*TypeName); ok {
		if n, ok := obj.Type().(*Named); ok {
			return n
		}
	}
	obj := NewTypeName(syntax.NoPos, p, name, nil)
	n := NewNamed(obj, underlying)
	p.scope.Insert(obj)
	return n
}

// Lookup resolves a type name visible from p.
func (p *Package) Lookup(name string) Type {
	if obj, _ := p.scope.LookupParent(name); obj != nil {
		return obj.Type()
	}
	return nil
}

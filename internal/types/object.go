package types

import "github.com/you-not-fish/opcanon/internal/syntax"

// Object represents a declared entity: a struct field, parameter or type name.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// Var represents a parameter or struct field.
type Var struct {
	object
	isField bool // true if this is a struct field
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewField creates a new struct field object.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, isField: true}
}

// IsField reports whether this variable is a struct field.
func (v *Var) IsField() bool {
	return v.isField
}

// TypeName represents a declared type name.
type TypeName struct {
	object
	pkg *Package // declaring module; nil for builtins
}

// NewTypeName creates a new type name object declared in pkg.
func NewTypeName(pos syntax.Pos, pkg *Package, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}, pkg: pkg}
}

// Pkg returns the declaring module, or nil for builtin types.
func (t *TypeName) Pkg() *Package {
	return t.pkg
}

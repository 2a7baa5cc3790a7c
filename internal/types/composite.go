package types

import "strings"

// Struct represents a struct layout.
type Struct struct {
	typ
	fields []*Var // field declarations
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Var) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// Underlying implements Type.
func (s *Struct) Underlying() Type {
	return s
}

// String implements Type.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(f.Name())
		buf.WriteString(" ")
		buf.WriteString(f.Type().String())
	}
	buf.WriteString("}")
	return buf.String()
}

// Tuple represents the result list of a multi-result instruction.
type Tuple struct {
	typ
	elems []Type
}

// NewTuple creates a tuple type.
func NewTuple(elems ...Type) *Tuple {
	return &Tuple{elems: elems}
}

// Len returns the number of elements.
func (t *Tuple) Len() int {
	return len(t.elems)
}

// At returns the i'th element type.
func (t *Tuple) At(i int) Type {
	return t.elems[i]
}

// Underlying implements Type.
func (t *Tuple) Underlying() Type {
	return t
}

// String implements Type.
func (t *Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Array represents the library array type Array<Elem>.
// Its storage is a reference-counted buffer, not an inline sequence.
type Array struct {
	typ
	elem Type
}

// NewArray creates a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	return "Array<" + a.elem.String() + ">"
}

// Optional represents Optional<Elem>, a two-case tagged union.
type Optional struct {
	typ
	elem Type
}

// NewOptional creates a new optional type.
func NewOptional(elem Type) *Optional {
	return &Optional{elem: elem}
}

// Elem returns the payload type.
func (o *Optional) Elem() Type {
	return o.elem
}

// Underlying implements Type.
func (o *Optional) Underlying() Type {
	return o
}

// String implements Type.
func (o *Optional) String() string {
	return "Optional<" + o.elem.String() + ">"
}

// Pointer represents the address of a value of type T.
type Pointer struct {
	typ
	base Type
}

// NewPointer creates a new address type.
func NewPointer(base Type) *Pointer {
	return &Pointer{base: base}
}

// Elem returns the type stored at the address.
func (p *Pointer) Elem() Type {
	return p.base
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return "*" + p.base.String()
}

// Class represents a reference-counted class type, such as the
// storage classes backing library arrays.
type Class struct {
	typ
	name  string
	elem  Type   // generic argument, or nil
	super *Class // superclass, or nil
}

// NewClass creates a class type. elem and super may be nil.
func NewClass(name string, elem Type, super *Class) *Class {
	return &Class{name: name, elem: elem, super: super}
}

// Name returns the class name without generic arguments.
func (c *Class) Name() string {
	return c.name
}

// Elem returns the generic argument, or nil.
func (c *Class) Elem() Type {
	return c.elem
}

// Super returns the superclass, or nil.
func (c *Class) Super() *Class {
	return c.super
}

// Underlying implements Type.
func (c *Class) Underlying() Type {
	return c
}

// String implements Type.
func (c *Class) String() string {
	if c.elem != nil {
		return c.name + "<" + c.elem.String() + ">"
	}
	return c.name
}

// Handle represents TensorHandle<Elem>, a reference to a value that
// lives in the external runtime.
type Handle struct {
	typ
	elem Type
}

// NewHandle creates a handle type over the given scalar element type.
func NewHandle(elem Type) *Handle {
	return &Handle{elem: elem}
}

// Elem returns the scalar element type.
func (h *Handle) Elem() Type {
	return h.elem
}

// Underlying implements Type.
func (h *Handle) Underlying() Type {
	return h
}

// String implements Type.
func (h *Handle) String() string {
	return "TensorHandle<" + h.elem.String() + ">"
}

// Metatype is the type of a type-tag value.
type Metatype struct {
	typ
	instance Type
}

// NewMetatype creates the metatype of instance.
func NewMetatype(instance Type) *Metatype {
	return &Metatype{instance: instance}
}

// Instance returns the type the tag denotes.
func (m *Metatype) Instance() Type {
	return m.instance
}

// Underlying implements Type.
func (m *Metatype) Underlying() Type {
	return m
}

// String implements Type.
func (m *Metatype) String() string {
	return m.instance.String() + ".Type"
}

// Func represents a function type.
type Func struct {
	typ
	params []*Var // parameters
	result Type   // return type (nil for void functions)
}

// NewFunc creates a new function type.
func NewFunc(params []*Var, result Type) *Func {
	return &Func{params: params, result: result}
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type, or nil for void functions.
func (f *Func) Result() Type {
	return f.result
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("func(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		if p.Name() != "" {
			buf.WriteString(p.Name())
			buf.WriteString(" ")
		}
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(")")
	if f.result != nil {
		buf.WriteString(" ")
		buf.WriteString(f.result.String())
	}
	return buf.String()
}

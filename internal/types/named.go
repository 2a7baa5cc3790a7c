package types

// Named represents a nominal type declared in some module, such as
// std.Int or std.String.
type Named struct {
	typ
	obj        *TypeName // type name object
	underlying Type      // underlying type
}

// NewNamed creates a new named type.
// The underlying type may be set later using SetUnderlying.
func NewNamed(obj *TypeName, underlying Type) *Named {
	n := &Named{obj: obj, underlying: underlying}
	if obj != nil {
		obj.typ = n
	}
	return n
}

// Obj returns the type name object.
func (n *Named) Obj() *TypeName {
	return n.obj
}

// Module returns the name of the declaring module, or "" if unknown.
func (n *Named) Module() string {
	if n.obj == nil || n.obj.pkg == nil {
		return ""
	}
	return n.obj.pkg.Name()
}

// SetUnderlying sets the underlying type.
func (n *Named) SetUnderlying(underlying Type) {
	n.underlying = underlying
}

// Underlying implements Type.
// For named types, returns the underlying type of the named type.
func (n *Named) Underlying() Type {
	return n.underlying
}

// String implements Type.
func (n *Named) String() string {
	if n.obj == nil {
		return "unnamed"
	}
	if m := n.Module(); m != "" && m != StdModule {
		return m + "." + n.obj.Name()
	}
	return n.obj.Name()
}

package types

// Identical reports whether x and y are identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	// Handle named types
	xn, xNamed := x.(*Named)
	yn, yNamed := y.(*Named)
	if xNamed && yNamed {
		// Two named types are identical only if they are the same named type
		return xn.obj == yn.obj
	}
	if xNamed != yNamed {
		return false
	}

	switch x := x.(type) {
	case *Builtin:
		if y, ok := y.(*Builtin); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Optional:
		if y, ok := y.(*Optional); ok {
			return Identical(x.elem, y.elem)
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.base, y.base)
		}
	case *Handle:
		if y, ok := y.(*Handle); ok {
			return Identical(x.elem, y.elem)
		}
	case *Metatype:
		if y, ok := y.(*Metatype); ok {
			return Identical(x.instance, y.instance)
		}
	case *Class:
		if y, ok := y.(*Class); ok {
			return x.name == y.name && Identical(x.elem, y.elem)
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y)
		}
	case *Tuple:
		if y, ok := y.(*Tuple); ok {
			return identicalLists(x.elems, y.elems)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalStructs(x, y *Struct) bool {
	if len(x.fields) != len(y.fields) {
		return false
	}
	for i := range x.fields {
		if x.fields[i].Name() != y.fields[i].Name() {
			return false
		}
		if !Identical(x.fields[i].Type(), y.fields[i].Type()) {
			return false
		}
	}
	return true
}

func identicalLists(x, y []Type) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Identical(x[i], y[i]) {
			return false
		}
	}
	return true
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	if (x.result == nil) != (y.result == nil) {
		return false
	}
	return x.result == nil || Identical(x.result, y.result)
}

// IsString reports whether t is the standard library String type.
func IsString(t Type) bool {
	return t != nil && Identical(t, StdType("String"))
}

// ArrayElem returns the element type of a library array type.
func ArrayElem(t Type) (Type, bool) {
	if t == nil {
		return nil, false
	}
	if a, ok := t.Underlying().(*Array); ok {
		return a.elem, true
	}
	return nil, false
}

// IsHandle reports whether t is an external-value handle type.
func IsHandle(t Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*Handle)
	return ok
}

// IsAddress reports whether t is an address type.
func IsAddress(t Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*Pointer)
	return ok
}

// IsBuiltin reports whether t is a compiler builtin type.
func IsBuiltin(t Type) bool {
	_, ok := t.(*Builtin)
	return ok
}

// IsStd reports whether t is a nominal type declared in the standard
// library, and returns its name.
func IsStd(t Type) (string, bool) {
	n, ok := t.(*Named)
	if !ok || n.Module() != StdModule {
		return "", false
	}
	return n.obj.Name(), true
}

// IntWidth returns the bit width of a builtin integer type. Word-sized
// integers report wordSize.
func IntWidth(t Type, wordSize int) (int, bool) {
	b, ok := t.(*Builtin)
	if !ok || b.info&IsInteger == 0 {
		return 0, false
	}
	if b.kind == Word {
		return wordSize, true
	}
	return b.width, true
}

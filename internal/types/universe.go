package types

import "github.com/you-not-fish/opcanon/internal/syntax"

// StdModule is the name of the standard library module.
const StdModule = "std"

// Universe is the root scope containing the builtin types, keyed by
// their qualified names ("Builtin.Int64").
var Universe *Scope

// Std is the standard library module.
var Std *Package

// Well-known storage classes backing library arrays.
var (
	ContiguousArrayStorageBase *Class
	EmptyArrayStorage          *Class
)

func init() {
	Universe = NewScope(nil, "universe")
	defBuiltinTypes()

	Std = NewPackage(StdModule)
	defStdTypes()

	ContiguousArrayStorageBase = NewClass("ContiguousArrayStorageBase", nil, nil)
	EmptyArrayStorage = NewClass("EmptyArrayStorage", nil, ContiguousArrayStorageBase)
}

// defBuiltinTypes defines Builtin.Int1 ... Builtin.BridgeObject in Universe.
func defBuiltinTypes() {
	for _, b := range Typ {
		if b == nil {
			continue
		}
		Universe.Insert(NewTypeName(syntax.NoPos, nil, b.String(), b))
	}
}

// stdTypes lists the standard scalar types and the builtin each wraps.
var stdTypes = []struct {
	name  string
	inner BuiltinKind
}{
	{"Bool", Int1},
	{"Int", Word},
	{"UInt", Word},
	{"Int8", Int8},
	{"UInt8", Int8},
	{"Int16", Int16},
	{"UInt16", Int16},
	{"Int32", Int32},
	{"UInt32", Int32},
	{"Int64", Int64},
	{"UInt64", Int64},
	{"Float", FPIEEE32},
	{"Double", FPIEEE64},
	{"Float80", FPIEEE80},
}

// defStdTypes declares the standard scalar types and String in Std.
// Each one is a single-field struct around its builtin representation.
func defStdTypes() {
	for _, st := range stdTypes {
		Std.DeclareNamed(st.name, NewStruct([]*Var{
			NewField(syntax.NoPos, "_value", Typ[st.inner]),
		}))
	}
	Std.DeclareNamed("String", NewStruct([]*Var{
		NewField(syntax.NoPos, "_core", Typ[BridgeObject]),
	}))
}

// StdType returns the standard library type with the given name, or nil.
func StdType(name string) *Named {
	if obj, ok := Std.scope.Lookup(name).(*TypeName); ok {
		n, _ := obj.Type().(*Named)
		return n
	}
	return nil
}

// Lookup resolves a builtin or standard library type name.
func Lookup(name string) Type {
	return Std.Lookup(name)
}

// ContiguousArrayStorage returns the storage class for arrays of elem.
func ContiguousArrayStorage(elem Type) *Class {
	return NewClass("ContiguousArrayStorage", elem, ContiguousArrayStorageBase)
}

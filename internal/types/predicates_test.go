package types

import (
	"testing"

	"github.com/you-not-fish/opcanon/internal/syntax"
)

func TestIdentical(t *testing.T) {
	f32 := StdType("Float")
	i64 := StdType("Int64")
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same builtin", Typ[Int64], Typ[Int64], true},
		{"diff builtin", Typ[Int64], Typ[Int32], false},
		{"same named", f32, Lookup("Float"), true},
		{"diff named", f32, i64, false},
		{"named vs builtin", f32, Typ[FPIEEE32], false},
		{"same array", NewArray(f32), NewArray(f32), true},
		{"diff array elem", NewArray(f32), NewArray(i64), false},
		{"same optional", NewOptional(f32), NewOptional(f32), true},
		{"same ptr", NewPointer(f32), NewPointer(f32), true},
		{"ptr vs optional", NewPointer(f32), NewOptional(f32), false},
		{"same handle", NewHandle(f32), NewHandle(f32), true},
		{"diff handle", NewHandle(f32), NewHandle(i64), false},
		{"same metatype", NewMetatype(f32), NewMetatype(f32), true},
		{"same storage", ContiguousArrayStorage(f32), ContiguousArrayStorage(f32), true},
		{"storage vs base", ContiguousArrayStorage(f32), ContiguousArrayStorageBase, false},
		{"same tuple", NewTuple(f32, i64), NewTuple(f32, i64), true},
		{"diff tuple len", NewTuple(f32), NewTuple(f32, i64), false},
		{"nil", nil, f32, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(tt.a, tt.b); got != tt.want {
				t.Errorf("Identical(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIdenticalStruct(t *testing.T) {
	mk := func(a, b string) *Struct {
		return NewStruct([]*Var{
			NewField(syntax.NoPos, a, Typ[Int64]),
			NewField(syntax.NoPos, b, Typ[FPIEEE32]),
		})
	}
	if !Identical(mk("x", "y"), mk("x", "y")) {
		t.Errorf("structs with same fields should be identical")
	}
	if Identical(mk("x", "y"), mk("a", "b")) {
		t.Errorf("structs with different field names should not be identical")
	}
}

func TestIdenticalFunc(t *testing.T) {
	p := func(t Type) []*Var { return []*Var{NewVar(syntax.NoPos, "", t)} }
	if !Identical(NewFunc(p(Typ[Int64]), nil), NewFunc(p(Typ[Int64]), nil)) {
		t.Errorf("same signatures should be identical")
	}
	if Identical(NewFunc(p(Typ[Int64]), nil), NewFunc(p(Typ[Int64]), Typ[Int64])) {
		t.Errorf("void vs non-void result should differ")
	}
	if Identical(NewFunc(p(Typ[Int64]), nil), NewFunc(p(Typ[Int32]), nil)) {
		t.Errorf("different param types should differ")
	}
}

func TestPredicates(t *testing.T) {
	str := StdType("String")
	if !IsString(str) {
		t.Errorf("IsString(String) = false")
	}
	if IsString(StdType("Int")) || IsString(nil) {
		t.Errorf("IsString should only accept String")
	}
	other := NewPackage("other").DeclareNamed("String", str.Underlying())
	if IsString(other) {
		t.Errorf("IsString should reject a String declared outside std")
	}

	if elem, ok := ArrayElem(NewArray(str)); !ok || elem != str {
		t.Errorf("ArrayElem(Array<String>) = %v, %v", elem, ok)
	}
	if _, ok := ArrayElem(NewOptional(str)); ok {
		t.Errorf("ArrayElem should reject non-arrays")
	}
	if _, ok := ArrayElem(nil); ok {
		t.Errorf("ArrayElem(nil) should fail")
	}

	if !IsHandle(NewHandle(StdType("Float"))) || IsHandle(StdType("Float")) {
		t.Errorf("IsHandle mismatch")
	}
	if !IsAddress(NewPointer(str)) || IsAddress(str) {
		t.Errorf("IsAddress mismatch")
	}
	if !IsBuiltin(Typ[Int8]) || IsBuiltin(StdType("Int8")) {
		t.Errorf("IsBuiltin mismatch")
	}
	if name, ok := IsStd(StdType("Double")); !ok || name != "Double" {
		t.Errorf("IsStd(Double) = %q, %v", name, ok)
	}
	if _, ok := IsStd(other); ok {
		t.Errorf("IsStd should reject non-std nominal types")
	}
}

func TestIntWidth(t *testing.T) {
	tests := []struct {
		typ   Type
		word  int
		width int
		ok    bool
	}{
		{Typ[Int1], 64, 1, true},
		{Typ[Int128], 64, 128, true},
		{Typ[Word], 64, 64, true},
		{Typ[Word], 32, 32, true},
		{Typ[FPIEEE32], 64, 0, false},
		{StdType("Int"), 64, 0, false},
	}
	for _, tt := range tests {
		w, ok := IntWidth(tt.typ, tt.word)
		if w != tt.width || ok != tt.ok {
			t.Errorf("IntWidth(%v, %d) = %d, %v; want %d, %v", tt.typ, tt.word, w, ok, tt.width, tt.ok)
		}
	}
}

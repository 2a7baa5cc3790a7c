package types

import (
	"testing"

	"github.com/you-not-fish/opcanon/internal/syntax"
)

func TestBuiltinTypes(t *testing.T) {
	tests := []struct {
		kind  BuiltinKind
		name  string
		info  BuiltinInfo
		width int
	}{
		{Int1, "Builtin.Int1", IsInteger, 1},
		{Int8, "Builtin.Int8", IsInteger, 8},
		{Int64, "Builtin.Int64", IsInteger, 64},
		{Int128, "Builtin.Int128", IsInteger, 128},
		{Word, "Builtin.Word", IsInteger, 0},
		{FPIEEE16, "Builtin.FPIEEE16", IsFloat, 16},
		{FPIEEE80, "Builtin.FPIEEE80", IsFloat, 80},
		{RawPointer, "Builtin.RawPointer", IsPointer, 0},
		{BridgeObject, "Builtin.BridgeObject", IsPointer, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := Typ[tt.kind]
			if typ == nil {
				t.Fatalf("Typ[%d] is nil", tt.kind)
			}
			if typ.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", typ.Kind(), tt.kind)
			}
			if typ.Info() != tt.info {
				t.Errorf("Info() = %v, want %v", typ.Info(), tt.info)
			}
			if typ.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", typ.Width(), tt.width)
			}
			if typ.String() != tt.name {
				t.Errorf("String() = %q, want %q", typ.String(), tt.name)
			}
			if typ.Underlying() != typ {
				t.Errorf("Underlying() != self")
			}
			if Lookup(tt.name) != typ {
				t.Errorf("Lookup(%q) did not return the builtin", tt.name)
			}
		})
	}
}

func TestStdTypes(t *testing.T) {
	for _, name := range []string{"Bool", "Int", "UInt", "Int8", "UInt64", "Float", "Double", "String"} {
		n := StdType(name)
		if n == nil {
			t.Fatalf("StdType(%q) = nil", name)
		}
		if n.Module() != StdModule {
			t.Errorf("%s.Module() = %q, want %q", name, n.Module(), StdModule)
		}
		if n.String() != name {
			t.Errorf("String() = %q, want %q", n.String(), name)
		}
		st, ok := n.Underlying().(*Struct)
		if !ok || st.NumFields() != 1 {
			t.Errorf("%s underlying = %v, want single-field struct", name, n.Underlying())
		}
		if Lookup(name) != n {
			t.Errorf("Lookup(%q) did not return the std type", name)
		}
	}
	if StdType("NoSuchType") != nil {
		t.Errorf("StdType(NoSuchType) should be nil")
	}
}

func TestCompositeStrings(t *testing.T) {
	f32 := StdType("Float")
	tests := []struct {
		typ  Type
		want string
	}{
		{NewArray(f32), "Array<Float>"},
		{NewOptional(StdType("String")), "Optional<String>"},
		{NewPointer(Typ[Int64]), "*Builtin.Int64"},
		{NewHandle(f32), "TensorHandle<Float>"},
		{NewMetatype(f32), "Float.Type"},
		{ContiguousArrayStorage(f32), "ContiguousArrayStorage<Float>"},
		{EmptyArrayStorage, "EmptyArrayStorage"},
		{NewTuple(NewHandle(f32), Typ[Int1]), "(TensorHandle<Float>, Builtin.Int1)"},
		{NewFunc([]*Var{NewVar(syntax.NoPos, "x", f32)}, f32), "func(x Float) Float"},
		{NewFunc(nil, nil), "func()"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStorageClassHierarchy(t *testing.T) {
	storage := ContiguousArrayStorage(Typ[Int64])
	if storage.Super() != ContiguousArrayStorageBase {
		t.Errorf("storage super = %v, want ContiguousArrayStorageBase", storage.Super())
	}
	if EmptyArrayStorage.Super() != ContiguousArrayStorageBase {
		t.Errorf("empty storage super = %v", EmptyArrayStorage.Super())
	}
	if storage.Elem() != Typ[Int64] {
		t.Errorf("storage elem = %v", storage.Elem())
	}
}

func TestPackageDeclareNamed(t *testing.T) {
	pkg := NewPackage("mylib")
	st := NewStruct([]*Var{NewField(syntax.NoPos, "v", Typ[Int64])})

	n := pkg.DeclareNamed("Meters", st)
	if n.Module() != "mylib" {
		t.Errorf("Module() = %q, want mylib", n.Module())
	}
	if n.String() != "mylib.Meters" {
		t.Errorf("String() = %q, want mylib.Meters", n.String())
	}
	if again := pkg.DeclareNamed("Meters", nil); again != n {
		t.Errorf("redeclaration returned a different type")
	}
	if pkg.Lookup("Meters") != n {
		t.Errorf("Lookup(Meters) did not find the declaration")
	}
	if pkg.Lookup("Int") != StdType("Int") {
		t.Errorf("module scope should see std types")
	}
	if pkg.Lookup("Builtin.Word") != Typ[Word] {
		t.Errorf("module scope should see builtin types")
	}
}

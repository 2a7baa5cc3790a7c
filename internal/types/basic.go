package types

import "fmt"

// BuiltinKind describes the kind of a compiler builtin type.
type BuiltinKind int

const (
	Invalid BuiltinKind = iota // invalid type

	// Fixed-width integers
	Int1
	Int8
	Int16
	Int32
	Int64
	Int128

	// Target word-sized integer
	Word

	// IEEE floating point
	FPIEEE16
	FPIEEE32
	FPIEEE64
	FPIEEE80
	FPIEEE128

	// Opaque pointers
	RawPointer
	BridgeObject
)

// BuiltinInfo describes properties of a builtin type.
type BuiltinInfo int

const (
	IsInteger BuiltinInfo = 1 << iota
	IsFloat
	IsPointer
	IsNumeric = IsInteger | IsFloat
)

// Builtin represents a compiler builtin type such as Builtin.Int64.
type Builtin struct {
	typ
	kind  BuiltinKind
	info  BuiltinInfo
	width int // bit width; 0 for Word and pointers
	name  string
}

// Kind returns the kind of the builtin type.
func (b *Builtin) Kind() BuiltinKind {
	return b.kind
}

// Info returns information about the builtin type.
func (b *Builtin) Info() BuiltinInfo {
	return b.info
}

// Width returns the bit width. Word-sized and pointer types report 0;
// their width depends on the target.
func (b *Builtin) Width() int {
	return b.width
}

// Name returns the name of the builtin type without the "Builtin." prefix.
func (b *Builtin) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Builtin) Underlying() Type {
	return b
}

// String implements Type.
func (b *Builtin) String() string {
	return "Builtin." + b.name
}

func newInt(k BuiltinKind, width int) *Builtin {
	return &Builtin{kind: k, info: IsInteger, width: width, name: fmt.Sprintf("Int%d", width)}
}

func newFloat(k BuiltinKind, width int) *Builtin {
	return &Builtin{kind: k, info: IsFloat, width: width, name: fmt.Sprintf("FPIEEE%d", width)}
}

// Typ holds the builtin types, indexed by BuiltinKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Builtin{
	Invalid:      nil,
	Int1:         newInt(Int1, 1),
	Int8:         newInt(Int8, 8),
	Int16:        newInt(Int16, 16),
	Int32:        newInt(Int32, 32),
	Int64:        newInt(Int64, 64),
	Int128:       newInt(Int128, 128),
	Word:         {kind: Word, info: IsInteger, name: "Word"},
	FPIEEE16:     newFloat(FPIEEE16, 16),
	FPIEEE32:     newFloat(FPIEEE32, 32),
	FPIEEE64:     newFloat(FPIEEE64, 64),
	FPIEEE80:     newFloat(FPIEEE80, 80),
	FPIEEE128:    newFloat(FPIEEE128, 128),
	RawPointer:   {kind: RawPointer, info: IsPointer, name: "RawPointer"},
	BridgeObject: {kind: BridgeObject, info: IsPointer, name: "BridgeObject"},
}

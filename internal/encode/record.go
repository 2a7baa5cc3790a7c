// Package encode flattens canonical op descriptors into records the
// graph builder consumes, and writes them as text or msgpack.
package encode

import (
	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/opinfo"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

// OperandKind classifies a record operand.
type OperandKind uint8

const (
	KindValue  OperandKind = iota // runtime value, identified by Ref
	KindInt                       // integer literal
	KindFloat                     // floating point literal
	KindString                    // string literal
	KindType                      // element type marker
)

var kindNames = [...]string{
	KindValue:  "value",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindType:   "type",
}

func (k OperandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Operand is one flattened op operand.
type Operand struct {
	Name  string      `msgpack:"name"`
	Role  string      `msgpack:"role"`
	Kind  OperandKind `msgpack:"kind"`
	Type  string      `msgpack:"type"`
	Ref   int32       `msgpack:"ref,omitempty"`
	Int   int64       `msgpack:"int,omitempty"`
	Float float64     `msgpack:"float,omitempty"`
	Str   string      `msgpack:"str,omitempty"`
	DType opabi.DType `msgpack:"dtype,omitempty"`
}

// Record describes one canonical op call.
type Record struct {
	Func     string    `msgpack:"func"`
	Value    int32     `msgpack:"value"`
	Op       string    `msgpack:"op"`
	Name     string    `msgpack:"name"`
	Type     string    `msgpack:"type"`
	Pos      string    `msgpack:"pos,omitempty"`
	Operands []Operand `msgpack:"operands"`
}

// FromDescriptor builds the record of a canonical descriptor. Operands
// that are not literals are recorded by value ID.
func FromDescriptor(d *opinfo.Descriptor, wordSize int) Record {
	v := d.Value
	r := Record{
		Value:    int32(v.ID),
		Op:       d.Op,
		Name:     d.Name(),
		Type:     typeString(v.Type),
		Operands: make([]Operand, len(d.Entries)),
	}
	if v.Block != nil {
		r.Func = v.Block.Func.Name
	}
	if v.Pos.IsValid() {
		r.Pos = v.Pos.String()
	}
	for i, e := range d.Entries {
		r.Operands[i] = operand(e.Name, e.Role.String(), d.Operand(i), wordSize)
	}
	return r
}

func operand(name, role string, v *ssa.Value, wordSize int) Operand {
	o := Operand{Name: name, Role: role, Type: typeString(v.Type)}
	switch v.Op {
	case ssa.OpConstInt:
		o.Kind = KindInt
		o.Int = v.AuxInt
	case ssa.OpConstFloat:
		o.Kind = KindFloat
		o.Float = v.AuxFloat
	case ssa.OpConstString:
		o.Kind = KindString
		o.Str, _ = v.Aux.(string)
	case ssa.OpMetatype:
		o.Kind = KindType
		if t, ok := v.Aux.(types.Type); ok {
			o.Type = typeString(t)
			o.DType = opabi.TypeCode(t, wordSize)
		}
	default:
		o.Kind = KindValue
		o.Ref = int32(v.ID)
	}
	return o
}

func typeString(t types.Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

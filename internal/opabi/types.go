// Package opabi defines the constants shared between the op extraction
// pass and the graph builder that consumes its output.
package opabi

import "github.com/you-not-fish/opcanon/internal/types"

// DType is an external element type code. Zero means the type has no
// external representation.
type DType int

// External data type codes, numbered as the graph runtime numbers them.
const (
	DTInvalid DType = 0
	DTFloat   DType = 1
	DTDouble  DType = 2
	DTInt32   DType = 3
	DTUInt8   DType = 4
	DTInt16   DType = 5
	DTInt8    DType = 6
	DTInt64   DType = 9
	DTBool    DType = 10
	DTUInt16  DType = 17
	DTHalf    DType = 19
	DTUInt32  DType = 22
	DTUInt64  DType = 23
)

var dtypeNames = map[DType]string{
	DTInvalid: "invalid",
	DTFloat:   "float",
	DTDouble:  "double",
	DTInt32:   "int32",
	DTUInt8:   "uint8",
	DTInt16:   "int16",
	DTInt8:    "int8",
	DTInt64:   "int64",
	DTBool:    "bool",
	DTUInt16:  "uint16",
	DTHalf:    "half",
	DTUInt32:  "uint32",
	DTUInt64:  "uint64",
}

// String returns the lower-case name of the data type.
func (d DType) String() string {
	if s, ok := dtypeNames[d]; ok {
		return s
	}
	return "unknown"
}

// Target word sizes in bits.
const (
	Word32 = 32
	Word64 = 64
)

// TypeCode maps a static element type to its external type code.
// Standard library scalars map by name; builtin integers carry no sign,
// so they map to the signed code of their width.
func TypeCode(t types.Type, wordSize int) DType {
	if name, ok := types.IsStd(t); ok {
		return stdCode(name, wordSize)
	}
	b, ok := t.(*types.Builtin)
	if !ok {
		return DTInvalid
	}
	if b.Info()&types.IsFloat != 0 {
		switch b.Kind() {
		case types.FPIEEE16:
			return DTHalf
		case types.FPIEEE32:
			return DTFloat
		case types.FPIEEE64:
			return DTDouble
		}
		return DTInvalid
	}
	width, ok := types.IntWidth(b, wordSize)
	if !ok {
		return DTInvalid
	}
	switch width {
	case 1:
		return DTBool
	case 8:
		return DTInt8
	case 16:
		return DTInt16
	case 32:
		return DTInt32
	case 64:
		return DTInt64
	}
	return DTInvalid
}

func stdCode(name string, wordSize int) DType {
	switch name {
	case "Bool":
		return DTBool
	case "Int8":
		return DTInt8
	case "UInt8":
		return DTUInt8
	case "Int16":
		return DTInt16
	case "UInt16":
		return DTUInt16
	case "Int32":
		return DTInt32
	case "UInt32":
		return DTUInt32
	case "Int64":
		return DTInt64
	case "UInt64":
		return DTUInt64
	case "Float":
		return DTFloat
	case "Double":
		return DTDouble
	case "Int":
		if wordSize == Word32 {
			return DTInt32
		}
		return DTInt64
	case "UInt":
		if wordSize == Word32 {
			return DTUInt32
		}
		return DTUInt64
	}
	return DTInvalid
}

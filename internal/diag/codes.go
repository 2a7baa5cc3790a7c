package diag

import "fmt"

// Code identifies the kind of a diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Descriptor faults
	DscInfo          Code = 1000
	DscMalformedName Code = 1001
	DscOperandCount  Code = 1002
	DscInputType     Code = 1003

	// Attribute faults
	AtrInfo          Code = 2000
	AtrNotConstant   Code = 2001
	AtrWrongKind     Code = 2002
	AtrMissingShape  Code = 2003
	AtrBadShape      Code = 2004
	AtrShapeMismatch Code = 2005
)

var codeDescription = map[Code]string{
	UnknownCode:      "unknown error",
	DscInfo:          "descriptor information",
	DscMalformedName: "malformed op name encoding",
	DscOperandCount:  "operand count does not match the name encoding",
	DscInputType:     "input operand has no external type",
	AtrInfo:          "attribute information",
	AtrNotConstant:   "attribute is not a compile-time constant",
	AtrWrongKind:     "attribute constant has the wrong kind",
	AtrMissingShape:  "tensor array attribute without a shape",
	AtrBadShape:      "shape attribute is not a constant integer array",
	AtrShapeMismatch: "tensor element count does not match its shape",
}

// ID returns the stable identifier printed with the diagnostic.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DSC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ATR%04d", ic)
	}
	return "E0000"
}

// Title returns a one-line description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

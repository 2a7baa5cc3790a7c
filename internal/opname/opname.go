// Package opname parses and builds the name encoding that tags an IR
// instruction as a graph op:
//
//	op_<OpName>[,<input>]*[,<attr>[$<suffix>]]*
//
// Segments before the first one containing '$' are inputs; an empty
// segment there continues the preceding input. After that, every
// segment names an attribute whose role is given by its suffix.
package opname

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/opcanon/internal/opabi"
)

// Role is the part an operand plays in an op call.
type Role int

const (
	Input        Role = iota // runtime value
	InputElement             // element of an expanded input list
	Normal                   // opaque constant attribute
	DTypeMarker              // integer element type code
	TensorValue              // scalar, or array with a following shape
	ShapeSpec                // array of dimension sizes
	ArrayMarker              // type tag heading an expanded array
	ArrayElement             // one element of an expanded array
)

var roleNames = [...]string{
	Input:        "Input",
	InputElement: "InputElement",
	Normal:       "Normal",
	DTypeMarker:  "DTypeMarker",
	TensorValue:  "TensorValue",
	ShapeSpec:    "ShapeSpec",
	ArrayMarker:  "ArrayMarker",
	ArrayElement: "ArrayElement",
}

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// IsInput reports whether r is Input or InputElement.
func (r Role) IsInput() bool {
	return r == Input || r == InputElement
}

// startsRun reports whether ArrayElement entries may follow r.
func (r Role) startsRun() bool {
	return r == ArrayMarker || r == TensorValue || r == ShapeSpec
}

var suffixes = map[Role]string{
	DTypeMarker:  "dtype",
	TensorValue:  "tensor",
	ShapeSpec:    "shape",
	ArrayMarker:  "array",
	ArrayElement: "elt",
}

// Suffix returns the modifier written after '$' for r. Input roles and
// Normal have none.
func Suffix(r Role) string {
	return suffixes[r]
}

func roleForSuffix(s string) (Role, bool) {
	if s == "" {
		return Normal, true
	}
	for r, suf := range suffixes {
		if suf == s {
			return r, true
		}
	}
	return 0, false
}

// Entry is one operand's attribute name and role.
type Entry struct {
	Name string
	Role Role
}

func (e Entry) String() string {
	return fmt.Sprintf("(%s,%s)", e.Name, e.Role)
}

// Error reports a malformed name encoding.
type Error struct {
	Segment string // offending segment, verbatim
	Reason  string
}

func (e *Error) Error() string {
	return e.Reason
}

func errorf(seg, format string, args ...interface{}) *Error {
	return &Error{Segment: seg, Reason: fmt.Sprintf(format, args...)}
}

// HasPrefix reports whether name carries the op tag.
func HasPrefix(name string) bool {
	return strings.HasPrefix(name, opabi.OpPrefix)
}

// Parse splits an encoded name into the op name and one entry per operand.
func Parse(name string) (string, []Entry, error) {
	if !HasPrefix(name) {
		return "", nil, errorf(name, "name '%s' does not start with '%s'", name, opabi.OpPrefix)
	}
	segs := strings.Split(strings.TrimPrefix(name, opabi.OpPrefix), ",")
	op := segs[0]
	if op == "" || strings.Contains(op, "$") {
		return "", nil, errorf(segs[0], "invalid op name '%s'", segs[0])
	}

	var entries []Entry
	inputs := true
	lastInput := ""
	run, inRun := "", false

	for _, seg := range segs[1:] {
		if inputs && !strings.Contains(seg, "$") {
			if seg != "" {
				lastInput = seg
				entries = append(entries, Entry{Name: seg, Role: Input})
				continue
			}
			if lastInput == "" {
				return "", nil, errorf(seg, "input element does not follow an input")
			}
			entries = append(entries, Entry{Name: lastInput, Role: InputElement})
			continue
		}
		inputs = false

		attr, suffix, _ := strings.Cut(seg, "$")
		role, ok := roleForSuffix(suffix)
		if !ok {
			return "", nil, errorf(seg, "invalid attribute modifier '%s' in segment '%s'", suffix, seg)
		}

		if role == ArrayElement {
			if !inRun {
				return "", nil, errorf(seg, "array element '%s' does not follow an array attribute", seg)
			}
			if attr != "" && attr != run {
				return "", nil, errorf(seg, "array element '%s' does not match attribute '%s'", seg, run)
			}
			entries = append(entries, Entry{Name: run, Role: ArrayElement})
			continue
		}

		if attr == "" {
			return "", nil, errorf(seg, "missing attribute name in segment '%s'", seg)
		}
		entries = append(entries, Entry{Name: attr, Role: role})
		run, inRun = attr, role.startsRun()
	}
	return op, entries, nil
}

// Encode builds the name encoding for op and entries. Entries must be
// representable: inputs first, element entries named after the entry
// they follow.
func Encode(op string, entries []Entry) string {
	var b strings.Builder
	b.WriteString(opabi.OpPrefix)
	b.WriteString(op)
	sawAttr := false
	for _, e := range entries {
		b.WriteByte(',')
		switch e.Role {
		case Input:
			b.WriteString(e.Name)
			continue
		case InputElement:
			continue
		case ArrayElement:
			b.WriteString("$elt")
		case Normal:
			b.WriteString(e.Name)
			// A bare first attribute would read back as an input.
			if !sawAttr {
				b.WriteByte('$')
			}
		default:
			b.WriteString(e.Name)
			b.WriteByte('$')
			b.WriteString(Suffix(e.Role))
		}
		sawAttr = true
	}
	return b.String()
}

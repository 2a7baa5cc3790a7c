package opinfo

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/opname"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

// Descriptor is the decoded view of one op call. It is only valid until
// the call is rewritten.
type Descriptor struct {
	// Op is the external op name.
	Op string

	// Entries has one entry per operand of Value.
	Entries []opname.Entry

	// Value is the GraphOp or Apply the descriptor was decoded from.
	Value *ssa.Value
}

// Operand returns the operand for entry i.
func (d *Descriptor) Operand(i int) *ssa.Value {
	return d.Value.Args[i]
}

// NumInputs returns the number of leading input operands.
func (d *Descriptor) NumInputs() int {
	n := 0
	for _, e := range d.Entries {
		if !e.Role.IsInput() {
			break
		}
		n++
	}
	return n
}

// IsCall reports whether the op is written as a function call, the one
// form allowed to leave a tensor shape to be filled in later.
func (d *Descriptor) IsCall() bool {
	return d.Value.Op == ssa.OpApply
}

// Name returns the name encoding of the descriptor.
func (d *Descriptor) Name() string {
	return opname.Encode(d.Op, d.Entries)
}

func (d *Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Value, d.Op)
	for i, e := range d.Entries {
		fmt.Fprintf(&b, " %s:%s=%s", e.Name, e.Role, d.Operand(i))
	}
	return b.String()
}

// callValue returns the call v stands for: v itself if it is a GraphOp
// or Apply, or the call a TupleExtract projects from.
func callValue(v *ssa.Value) *ssa.Value {
	if v.Op == ssa.OpTupleExtract && len(v.Args) == 1 {
		v = v.Args[0]
	}
	if v.Op != ssa.OpGraphOp && v.Op != ssa.OpApply {
		return nil
	}
	return v
}

// IsCandidate reports whether v is, or projects from, a tagged op call.
func IsCandidate(v *ssa.Value) bool {
	call := callValue(v)
	return call != nil && opname.HasPrefix(call.Name())
}

// fault is a malformed descriptor: the producer broke the contract.
type fault struct {
	code diag.Code
	msg  string
}

// Decode returns the descriptor of v, or nil if v is not a tagged op
// call. A malformed call is reported as a fatal diagnostic and also
// yields nil.
func (a *Analyzer) Decode(v *ssa.Value) *Descriptor {
	d, f := a.decode(v)
	if f != nil {
		a.report(f.code, diag.SevFatal, v.Pos, f.msg)
		return nil
	}
	return d
}

func (a *Analyzer) decode(v *ssa.Value) (*Descriptor, *fault) {
	call := callValue(v)
	if call == nil || !opname.HasPrefix(call.Name()) {
		return nil, nil
	}

	op, entries, err := opname.Parse(call.Name())
	if err != nil {
		return nil, &fault{diag.DscMalformedName, err.Error()}
	}
	if len(entries) != len(call.Args) {
		return nil, &fault{diag.DscOperandCount, fmt.Sprintf(
			"expected %d operands for '%s' but found %d", len(entries), op, len(call.Args))}
	}

	d := &Descriptor{Op: op, Entries: entries, Value: call}
	for i, e := range entries {
		if !e.Role.IsInput() {
			continue
		}
		arg := call.Args[i]
		if types.IsHandle(arg.Type) {
			continue
		}
		s := ScalarOperand(arg)
		if s == nil {
			return nil, &fault{diag.DscInputType, fmt.Sprintf(
				"operand has unrecognized type '%s'", typeString(arg.Type))}
		}
		if a.typeCode(s.Type) == 0 {
			return nil, &fault{diag.DscInputType, fmt.Sprintf(
				"operand has unrecognized type '%s'", typeString(s.Type))}
		}
	}
	return d, nil
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

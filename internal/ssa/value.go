package ssa

import (
	"fmt"

	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

// ID is a unique identifier for Values and Blocks within a Func.
type ID int32

// Value represents a single SSA computation.
// Each Value has exactly one definition and may be used by other Values.
type Value struct {
	// ID is a unique identifier within the containing Func.
	ID ID

	// Op is the operation this value computes.
	Op Op

	// Type is the result type of this value.
	// Nil for void operations (Store, Release) and void calls.
	Type types.Type

	// Args are the input values to this operation.
	Args []*Value

	// Block is the basic block that contains this value.
	// Nil once the value has been removed.
	Block *Block

	// AuxInt holds an auxiliary integer (e.g., literal value, field index).
	AuxInt int64

	// AuxFloat holds an auxiliary float (for OpConstFloat).
	AuxFloat float64

	// Aux holds arbitrary auxiliary data (e.g., string literal, op name, *Global).
	Aux interface{}

	// Uses tracks the number of references to this value, counting
	// both value arguments and block controls.
	Uses int32

	// Pos is the source position associated with this value.
	Pos syntax.Pos

	// Scope is the inlining history of this value, innermost first.
	// Nil for code that was written directly in the containing function.
	Scope *Scope
}

// Scope records one level of inlining: the value was written in Func
// and reached its current function through a call at CallPos.
type Scope struct {
	Func    string     // function the code was written in
	CallPos syntax.Pos // location of the inlined call
	Parent  *Scope     // enclosing inlining level, or nil
}

// String returns a short string representation of the value (e.g., "v5").
func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.ID)
}

// LongString returns a detailed string representation including op, type, and args.
func (v *Value) LongString() string {
	return formatValue(v)
}

// Func returns the function containing v, or nil if v has been removed.
func (v *Value) Func() *Func {
	if v.Block == nil {
		return nil
	}
	return v.Block.Func
}

// AddArg appends a value to the argument list and increments the arg's use count.
func (v *Value) AddArg(arg *Value) {
	v.Args = append(v.Args, arg)
	arg.Uses++
}

// SetArgs replaces the argument list, adjusting use counts.
func (v *Value) SetArgs(args []*Value) {
	for _, old := range v.Args {
		old.Uses--
	}
	v.Args = args
	for _, arg := range args {
		arg.Uses++
	}
}

// ReplaceArg replaces the argument at index i, adjusting use counts.
func (v *Value) ReplaceArg(i int, new *Value) {
	old := v.Args[i]
	old.Uses--
	v.Args[i] = new
	new.Uses++
}

// IsPure returns true if this value's op has no side effects.
func (v *Value) IsPure() bool {
	return v.Op.IsPure()
}

// Name returns the op name encoding of a GraphOp or the callee of an
// Apply. It returns "" for other values.
func (v *Value) Name() string {
	if v.Op != OpGraphOp && v.Op != OpApply {
		return ""
	}
	s, _ := v.Aux.(string)
	return s
}

// Global returns the global referenced by a GlobalValue or GlobalAddr.
func (v *Value) Global() *Global {
	g, _ := v.Aux.(*Global)
	return g
}

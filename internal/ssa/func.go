package ssa

import (
	"fmt"
	"slices"

	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

// Func represents an SSA function.
// It contains a control flow graph of Blocks, each containing Values.
type Func struct {
	// Name is the function name.
	Name string

	// Sig is the function signature, or nil if unknown.
	Sig *types.Func

	// Blocks is the list of basic blocks. Blocks[0] is always the entry block.
	Blocks []*Block

	// Entry is the entry block (same as Blocks[0]).
	Entry *Block

	// Module is the containing module, or nil for a standalone function.
	Module *Module

	// nextValueID is the next available value ID.
	nextValueID ID

	// nextBlockID is the next available block ID.
	nextBlockID ID
}

// NewFunc creates a new SSA function with the given name and signature.
// An entry block is automatically created.
func NewFunc(name string, sig *types.Func) *Func {
	f := &Func{
		Name: name,
		Sig:  sig,
	}
	entry := f.NewBlock(BlockPlain)
	f.Entry = entry
	return f
}

// NewBlock creates a new basic block with the given kind and appends it to the function.
func (f *Func) NewBlock(kind BlockKind) *Block {
	b := &Block{
		ID:   f.nextBlockID,
		Kind: kind,
		Func: f,
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

func (f *Func) newValue(b *Block, op Op, typ types.Type, pos syntax.Pos, args []*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Type:  typ,
		Block: b,
		Pos:   pos,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	return v
}

// NewValue creates a new Value at the end of the given block.
func (f *Func) NewValue(b *Block, op Op, typ types.Type, args ...*Value) *Value {
	v := f.newValue(b, op, typ, syntax.NoPos, args)
	b.Values = append(b.Values, v)
	return v
}

// NewValuePos creates a new Value with source position in the given block.
func (f *Func) NewValuePos(b *Block, op Op, typ types.Type, pos syntax.Pos, args ...*Value) *Value {
	v := f.NewValue(b, op, typ, args...)
	v.Pos = pos
	return v
}

// NewValueBefore creates a new Value immediately before at, in at's
// block. The new value inherits at's position and inlining scope.
func (f *Func) NewValueBefore(at *Value, op Op, typ types.Type, args ...*Value) *Value {
	b := at.Block
	if b == nil || b.Func != f {
		panic(fmt.Sprintf("ssa: NewValueBefore %s: value is not in func %s", at, f.Name))
	}
	v := f.newValue(b, op, typ, at.Pos, args)
	v.Scope = at.Scope
	i := slices.Index(b.Values, at)
	b.Values = slices.Insert(b.Values, i, v)
	return v
}

// Use is one operand slot that refers to a value.
type Use struct {
	User  *Value // using value; nil for a block control
	Block *Block // block containing the use
	Index int    // argument or control index
}

// Uses returns every operand slot in f that refers to v, in block order.
func (f *Func) Uses(v *Value) []Use {
	var uses []Use
	for _, b := range f.Blocks {
		for _, u := range b.Values {
			for i, a := range u.Args {
				if a == v {
					uses = append(uses, Use{User: u, Block: b, Index: i})
				}
			}
		}
		for i, c := range b.Controls {
			if c == v {
				uses = append(uses, Use{Block: b, Index: i})
			}
		}
	}
	return uses
}

// Users returns the distinct values that use v as an argument.
func (f *Func) Users(v *Value) []*Value {
	var users []*Value
	for _, u := range f.Uses(v) {
		if u.User != nil && !slices.Contains(users, u.User) {
			users = append(users, u.User)
		}
	}
	return users
}

// ReplaceUses redirects every use of old in f to new.
func (f *Func) ReplaceUses(old, new *Value) {
	if old == new {
		return
	}
	for _, u := range f.Uses(old) {
		if u.User != nil {
			u.User.ReplaceArg(u.Index, new)
			continue
		}
		u.Block.Controls[u.Index] = new
		old.Uses--
		new.Uses++
	}
}

// RemoveValue detaches v from its block and releases its arguments.
// v must have no remaining uses.
func (f *Func) RemoveValue(v *Value) {
	if v.Uses != 0 {
		panic(fmt.Sprintf("ssa: RemoveValue %s: value still has %d uses", v, v.Uses))
	}
	b := v.Block
	if b == nil || b.Func != f {
		panic(fmt.Sprintf("ssa: RemoveValue %s: value is not in func %s", v, f.Name))
	}
	b.Values = slices.DeleteFunc(b.Values, func(x *Value) bool { return x == v })
	v.SetArgs(nil)
	v.Block = nil
}

// NumBlocks returns the number of blocks in the function.
func (f *Func) NumBlocks() int { return len(f.Blocks) }

// NumValues returns the total number of values across all blocks.
func (f *Func) NumValues() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Values)
	}
	return n
}

// Values returns a snapshot of every value in f in block order.
func (f *Func) Values() []*Value {
	vs := make([]*Value, 0, f.NumValues())
	for _, b := range f.Blocks {
		vs = append(vs, b.Values...)
	}
	return vs
}

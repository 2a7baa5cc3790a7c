package irfile

import (
	"fmt"

	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/syntax"
	"github.com/you-not-fish/opcanon/internal/types"
)

type builder struct {
	types *typeParser
	m     *ssa.Module
}

// Build constructs the module described by file.
func Build(file *File) (*ssa.Module, error) {
	if file.Module == "" {
		return nil, fmt.Errorf("missing module name")
	}
	b := &builder{types: newTypeParser(), m: ssa.NewModule(file.Module)}

	for i := range file.Globals {
		gd := &file.Globals[i]
		if gd.Name == "" {
			return nil, fmt.Errorf("global %d: missing name", i)
		}
		if b.m.Global(gd.Name) != nil {
			return nil, fmt.Errorf("global %s: declared twice", gd.Name)
		}
		t, err := b.types.parse(gd.Type)
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", gd.Name, err)
		}
		b.m.NewGlobal(gd.Name, t)
	}
	for i := range file.Globals {
		if err := b.global(&file.Globals[i]); err != nil {
			return nil, fmt.Errorf("global %s: %w", file.Globals[i].Name, err)
		}
	}

	for i := range file.Funcs {
		fd := &file.Funcs[i]
		if fd.Name == "" {
			return nil, fmt.Errorf("func %d: missing name", i)
		}
		if b.m.Func(fd.Name) != nil {
			return nil, fmt.Errorf("func %s: declared twice", fd.Name)
		}
		f := ssa.NewFunc(fd.Name, nil)
		b.m.AddFunc(f)
		if err := b.fn(f, fd); err != nil {
			return nil, fmt.Errorf("func %s: %w", fd.Name, err)
		}
	}

	// Malformed IR never reaches the passes, whatever they verify.
	for i := range file.Globals {
		if len(file.Globals[i].Values) == 0 {
			continue
		}
		if err := ssa.Verify(b.m.Global(file.Globals[i].Name).InitFunc()); err != nil {
			return nil, fmt.Errorf("global %s: %w", file.Globals[i].Name, err)
		}
	}
	for _, f := range b.m.Funcs {
		if err := ssa.Verify(f); err != nil {
			return nil, err
		}
	}
	return b.m, nil
}

func (b *builder) global(gd *GlobalDecl) error {
	if len(gd.Values) == 0 {
		if gd.Init != "" {
			return fmt.Errorf("init %s names no value", gd.Init)
		}
		return nil
	}
	g := b.m.Global(gd.Name)
	fb := b.newFuncBuilder(g.InitFunc())
	for _, vd := range gd.Values {
		if err := fb.value(fb.f.Entry, vd); err != nil {
			return err
		}
	}
	if err := fb.resolve(); err != nil {
		return err
	}
	if gd.Init == "" {
		return nil
	}
	v, ok := fb.values[gd.Init]
	if !ok {
		return fmt.Errorf("init: unknown value %s", gd.Init)
	}
	g.SetInit(v)
	return nil
}

func (b *builder) fn(f *ssa.Func, fd *FuncDecl) error {
	if len(fd.Blocks) == 0 {
		return fmt.Errorf("no blocks")
	}
	fb := b.newFuncBuilder(f)

	blocks := make([]*ssa.Block, len(fd.Blocks))
	byName := make(map[string]*ssa.Block)
	for i := range fd.Blocks {
		bd := &fd.Blocks[i]
		kind, err := blockKind(bd)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blk := f.Entry
		if i == 0 {
			blk.Kind = kind
		} else {
			blk = f.NewBlock(kind)
		}
		blocks[i] = blk
		if bd.Name != "" {
			if byName[bd.Name] != nil {
				return fmt.Errorf("block %s declared twice", bd.Name)
			}
			byName[bd.Name] = blk
		}
	}

	for i := range fd.Blocks {
		bd := &fd.Blocks[i]
		for _, succ := range bd.Succs {
			s, ok := byName[succ]
			if !ok {
				return fmt.Errorf("block %d: unknown successor %s", i, succ)
			}
			blocks[i].AddSucc(s)
		}
		for _, vd := range bd.Values {
			if err := fb.value(blocks[i], vd); err != nil {
				return err
			}
		}
	}
	if err := fb.resolve(); err != nil {
		return err
	}

	for i := range fd.Blocks {
		for _, name := range fd.Blocks[i].Control {
			v, ok := fb.values[name]
			if !ok {
				return fmt.Errorf("block %d: unknown control value %s", i, name)
			}
			blocks[i].AddControl(v)
		}
	}
	return nil
}

// blockKind returns the declared kind, or infers it from the number of
// successors.
func blockKind(bd *BlockDecl) (ssa.BlockKind, error) {
	if bd.Kind != "" {
		k, ok := ssa.LookupBlockKind(bd.Kind)
		if !ok {
			return ssa.BlockInvalid, fmt.Errorf("unknown block kind %q", bd.Kind)
		}
		return k, nil
	}
	switch len(bd.Succs) {
	case 0:
		return ssa.BlockReturn, nil
	case 1:
		return ssa.BlockPlain, nil
	default:
		return ssa.BlockIf, nil
	}
}

type pendingArgs struct {
	v    *ssa.Value
	name string
	args []string
}

type funcBuilder struct {
	*builder
	f       *ssa.Func
	values  map[string]*ssa.Value
	pending []pendingArgs
}

func (b *builder) newFuncBuilder(f *ssa.Func) *funcBuilder {
	return &funcBuilder{builder: b, f: f, values: make(map[string]*ssa.Value)}
}

// value creates the value vd describes in blk. Arguments are attached
// by resolve once every value of the function exists.
func (fb *funcBuilder) value(blk *ssa.Block, vd ValueDecl) error {
	label := vd.Name
	if label == "" {
		label = fmt.Sprintf("#%d", fb.f.NumValues())
	}
	v, err := fb.newValue(blk, vd)
	if err != nil {
		return fmt.Errorf("value %s: %w", label, err)
	}
	if vd.Name != "" {
		if _, dup := fb.values[vd.Name]; dup {
			return fmt.Errorf("value %s: declared twice", vd.Name)
		}
		fb.values[vd.Name] = v
	}
	if len(vd.Args) > 0 {
		fb.pending = append(fb.pending, pendingArgs{v: v, name: label, args: vd.Args})
	}
	return nil
}

func (fb *funcBuilder) newValue(blk *ssa.Block, vd ValueDecl) (*ssa.Value, error) {
	op, ok := ssa.LookupOp(vd.Op)
	if !ok {
		return nil, fmt.Errorf("unknown op %q", vd.Op)
	}
	var typ types.Type
	if vd.Type != "" {
		t, err := fb.types.parse(vd.Type)
		if err != nil {
			return nil, err
		}
		typ = t
	}
	pos, err := syntax.ParsePos(vd.Pos)
	if err != nil {
		return nil, err
	}
	scope, err := buildScope(vd.Scope)
	if err != nil {
		return nil, err
	}

	v := fb.f.NewValuePos(blk, op, typ, pos)
	v.Scope = scope
	v.AuxInt = vd.Int
	switch op {
	case ssa.OpConstFloat:
		v.AuxFloat = vd.Float
	case ssa.OpConstString:
		v.Aux = vd.Aux
		switch vd.Encoding {
		case "", "utf8":
			v.AuxInt = int64(ssa.UTF8)
		case "utf16":
			v.AuxInt = int64(ssa.UTF16)
		default:
			return nil, fmt.Errorf("unknown string encoding %q", vd.Encoding)
		}
	case ssa.OpMetatype:
		inst, err := fb.types.parse(vd.Aux)
		if err != nil {
			return nil, err
		}
		v.Aux = inst
		if v.Type == nil {
			v.Type = types.NewMetatype(inst)
		}
	case ssa.OpGraphOp, ssa.OpApply, ssa.OpBuiltin:
		if vd.Aux == "" {
			return nil, fmt.Errorf("%s needs a name in aux", op)
		}
		v.Aux = vd.Aux
	case ssa.OpArg:
		v.Aux = vd.Aux
		if vd.Aux == "" {
			v.Aux = vd.Name
		}
	case ssa.OpGlobalValue, ssa.OpGlobalAddr:
		g := fb.m.Global(vd.Aux)
		if g == nil {
			return nil, fmt.Errorf("unknown global %q", vd.Aux)
		}
		v.Aux = g
	}
	return v, nil
}

func buildScope(decls []ScopeDecl) (*ssa.Scope, error) {
	var outer *ssa.Scope
	for i := len(decls) - 1; i >= 0; i-- {
		pos, err := syntax.ParsePos(decls[i].Call)
		if err != nil {
			return nil, fmt.Errorf("scope %d: %w", i, err)
		}
		outer = &ssa.Scope{Func: decls[i].Func, CallPos: pos, Parent: outer}
	}
	return outer, nil
}

// resolve attaches the arguments of every value created so far.
func (fb *funcBuilder) resolve() error {
	for _, p := range fb.pending {
		args := make([]*ssa.Value, len(p.args))
		for i, name := range p.args {
			arg, ok := fb.values[name]
			if !ok {
				return fmt.Errorf("value %s: unknown argument %s", p.name, name)
			}
			args[i] = arg
		}
		p.v.SetArgs(args)
	}
	fb.pending = nil
	return nil
}

package irfile

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/opcanon/internal/types"
)

// typeParser parses type expressions in the notation types print:
//
//	Builtin.Int64  Int  String  mymod.Vector
//	*T  (T1, T2)  T.Type
//	Array<T>  Optional<T>  TensorHandle<T>  ContiguousArrayStorage<T>
//	ContiguousArrayStorageBase  EmptyArrayStorage
//
// Qualified names outside std and Builtin declare an opaque nominal
// type in that module on first use.
type typeParser struct {
	src  string
	pos  int
	pkgs map[string]*types.Package
}

func newTypeParser() *typeParser {
	return &typeParser{pkgs: make(map[string]*types.Package)}
}

// parse parses a complete type expression.
func (p *typeParser) parse(src string) (types.Type, error) {
	p.src, p.pos = src, 0
	t, err := p.typ()
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", src, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q at offset %d", src, p.src[p.pos:], p.pos)
	}
	return t, nil
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// got consumes c if it is next.
func (p *typeParser) got(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) want(c byte) error {
	if !p.got(c) {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	return nil
}

func isIdentByte(c byte, first bool) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || !first && c >= '0' && c <= '9'
}

func (p *typeParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected type name at offset %d", start)
	}
	return p.src[start:p.pos], nil
}

// typ parses a type with its ".Type" suffixes.
func (p *typeParser) typ() (types.Type, error) {
	if p.got('*') {
		base, err := p.typ()
		if err != nil {
			return nil, err
		}
		return types.NewPointer(base), nil
	}
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for strings.HasPrefix(p.src[p.pos:], ".Type") {
		p.pos += len(".Type")
		t = types.NewMetatype(t)
	}
	return t, nil
}

func (p *typeParser) primary() (types.Type, error) {
	if p.got('(') {
		var elems []types.Type
		if !p.got(')') {
			for {
				t, err := p.typ()
				if err != nil {
					return nil, err
				}
				elems = append(elems, t)
				if p.got(')') {
					break
				}
				if err := p.want(','); err != nil {
					return nil, err
				}
			}
		}
		return types.NewTuple(elems...), nil
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	switch name {
	case "Array", "Optional", "TensorHandle", "ContiguousArrayStorage":
		if err := p.want('<'); err != nil {
			return nil, err
		}
		elem, err := p.typ()
		if err != nil {
			return nil, err
		}
		if err := p.want('>'); err != nil {
			return nil, err
		}
		return generic(name, elem), nil
	case "ContiguousArrayStorageBase":
		return types.ContiguousArrayStorageBase, nil
	case "EmptyArrayStorage":
		return types.EmptyArrayStorage, nil
	}

	if p.pos < len(p.src) && p.src[p.pos] == '.' && !strings.HasPrefix(p.src[p.pos:], ".Type") {
		p.pos++
		member, err := p.ident()
		if err != nil {
			return nil, err
		}
		return p.qualified(name, member)
	}
	if t := types.StdType(name); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %s", name)
}

func generic(name string, elem types.Type) types.Type {
	switch name {
	case "Array":
		return types.NewArray(elem)
	case "Optional":
		return types.NewOptional(elem)
	case "TensorHandle":
		return types.NewHandle(elem)
	default:
		return types.ContiguousArrayStorage(elem)
	}
}

func (p *typeParser) qualified(module, name string) (types.Type, error) {
	switch module {
	case "Builtin":
		if t := types.Universe.Lookup("Builtin." + name); t != nil {
			return t.Type(), nil
		}
		return nil, fmt.Errorf("unknown builtin type Builtin.%s", name)
	case types.StdModule:
		if t := types.StdType(name); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("unknown type std.%s", name)
	}
	pkg := p.pkgs[module]
	if pkg == nil {
		pkg = types.NewPackage(module)
		p.pkgs[module] = pkg
	}
	return pkg.DeclareNamed(name, types.NewStruct(nil)), nil
}

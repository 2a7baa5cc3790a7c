package opinfo

import (
	"fortio.org/safecast"

	"github.com/you-not-fish/opcanon/internal/opabi"
	"github.com/you-not-fish/opcanon/internal/ssa"
	"github.com/you-not-fish/opcanon/internal/types"
)

// Array is a library array literal recovered from its lowered form.
type Array struct {
	Value    *ssa.Value   // array-typed value that was decoded
	Elem     types.Type   // element type
	Elements []*ssa.Value // element values in index order
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Elements)
}

// DecodeArray recovers the elements of an array literal. v must have a
// library array type. The storage behind it must be one of:
//
//   - a statically initialized global object, whose tail elements are
//     the array elements;
//   - the shared empty array storage global;
//   - a heap allocation with a constant element count whose tail
//     storage is written exactly once per index, at constant indices.
//
// Any other shape, or a store pattern that leaves an index unwritten or
// writes one twice, is not an array literal.
func DecodeArray(v *ssa.Value) (*Array, bool) {
	if v == nil {
		return nil, false
	}
	elem, ok := types.ArrayElem(v.Type)
	if !ok {
		return nil, false
	}
	arr := &Array{Value: v, Elem: elem}

	storage := v
	for storage.Op != ssa.OpAllocRef {
		switch storage.Op {
		case ssa.OpStruct:
			if len(storage.Args) != 1 {
				return nil, false
			}
			storage = storage.Args[0]
		case ssa.OpRefCast, ssa.OpUpcast:
			storage = storage.Args[0]
		case ssa.OpGlobalValue:
			elts, ok := staticElements(storage)
			if !ok {
				return nil, false
			}
			arr.Elements = elts
			return arr, true
		case ssa.OpRawPointerToRef:
			if !isEmptyArrayStorage(storage) {
				return nil, false
			}
			return arr, true
		default:
			return nil, false
		}
	}

	elts, ok := storedElements(storage)
	if !ok {
		return nil, false
	}
	arr.Elements = elts
	return arr, true
}

// staticElements returns the tail elements of the object a GlobalValue
// was statically initialized with.
func staticElements(gv *ssa.Value) ([]*ssa.Value, bool) {
	g := gv.Global()
	if g == nil || g.Init == nil || g.Init.Op != ssa.OpObject {
		return nil, false
	}
	init := g.Init
	base, err := safecast.Conv[int](init.AuxInt)
	if err != nil || base > len(init.Args) {
		return nil, false
	}
	return append([]*ssa.Value(nil), init.Args[base:]...), true
}

// isEmptyArrayStorage matches
//
//	v0 = GlobalAddr {@_swiftEmptyArrayStorage}
//	v1 = AddrToPointer v0
//	v2 = RawPointerToRef v1
func isEmptyArrayStorage(v *ssa.Value) bool {
	a2p := v.Args[0]
	if a2p.Op != ssa.OpAddrToPointer {
		return false
	}
	ga := a2p.Args[0]
	if ga.Op != ssa.OpGlobalAddr {
		return false
	}
	g := ga.Global()
	return g != nil && g.Name == opabi.EmptyArrayStorage
}

// storedElements decodes the stores into the tail of an AllocRef:
//
//	v0 = AllocRef <ContiguousArrayStorage<T>> count
//	v1 = Upcast <ContiguousArrayStorageBase> v0
//	v2 = RefTailAddr <*T> v1
//	Store v2 e0
//	v3 = IndexAddr <*T> v2 (ConstInt [1])
//	Store v3 e1
func storedElements(alloc *ssa.Value) ([]*ssa.Value, bool) {
	f := alloc.Func()
	if f == nil || len(alloc.Args) != 1 || alloc.Args[0].Op != ssa.OpConstInt {
		return nil, false
	}
	n, err := safecast.Conv[uint32](alloc.Args[0].AuxInt)
	if err != nil {
		return nil, false
	}

	up := singleUserOf(f, alloc, ssa.OpUpcast)
	if up == nil {
		return nil, false
	}
	tail := singleUserOf(f, up, ssa.OpRefTailAddr)
	if tail == nil {
		return nil, false
	}

	// Every element needs its own use of the tail address.
	uses := f.Uses(tail)
	if uint64(n) > uint64(len(uses)) {
		return nil, false
	}
	elts := make([]*ssa.Value, n)
	for _, u := range uses {
		user := u.User
		if user == nil || u.Index != 0 {
			return nil, false
		}
		index := 0
		if user.Op == ssa.OpIndexAddr {
			idx := user.Args[1]
			if idx.Op != ssa.OpConstInt {
				return nil, false
			}
			i, err := safecast.Conv[int](idx.AuxInt)
			if err != nil {
				return nil, false
			}
			index = i
			uses := f.Uses(user)
			if len(uses) != 1 || uses[0].User == nil || uses[0].Index != 0 {
				return nil, false
			}
			user = uses[0].User
		}
		if user.Op != ssa.OpStore || index < 0 || index >= len(elts) || elts[index] != nil {
			return nil, false
		}
		elts[index] = user.Args[1]
	}

	for _, e := range elts {
		if e == nil {
			return nil, false
		}
	}
	return elts, true
}

// singleUserOf returns the only user of v with the given op. Users with
// other ops are ignored.
func singleUserOf(f *ssa.Func, v *ssa.Value, op ssa.Op) *ssa.Value {
	var found *ssa.Value
	for _, u := range f.Users(v) {
		if u.Op != op {
			continue
		}
		if found != nil {
			return nil
		}
		found = u
	}
	return found
}

package opabi

// Name tags recognized by the op extraction pass.
const (
	// OpPrefix marks an instruction name as an encoded op descriptor.
	OpPrefix = "op_"

	// ConstOp is the graph op that materializes a dense constant.
	ConstOp = "Const"
)

// Library entry points that can be promoted to graph ops.
const (
	// FnTensorFromScalars builds a tensor from (scalars, shape).
	FnTensorFromScalars = "__tf_tensor_from_scalars"

	// FnTensorFromScalars1D builds a rank-1 tensor from scalars.
	FnTensorFromScalars1D = "__tf_tensor_from_scalars_1d"
)

// Well-known globals.
const (
	// EmptyArrayStorage is the statically allocated storage shared by
	// every empty library array.
	EmptyArrayStorage = "_swiftEmptyArrayStorage"
)

// PromotableFunc describes a library function whose calls may be
// rewritten into a graph op.
type PromotableFunc struct {
	Name    string // callee name
	NumArgs int    // expected argument count
	HasDims bool   // whether a shape argument follows the scalars
}

// PromotableFuncs returns the library functions eligible for promotion.
func PromotableFuncs() []PromotableFunc {
	return []PromotableFunc{
		{Name: FnTensorFromScalars, NumArgs: 2, HasDims: true},
		{Name: FnTensorFromScalars1D, NumArgs: 1},
	}
}

// LookupPromotable returns the promotion entry for name.
func LookupPromotable(name string) (PromotableFunc, bool) {
	for _, p := range PromotableFuncs() {
		if p.Name == name {
			return p, true
		}
	}
	return PromotableFunc{}, false
}

// Package ssa implements the SSA intermediate representation that the
// op extraction pass reads and rewrites.
package ssa

// Op represents an SSA operation code.
type Op int

const (
	OpInvalid Op = iota

	// Literals
	OpConstInt    // integer literal; AuxInt = value; width from Type
	OpConstFloat  // float literal; AuxFloat = value
	OpConstString // string literal; Aux = string value; AuxInt = StringEncoding
	OpMetatype    // type-tag value; Aux = instance type

	// Wrappers
	OpStruct  // aggregate construction; Args = fields
	OpEnum    // tagged-union construction; AuxInt = case index; Args = payload (0 or 1)
	OpBitCast // bit reinterpretation; Args[0] = operand
	OpRefCast // reference reinterpretation; Args[0] = operand
	OpUpcast  // class upcast; Args[0] = operand
	OpBuiltin // compiler builtin; Aux = builtin name; Args = operands

	// Storage
	OpAllocStack      // local storage; Type = *T
	OpStore           // store; Args[0] = address, Args[1] = value; void
	OpLoad            // load; Args[0] = address
	OpAllocRef        // heap object with tail elements; Args[0] = element count
	OpRefTailAddr     // address of tail elements; Args[0] = object
	OpIndexAddr       // element address; Args[0] = base address, Args[1] = index
	OpGlobalValue     // statically initialized object; Aux = *Global
	OpGlobalAddr      // address of global storage; Aux = *Global
	OpAddrToPointer   // address to raw pointer; Args[0] = address
	OpRawPointerToRef // raw pointer to reference; Args[0] = pointer
	OpObject          // object literal; AuxInt = number of base fields; Args = fields then tail elements

	// Calls
	OpGraphOp       // op call; Aux = name encoding; Args = operands
	OpApply         // function call; Aux = callee name; Args = arguments
	OpTupleExtract  // projection of a multi-result value; AuxInt = index
	OpStructExtract // struct field projection; AuxInt = field index

	// Other
	OpArg     // function argument; AuxInt = param index; Aux = param name
	OpPhi     // φ function; Args = one per predecessor
	OpCopy    // value copy (identity)
	OpRelease // ownership of Args[0] ends here; void

	opCount // sentinel; must be last
)

// StringEncoding is the encoding of a string literal.
type StringEncoding int64

const (
	UTF8 StringEncoding = iota
	UTF16
)

// OpInfo holds metadata about an SSA operation.
type OpInfo struct {
	Name    string // human-readable name
	IsPure  bool   // true if the op has no side effects
	IsVoid  bool   // true if the op produces no value
	Literal bool   // true if the op is a literal that can be re-created anywhere
	Args    int    // fixed argument count; -1 if variadic
}

// opInfoTable maps each Op to its OpInfo.
// Index by Op value.
var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "Invalid"},

	OpConstInt:    {Name: "ConstInt", IsPure: true, Literal: true},
	OpConstFloat:  {Name: "ConstFloat", IsPure: true, Literal: true},
	OpConstString: {Name: "ConstString", IsPure: true},
	OpMetatype:    {Name: "Metatype", IsPure: true},

	OpStruct:  {Name: "Struct", IsPure: true, Args: -1},
	OpEnum:    {Name: "Enum", IsPure: true, Args: -1},
	OpBitCast: {Name: "BitCast", IsPure: true, Args: 1},
	OpRefCast: {Name: "RefCast", IsPure: true, Args: 1},
	OpUpcast:  {Name: "Upcast", IsPure: true, Args: 1},
	OpBuiltin: {Name: "Builtin", Args: -1},

	OpAllocStack:      {Name: "AllocStack"},
	OpStore:           {Name: "Store", IsVoid: true, Args: 2},
	OpLoad:            {Name: "Load", Args: 1},
	OpAllocRef:        {Name: "AllocRef", Args: 1},
	OpRefTailAddr:     {Name: "RefTailAddr", IsPure: true, Args: 1},
	OpIndexAddr:       {Name: "IndexAddr", IsPure: true, Args: 2},
	OpGlobalValue:     {Name: "GlobalValue", IsPure: true},
	OpGlobalAddr:      {Name: "GlobalAddr", IsPure: true},
	OpAddrToPointer:   {Name: "AddrToPointer", IsPure: true, Args: 1},
	OpRawPointerToRef: {Name: "RawPointerToRef", IsPure: true, Args: 1},
	OpObject:          {Name: "Object", IsPure: true, Args: -1},

	OpGraphOp:       {Name: "GraphOp", Args: -1},
	OpApply:         {Name: "Apply", Args: -1},
	OpTupleExtract:  {Name: "TupleExtract", IsPure: true, Args: 1},
	OpStructExtract: {Name: "StructExtract", IsPure: true, Args: 1},

	OpArg:     {Name: "Arg", IsPure: true},
	OpPhi:     {Name: "Phi", IsPure: true, Args: -1},
	OpCopy:    {Name: "Copy", IsPure: true, Args: 1},
	OpRelease: {Name: "Release", IsVoid: true, Args: 1},
}

// String returns the human-readable name of the op.
func (o Op) String() string {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o].Name
	}
	return "unknown"
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsPure returns true if this op has no side effects.
func (o Op) IsPure() bool {
	return o.Info().IsPure
}

// IsVoid returns true if this op produces no value.
func (o Op) IsVoid() bool {
	return o.Info().IsVoid
}

// IsLiteral reports whether the op is a numeric literal.
func (o Op) IsLiteral() bool {
	return o.Info().Literal
}

// LookupOp returns the op with the given name.
func LookupOp(name string) (Op, bool) {
	for op := OpInvalid + 1; op < opCount; op++ {
		if opInfoTable[op].Name == name {
			return op, true
		}
	}
	return OpInvalid, false
}

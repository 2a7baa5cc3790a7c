// Package opinfo recognizes graph op calls in SSA form, resolves their
// attribute operands to literal constants, validates them and rewrites
// each call into a flat canonical encoding.
//
// A call is a GraphOp or Apply value whose name carries the op tag
// (see package opname). Inputs come first and are either external-value
// handles or scalars with an external type code. Attributes follow and
// must resolve to a literal, a type tag, or a constant array built with
// one of the array idioms DecodeArray understands.
//
// Resolution fails closed: a value that cannot be proven constant is
// reported as unresolved rather than guessed at.
package opinfo

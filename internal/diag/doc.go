// Package diag collects the diagnostics produced while extracting op
// descriptors.
//
// Two classes of diagnostic flow through here. Descriptor faults
// (SevFatal, DSC codes) mean the producer of the IR broke the naming
// contract; they abort processing of the containing function.
// Attribute faults (SevError, ATR codes) are user mistakes such as a
// non-constant attribute; the offending instruction is left as it was
// and processing continues.
//
// Phases report through a Reporter. BagReporter collects into a Bag,
// which the driver merges and sorts before printing with Pretty or
// FormatShort.
package diag

package opinfo

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/ssa"
)

var (
	// ErrInternal is wrapped by every internal consistency fault.
	ErrInternal = errors.New("internal consistency fault")

	// ErrMalformed reports an op call whose descriptor could not be
	// decoded. The details are in the fatal diagnostic.
	ErrMalformed = errors.New("malformed op descriptor")
)

// InternalError reports a broken invariant of the rewrite, such as a
// canonical op that no longer decodes. It is never a user error.
type InternalError struct {
	Func  string // containing function
	Value string // offending value, as printed by ssa
	Msg   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %s", ErrInternal, e.Func, e.Value, e.Msg)
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}

func internalf(v *ssa.Value, format string, args ...interface{}) *InternalError {
	fn := "<detached>"
	if f := v.Func(); f != nil {
		fn = f.Name
	}
	return &InternalError{
		Func:  fn,
		Value: v.LongString(),
		Msg:   fmt.Sprintf(format, args...),
	}
}

// AttrError is a user-facing attribute fault found by Validate.
type AttrError struct {
	Attr string
	Code diag.Code
	Msg  string
}

func (e *AttrError) Error() string {
	return e.Msg
}

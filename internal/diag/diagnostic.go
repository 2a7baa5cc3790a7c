package diag

import (
	"fmt"

	"github.com/you-not-fish/opcanon/internal/syntax"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      syntax.Pos
	Message  string
	Func     string // function being processed, if known
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

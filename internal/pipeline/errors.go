package pipeline

import (
	"fmt"

	"github.com/vk/pipeweld/internal/stage"
)

// Reason identifies which structural rule a chain violated.
type Reason int

const (
	// MissingSource means the chain does not start with a source stage.
	MissingSource Reason = iota
	// IllegalSequence means an adjacent pair violates the allowed-successor table.
	IllegalSequence
	// MissingSink means the chain does not end with a sink stage.
	MissingSink
)

// StructuralError reports a violation of the pipeline shape rules found
// during validation. For IllegalSequence, Prev and Cur name the offending
// pair of stage kinds.
type StructuralError struct {
	Reason Reason
	Prev   stage.Kind
	Cur    stage.Kind
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	switch e.Reason {
	case MissingSource:
		return "pipeline must start with a source stage"
	case MissingSink:
		return "pipeline must end with a sink stage"
	case IllegalSequence:
		return fmt.Sprintf("invalid pipeline sequence: %s cannot be followed by %s", e.Prev, e.Cur)
	default:
		return "invalid pipeline structure"
	}
}

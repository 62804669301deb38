// Package change implements the run-length change algebra that sits between
// the text rope and the range-set layer: ChangeDesc describes the shape of
// an edit (which spans of the old document survive, which are replaced, and
// how long the replacement is); ChangeSet adds the actual replacement text
// on top of a ChangeDesc.
//
// Both types are immutable once built; composing or mapping a ChangeSet
// always returns a new value rather than mutating its receiver or operand.
package change

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces change-package activity through the shared core tracer, the same
// accessor pattern the teacher uses in cords.go.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

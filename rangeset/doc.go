// Package rangeset implements the layered, chunked range set that sits on
// top of the text rope and change algebra: an immutable collection of
// tagged ranges over a document, with chunked storage, position mapping
// through a ChangeDesc, ordered multi-cursor iteration, and span/point
// comparison for driving decoration-diff style consumers.
package rangeset

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces rangeset-package activity through the shared core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Far is a sentinel position larger than any real document offset, used by
// callers (e.g. Update) that want "to the end" without knowing the exact
// document length.
const Far = 1_000_000_000

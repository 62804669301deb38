// Package text implements the immutable, structure-sharing document rope
// that backs the editor core.
//
// A Text is a tree of lines: a Leaf holds an ordered run of line strings
// (with an implicit line break between adjacent entries, none before the
// first or after the last), and a Branch holds an ordered run of child
// nodes (again with implicit breaks between children), carrying a
// precomputed length (code-unit count including implicit breaks) and line
// count. Positions and lengths are 0-based byte offsets into the UTF-8
// line strings (Go's len), not UTF-16 code units; line numbers are
// 1-based. The empty document is a single leaf holding one empty line.
//
// Every operation that appears to mutate a Text — Replace, Slice, Append —
// returns a new value and reuses as much of the old tree as it safely can;
// no node is ever written to after construction.
package text

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the package's core tracer, mirroring the teacher repo's
// package-local tracing accessor.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

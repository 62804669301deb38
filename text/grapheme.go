package text

import (
	"bufio"
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// GraphemeBreaker is the external collaborator named by the spec: a
// grapheme-break oracle the core consumes through an interface rather than
// shipping Unicode tables itself.
//
// FindClusterBreak is a thin editor-facing convenience built on top of it
// (cursor motion helpers, not anything core indexing/Replace/Slice logic
// depends on).
type GraphemeBreaker interface {
	// ClusterBreak returns the next (forward) or previous (backward)
	// grapheme-cluster boundary position strictly after/before pos in s.
	// includeExtending controls whether combining/extending marks are
	// folded into the returned cluster.
	ClusterBreak(s string, pos int, forward bool, includeExtending bool) int
}

// UAXGraphemeBreaker implements GraphemeBreaker using the teacher pack's
// own Unicode text-segmentation library, the same one the styled/formatter
// package uses for line-wrapping.
type UAXGraphemeBreaker struct{}

// ClusterBreak implements GraphemeBreaker. includeExtending is not
// consulted: the boundaries are the ones the uax segmenter reports.
func (UAXGraphemeBreaker) ClusterBreak(s string, pos int, forward bool, includeExtending bool) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	grapheme.SetupGraphemeClasses()
	breaker := grapheme.NewBreaker(1)
	seg := segment.NewSegmenter(breaker)
	seg.Init(bufio.NewReader(strings.NewReader(s)))
	bounds := []int{0}
	off := 0
	for seg.Next() {
		off += len(seg.Bytes())
		bounds = append(bounds, off)
	}
	if len(bounds) == 0 || bounds[len(bounds)-1] != len(s) {
		bounds = append(bounds, len(s))
	}
	if forward {
		for _, b := range bounds {
			if b > pos {
				return b
			}
		}
		return len(s)
	}
	for i := len(bounds) - 1; i >= 0; i-- {
		if bounds[i] < pos {
			return bounds[i]
		}
	}
	return 0
}

// DefaultGraphemeBreaker is the package-wide oracle used by
// Text.FindClusterBreak when the caller does not supply its own.
var DefaultGraphemeBreaker GraphemeBreaker = UAXGraphemeBreaker{}

// FindClusterBreak returns the next (forward) or previous (backward)
// grapheme-cluster boundary in the line containing pos, using the
// package's default oracle.
func FindClusterBreak(t Text, pos int, forward bool, includeExtending bool) (int, error) {
	line, err := t.LineAt(pos)
	if err != nil {
		return 0, err
	}
	local := pos - line.From
	b := DefaultGraphemeBreaker.ClusterBreak(line.Text, local, forward, includeExtending)
	return line.From + b, nil
}

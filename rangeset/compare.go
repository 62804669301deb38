package rangeset

import "github.com/codemirror/state/change"

// RangeComparator receives the differences Compare finds between an old and
// a new collection of RangeSets.
type RangeComparator interface {
	// ComparePoint is called for each stretch [from, to) (in the new
	// document's coordinates) where the point range, if any, differs
	// between old and new.
	ComparePoint(from, to int, oldValue, newValue RangeValue)
	// CompareRange is called for each maximal stretch where the active
	// (non-point) set of ranges differs between old and new.
	CompareRange(from, to int, activeOld, activeNew []RangeValue)
}

// Compare walks oldSets (in old-document coordinates, mapped forward
// through textDiff) against newSets (in new-document coordinates) and
// reports every difference to comparator. It is a segment-based
// re-derivation of the spec's algorithm via ChangeDesc.IterChangedRanges
// plus per-side Spans collection, rather than the spec's shared-chunk
// pointer-equality skip optimization — see DESIGN.md.
func Compare(oldSets []*RangeSet, newSets []*RangeSet, textDiff change.ChangeDesc, comparator RangeComparator, minPointSize int) error {
	mappedOld := make([]*RangeSet, len(oldSets))
	for i, s := range oldSets {
		mapped, err := s.Map(textDiff)
		if err != nil {
			return err
		}
		mappedOld[i] = mapped
	}

	newLength := textDiff.NewLength()

	var boundaries []int
	textDiff.IterChangedRanges(false, func(_, _, fromB, toB int) {
		boundaries = append(boundaries, fromB, toB)
	})

	prev := 0
	segments := [][2]int{}
	for i := 0; i+1 < len(boundaries); i += 2 {
		from, to := boundaries[i], boundaries[i+1]
		if from > prev {
			segments = append(segments, [2]int{prev, from})
		}
		segments = append(segments, [2]int{from, to})
		prev = to
	}
	if prev < newLength {
		segments = append(segments, [2]int{prev, newLength})
	}
	if len(segments) == 0 {
		segments = [][2]int{{0, newLength}}
	}

	for _, seg := range segments {
		oldState := collectState(mappedOld, seg[0], seg[1], minPointSize)
		newState := collectState(newSets, seg[0], seg[1], minPointSize)
		reconcile(oldState, newState, comparator)
	}
	return nil
}

type stateEntry struct {
	from, to int
	active   []RangeValue
	point    RangeValue
}

func collectState(sets []*RangeSet, from, to, minPointSize int) []stateEntry {
	var out []stateEntry
	Spans(sets, from, to, spanCollector{&out}, minPointSize)
	return out
}

type spanCollector struct {
	out *[]stateEntry
}

func (s spanCollector) Span(from, to int, active []RangeValue) {
	*s.out = append(*s.out, stateEntry{from: from, to: to, active: active})
}

func (s spanCollector) Point(from, to int, value RangeValue, active []RangeValue, open bool) {
	*s.out = append(*s.out, stateEntry{from: from, to: to, active: active, point: value})
}

func reconcile(oldState, newState []stateEntry, comparator RangeComparator) {
	i, j := 0, 0
	for i < len(oldState) && j < len(newState) {
		a, b := oldState[i], newState[j]
		from := maxInt(a.from, b.from)
		to := minInt(a.to, b.to)
		if to < from || (to == from && a.from < a.to && b.from < b.to) {
			if a.to <= b.to {
				i++
			} else {
				j++
			}
			continue
		}
		if a.point != nil || b.point != nil {
			if !samePoint(a.point, b.point) {
				comparator.ComparePoint(from, to, a.point, b.point)
			}
		} else if !sameActiveSet(a.active, b.active) {
			comparator.CompareRange(from, to, a.active, b.active)
		}
		if a.to <= b.to {
			i++
		}
		if b.to <= a.to {
			j++
		}
	}
}

func samePoint(a, b RangeValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Eq(b)
}

func sameActiveSet(a, b []RangeValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Eq reports whether oldSets and newSets contain the same ranges over
// [from, to), without any change mapping — a convenience special case of
// Compare used by callers that just want an equality check. It uses
// spec.md's documented min_point_size default of -1, so every point range
// (including zero-width ones) is compared as a point, never folded into
// the active set.
func Eq(oldSets []*RangeSet, newSets []*RangeSet, from, to int) bool {
	oldState := collectState(oldSets, from, to, -1)
	newState := collectState(newSets, from, to, -1)
	equal := true
	reconcile(oldState, newState, eqComparator{&equal})
	return equal
}

type eqComparator struct {
	equal *bool
}

func (c eqComparator) ComparePoint(from, to int, oldValue, newValue RangeValue) { *c.equal = false }
func (c eqComparator) CompareRange(from, to int, activeOld, activeNew []RangeValue) {
	*c.equal = false
}

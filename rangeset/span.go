package rangeset

// SpanIterator receives the output of Spans: a sequence of adjoining spans
// covering [from, to), each annotated with the set of active (non-point)
// ranges covering it plus the point range starting there, if any.
type SpanIterator interface {
	// Span reports a plain span [from, to) together with the ranges active
	// across its whole extent.
	Span(from, to int, active []RangeValue)
	// Point reports a point range (open == true when the range starts
	// before the from passed to Spans, i.e. it began before the iterated
	// region).
	Point(from, to int, value RangeValue, active []RangeValue, open bool)
}

type activeRange struct {
	value RangeValue
	to    int
}

// Spans walks sets between from and to, reporting one Span per maximal
// stretch during which the set of active ranges doesn't change, and one
// Point per point range whose width is at least minPointSize. minPointSize
// is a lower bound, per spec.md's LayerCursor skipping chunks whose
// max_point < min_point: point ranges narrower than minPointSize fold into
// the active set instead of being reported via Point(). With the default
// of -1, every point range, zero-width ones included, is reported via
// Point(). It is a direct
// re-derivation of the spec's span/point contract (open-start points,
// active-set boundaries) rather than a transcription of the three-branch
// cursor state machine the spec describes; see DESIGN.md.
func Spans(sets []*RangeSet, from, to int, iter SpanIterator, minPointSize int) {
	cursor := IterAll(sets, from)
	var active []activeRange
	pos := from

	flushTo := func(stop int) {
		for pos < stop {
			next := stop
			for _, a := range active {
				if a.to < next {
					next = a.to
				}
			}
			values := make([]RangeValue, len(active))
			for i, a := range active {
				values[i] = a.value
			}
			if next > pos {
				iter.Span(pos, next, values)
			}
			pos = next
			kept := active[:0]
			for _, a := range active {
				if a.to > pos {
					kept = append(kept, a)
				}
			}
			active = kept
		}
	}

	hasNext := cursor.Next()
	for hasNext {
		rFrom, rTo, rVal := cursor.From(), cursor.To(), cursor.Value()
		if rFrom >= to {
			break
		}
		if rFrom > pos {
			flushTo(rFrom)
		}
		if rVal.Point() && rTo-rFrom >= minPointSize {
			values := make([]RangeValue, len(active))
			for i, a := range active {
				values[i] = a.value
			}
			open := rFrom < from
			iter.Point(rFrom, rTo, rVal, values, open)
		} else {
			active = append(active, activeRange{value: rVal, to: rTo})
		}
		hasNext = cursor.Next()
	}
	flushTo(to)
}

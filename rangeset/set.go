package rangeset

import (
	"sort"

	"github.com/codemirror/state/change"
)

// RangeSet is an immutable, layered collection of ranges. A layer is a
// sequence of non-overlapping chunks sorted by position; ranges that
// couldn't be appended in order to one layer live in the next one.
// nextLayer chains terminate at the canonical empty set, whose own
// nextLayer points back to itself — a sentinel that lets Size/Iter/Map
// stop without a separate "is this the root" flag.
type RangeSet struct {
	chunkPos  []int
	chunks    []*Chunk
	nextLayer *RangeSet
	maxPoint  int
}

var emptySet = &RangeSet{maxPoint: -1}

func init() { emptySet.nextLayer = emptySet }

// Empty returns the process-wide empty RangeSet singleton.
func Empty() *RangeSet { return emptySet }

func (s *RangeSet) isEmpty() bool { return s == emptySet }

// Size returns the total number of ranges across every layer.
func (s *RangeSet) Size() int {
	n := 0
	for cur := s; ; cur = cur.nextLayer {
		for _, c := range cur.chunks {
			n += c.Len()
		}
		if cur.nextLayer == cur {
			break
		}
	}
	return n
}

// Of builds a RangeSet from a list of ranges. When sortRanges is false,
// ranges must already be in (from, value.StartSide()) order; Of validates
// this exactly as RangeSetBuilder.Add does.
func Of(ranges []Range, sortRanges bool) (*RangeSet, error) {
	rs := ranges
	if sortRanges {
		rs = make([]Range, len(ranges))
		copy(rs, ranges)
		sort.SliceStable(rs, func(i, j int) bool {
			if rs[i].From != rs[j].From {
				return rs[i].From < rs[j].From
			}
			return rs[i].Value.StartSide() < rs[j].Value.StartSide()
		})
	}
	b := &RangeSetBuilder{}
	for _, r := range rs {
		if err := b.Add(r.From, r.To, r.Value); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// Join merges several RangeSets into one, keeping every range from every
// input. Unlike Map's chunk-reuse fast paths, Join always rebuilds: it has
// no document diff to tell it which chunks are safe to reuse by reference.
func Join(sets []*RangeSet) (*RangeSet, error) {
	var ranges []Range
	c := IterAll(sets, 0)
	for c.Next() {
		ranges = append(ranges, Range{From: c.From(), To: c.To(), Value: c.Value()})
	}
	return Of(ranges, true)
}

// UpdateSpec describes an incremental change to apply in RangeSet.Update.
type UpdateSpec struct {
	// Add holds new ranges to merge in, in (from, startSide) order unless
	// Sort is set.
	Add  []Range
	Sort bool
	// Filter, when non-nil, is consulted for every existing range whose
	// extent overlaps [FilterFrom, FilterTo]; it is kept only if Filter
	// returns true. Ranges entirely outside that window are kept without
	// being asked.
	Filter               func(from, to int, value RangeValue) bool
	FilterFrom, FilterTo int
}

// Update returns a new RangeSet built from s's existing content (minus
// anything Filter rejects) plus Add, in sorted order. An UpdateSpec with no
// Add and no Filter returns s itself unchanged. A Filter left with its zero
// FilterFrom/FilterTo is given the whole document, [0, Far), matching
// spec.md's filter_from=0/filter_to=Far defaults.
func (s *RangeSet) Update(spec UpdateSpec) (*RangeSet, error) {
	if len(spec.Add) == 0 && spec.Filter == nil {
		return s, nil
	}
	if spec.Filter != nil && spec.FilterFrom == 0 && spec.FilterTo == 0 {
		spec.FilterTo = Far
	}
	add := spec.Add
	if spec.Sort {
		add = make([]Range, len(spec.Add))
		copy(add, spec.Add)
		sort.SliceStable(add, func(i, j int) bool {
			if add[i].From != add[j].From {
				return add[i].From < add[j].From
			}
			return add[i].Value.StartSide() < add[j].Value.StartSide()
		})
	}
	var kept []Range
	c := s.Iter(0)
	for c.Next() {
		from, to, value := c.From(), c.To(), c.Value()
		if spec.Filter != nil && to >= spec.FilterFrom && from <= spec.FilterTo {
			if !spec.Filter(from, to, value) {
				continue
			}
		}
		kept = append(kept, Range{From: from, To: to, Value: value})
	}
	kept = append(kept, add...)
	return Of(kept, true)
}

func mapRange(from, to int, value RangeValue, changes change.ChangeDesc) (int, int, bool) {
	if from == to {
		nf, ok := changes.MapPos(from, value.StartSide(), value.MapMode())
		if !ok {
			return 0, 0, false
		}
		return nf, nf, true
	}
	nf, ok1 := changes.MapPos(from, value.StartSide(), change.Simple)
	nt, ok2 := changes.MapPos(to, value.EndSide(), change.Simple)
	if !ok1 || !ok2 || nf > nt {
		return 0, 0, false
	}
	if nf == nt && value.StartSide() > 0 && value.EndSide() <= 0 {
		return 0, 0, false
	}
	return nf, nt, true
}

// Map returns a new RangeSet with every range repositioned through
// changes. A chunk changes.TouchesRange reports as untouched is reused by
// reference under a uniform shift; a chunk it reports as fully covered is
// dropped whole; anything else is rebuilt range by range, dropping any
// range whose mapped position collapses invalidly or maps to null.
func (s *RangeSet) Map(changes change.ChangeDesc) (*RangeSet, error) {
	if s.isEmpty() {
		return s, nil
	}
	b := &RangeSetBuilder{}
	for i, c := range s.chunks {
		start := s.chunkPos[i]
		end := start + c.extent()
		switch changes.TouchesRange(start, end) {
		case change.Cover:
			T().Debugf("Map: chunk at [%d,%d) fully covered by a replacement, dropping", start, end)
			continue
		case change.NotTouched:
			newPos, _ := changes.MapPos(start, -1, change.Simple)
			if b.AddChunk(newPos, c) {
				T().Debugf("Map: chunk at [%d,%d) untouched, reused by reference at %d", start, end, newPos)
			} else {
				T().Debugf("Map: chunk at [%d,%d) untouched but out of order at %d, re-adding ranges", start, end, newPos)
				if err := reAddChunk(b, newPos, c); err != nil {
					return nil, err
				}
			}
		default:
			for j := range c.from {
				from, to := start+c.from[j], start+c.to[j]
				value := c.value[j]
				nf, nt, ok := mapRange(from, to, value, changes)
				if !ok {
					continue
				}
				if err := b.Add(nf, nt, value); err != nil {
					return nil, err
				}
			}
		}
	}
	mappedNext, err := s.nextLayer.Map(changes)
	if err != nil {
		return nil, err
	}
	own, err := b.Finish()
	if err != nil {
		return nil, err
	}
	if own.isEmpty() {
		return mappedNext, nil
	}
	if mappedNext.isEmpty() {
		return own, nil
	}
	own.nextLayer = mappedNext
	return own, nil
}

func reAddChunk(b *RangeSetBuilder, pos int, c *Chunk) error {
	for i := range c.from {
		if err := b.Add(pos+c.from[i], pos+c.to[i], c.value[i]); err != nil {
			return err
		}
	}
	return nil
}

// Between visits every range overlapping [from, to], in no particular
// order, stopping early if f returns false. Callers that want "to the end
// of the document" without tracking its exact length can pass Far for to.
func (s *RangeSet) Between(from, to int, f func(rFrom, rTo int, value RangeValue) bool) {
	c := s.Iter(from)
	for c.Next() {
		if c.From() > to {
			return
		}
		if !f(c.From(), c.To(), c.Value()) {
			return
		}
	}
}

package change

import "sort"

// ChangeDesc is the shape of an edit, encoded as a flat run-length list of
// (length, ins) pairs: length is always the span's extent in the old
// document; ins is -1 for an unchanged span, 0 for a pure deletion, and a
// positive code-unit count for a replacement's new length. InvertedDesc,
// ComposeDesc and MapDesc build their results through addSection, which
// coalesces adjacent pairs of the same kind. ChangeSets built by Of,
// Compose, Map, Invert, Filter and FromJSON keep their pairs as built,
// without coalescing, so one edit can have more than one encoding.
type ChangeDesc struct {
	sections []int
}

// MapMode controls how MapPos resolves a position that falls inside a
// replaced span.
type MapMode int

const (
	// Simple never returns a null mapping; positions inside a replacement
	// are pinned to one of its edges.
	Simple MapMode = iota
	// TrackDel returns null for a position strictly inside a replacement.
	TrackDel
	// TrackBefore returns null for any position after the start of a
	// replacement (keeps it tied to content before the edit).
	TrackBefore
	// TrackAfter returns null for any position before the end of a
	// replacement (keeps it tied to content after the edit).
	TrackAfter
)

// TouchResult is the outcome of ChangeDesc.TouchesRange.
type TouchResult int

const (
	// NotTouched means no replacement intersects the queried range.
	NotTouched TouchResult = iota
	// Touched means at least one replacement intersects the range, but no
	// single replacement strictly covers it.
	Touched
	// Cover means a single replacement strictly contains the range.
	Cover
)

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

// addSection appends a (length, ins) pair to sections, coalescing it with
// the previous pair where that keeps the encoding canonical:
//   - a (0, <=0) pair is a pure no-op and is dropped outright.
//   - two adjacent unchanged pairs, or two adjacent deletion pairs, merge
//     their lengths.
//   - two adjacent pure insertions (length 0 on both) merge their insert
//     counts into one insertion point.
//   - when forceJoin is set, the pair is merged into the previous one
//     regardless of kind. Every caller in this package passes false.
func addSection(sections []int, length, ins int, forceJoin bool) []int {
	if length == 0 && ins <= 0 {
		return sections
	}
	if n := len(sections); n > 0 {
		lastLen, lastIns := sections[n-2], sections[n-1]
		switch {
		case ins <= 0 && ins == lastIns:
			sections[n-2] = lastLen + length
			return sections
		case length == 0 && lastLen == 0:
			sections[n-1] = lastIns + ins
			return sections
		case forceJoin:
			sections[n-2] = lastLen + length
			switch {
			case lastIns == -1 && ins == -1:
				sections[n-1] = -1
			case lastIns > 0 || ins > 0:
				sections[n-1] = maxInt(lastIns, 0) + maxInt(ins, 0)
			default:
				sections[n-1] = 0
			}
			return sections
		}
	}
	return append(sections, length, ins)
}

// change is an internal (old, new) coordinate pair for one replaced span,
// used to implement compose/map/invert without re-walking raw sections.
type change struct {
	fromA, toA int
	fromB, toB int
}

// changes decodes the canonical sections into the list of replaced spans,
// each carrying both its old-document and new-document extent. Unchanged
// runs are implicit gaps between consecutive entries (and before the first,
// and after the last).
func (d ChangeDesc) changes() []change {
	var out []change
	posA, posB := 0, 0
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		if ins == -1 {
			posA += length
			posB += length
			continue
		}
		insLen := maxInt(ins, 0)
		out = append(out, change{fromA: posA, toA: posA + length, fromB: posB, toB: posB + insLen})
		posA += length
		posB += insLen
	}
	return out
}

// descFromChangesAB rebuilds a canonical ChangeDesc from a sorted,
// non-overlapping list of changes given in (old, new) coordinates.
func descFromChangesAB(oldLength int, chs []change) ChangeDesc {
	var sections []int
	pos := 0
	for _, c := range chs {
		if c.fromA > pos {
			sections = addSection(sections, c.fromA-pos, -1, false)
		}
		sections = addSection(sections, c.toA-c.fromA, c.toB-c.fromB, false)
		pos = c.toA
	}
	if pos < oldLength {
		sections = addSection(sections, oldLength-pos, -1, false)
	}
	return ChangeDesc{sections: sections}
}

// simpleChange is a (span, insert-length) pair without a tracked new-side
// position, the shape MapDesc produces (map only repositions spans, it
// never needs to know where the *other* side put its own text).
type simpleChange struct {
	fromA, toA, insB int
}

func descFromSimple(oldLength int, chs []simpleChange) ChangeDesc {
	var sections []int
	pos := 0
	for _, c := range chs {
		if c.fromA > pos {
			sections = addSection(sections, c.fromA-pos, -1, false)
		}
		sections = addSection(sections, c.toA-c.fromA, c.insB, false)
		pos = c.toA
	}
	if pos < oldLength {
		sections = addSection(sections, oldLength-pos, -1, false)
	}
	return ChangeDesc{sections: sections}
}

// Length is the extent of the document this ChangeDesc applies to.
func (d ChangeDesc) Length() int {
	total := 0
	for i := 0; i < len(d.sections); i += 2 {
		total += d.sections[i]
	}
	return total
}

// NewLength is the extent of the document that applying this ChangeDesc
// would produce.
func (d ChangeDesc) NewLength() int {
	total := 0
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		if ins == -1 {
			total += length
		} else {
			total += maxInt(ins, 0)
		}
	}
	return total
}

// Empty reports whether this ChangeDesc describes no actual change.
func (d ChangeDesc) Empty() bool {
	for i := 1; i < len(d.sections); i += 2 {
		if d.sections[i] != -1 {
			return false
		}
	}
	return true
}

// InvertedDesc swaps each replaced section's (length, ins) pair, describing
// the edit that would undo this one (applied to the document this edit
// produces).
func (d ChangeDesc) InvertedDesc() ChangeDesc {
	chs := d.changes()
	inv := make([]change, len(chs))
	for i, c := range chs {
		inv[i] = change{fromA: c.fromB, toA: c.toB, fromB: c.fromA, toB: c.toA}
	}
	return descFromChangesAB(d.NewLength(), inv)
}

// resolveOld maps a position in chs' new-document coordinate space (B) back
// to the corresponding old-document position (A), using chs' own replaced
// spans for the portions it covers and linear gap offsets elsewhere. Used
// only at merge-group boundaries, which by construction always land on a
// gap or exactly on a replaced span's edge.
func resolveOld(chs []change, midPos int) int {
	posA, posB := 0, 0
	for _, c := range chs {
		if midPos <= c.fromB {
			return posA + (midPos - posB)
		}
		if midPos <= c.toB {
			if midPos == c.toB {
				return c.toA
			}
			return c.fromA
		}
		posA, posB = c.toA, c.toB
	}
	return posA + (midPos - posB)
}

// resolveNew is resolveOld's mirror: it maps a position in chs' old-document
// coordinate space (A) forward to chs' new-document position (B).
func resolveNew(chs []change, midPos int) int {
	posA, posB := 0, 0
	for _, c := range chs {
		if midPos <= c.fromA {
			return posB + (midPos - posA)
		}
		if midPos <= c.toA {
			if midPos == c.toA {
				return c.toB
			}
			return c.fromB
		}
		posA, posB = c.toA, c.toB
	}
	return posB + (midPos - posA)
}

// ComposeDesc returns the ChangeDesc that describes applying d and then
// other in sequence, directly from the old document to other's new
// document. d.NewLength() must equal other.Length().
func (d ChangeDesc) ComposeDesc(other ChangeDesc) ChangeDesc {
	selfCh := d.changes()
	otherCh := other.changes()
	groups := mergeIntervals(selfCh, otherCh)
	T().Debugf("ComposeDesc: %d + %d changes merge into %d group(s)", len(selfCh), len(otherCh), len(groups))
	result := make([]change, 0, len(groups))
	for _, g := range groups {
		result = append(result, change{
			fromA: resolveOld(selfCh, g[0]),
			toA:   resolveOld(selfCh, g[1]),
			fromB: resolveNew(otherCh, g[0]),
			toB:   resolveNew(otherCh, g[1]),
		})
	}
	return descFromChangesAB(d.Length(), result)
}

// mergeIntervals merges selfCh's new-side spans and otherCh's old-side
// spans (both given in the shared middle-document coordinate space) into
// the maximal runs that compose's result must treat as one changed region.
func mergeIntervals(selfCh, otherCh []change) [][2]int {
	type iv struct{ lo, hi int }
	ivs := make([]iv, 0, len(selfCh)+len(otherCh))
	for _, c := range selfCh {
		ivs = append(ivs, iv{c.fromB, c.toB})
	}
	for _, c := range otherCh {
		ivs = append(ivs, iv{c.fromA, c.toA})
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	var merged [][2]int
	for _, v := range ivs {
		if n := len(merged); n > 0 && v.lo < merged[n-1][1] {
			if v.hi > merged[n-1][1] {
				merged[n-1][1] = v.hi
			}
		} else {
			merged = append(merged, [2]int{v.lo, v.hi})
		}
	}
	return merged
}

// MapDesc rebases d, an edit made against the same base document as other,
// so that it applies to the document other.NewLength() produces instead.
// before selects the assoc values passed to MapPos for each change's two
// ends; since MapPos does not use assoc, before does not change the result.
func (d ChangeDesc) MapDesc(other ChangeDesc, before bool) ChangeDesc {
	selfCh := d.changes()
	T().Debugf("MapDesc: rebasing %d change(s), before=%v", len(selfCh), before)
	result := make([]simpleChange, 0, len(selfCh))
	pos := 0
	for _, c := range selfCh {
		assocFrom, assocTo := -1, 1
		if before {
			assocFrom, assocTo = 1, -1
		}
		newFrom, _ := other.MapPos(c.fromA, assocFrom, Simple)
		newTo, _ := other.MapPos(c.toA, assocTo, Simple)
		if newFrom < pos {
			newFrom = pos
		}
		if newTo < newFrom {
			newTo = newFrom
		}
		result = append(result, simpleChange{fromA: newFrom, toA: newTo, insB: c.toB - c.fromB})
		pos = newTo
	}
	return descFromSimple(other.NewLength(), result)
}

// MapPos maps pos, a position in d's old document, through d to a position
// in d's new document. assoc does not affect the result: a position where
// new text is inserted always maps to the position before that text, and
// the end of a replaced span maps to the end of its replacement. mode
// controls what happens when pos falls inside a replaced span; Simple
// always returns a position, the Track* modes return ok=false instead.
func (d ChangeDesc) MapPos(pos, assoc int, mode MapMode) (mapped int, ok bool) {
	posA, posB := 0, 0
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		endA := posA + length
		if ins == -1 {
			if pos <= endA {
				return posB + (pos - posA), true
			}
			posA, posB = endA, posB+length
			continue
		}
		insLen := maxInt(ins, 0)
		if pos <= endA {
			switch mode {
			case TrackDel:
				if pos > posA && pos < endA {
					return 0, false
				}
			case TrackBefore:
				if posA < pos {
					return 0, false
				}
			case TrackAfter:
				if endA > pos {
					return 0, false
				}
			}
			if pos == posA || (assoc < 0 && length == 0) {
				return posB, true
			}
			return posB + insLen, true
		}
		posA, posB = endA, posB+insLen
	}
	return posB, true
}

// TouchesRange reports whether any replacement intersects [from, to].
func (d ChangeDesc) TouchesRange(from, to int) TouchResult {
	posA := 0
	result := NotTouched
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		endA := posA + length
		if ins != -1 && endA >= from && posA <= to {
			if posA < from && endA > to {
				return Cover
			}
			result = Touched
		}
		posA = endA
	}
	return result
}

// IterGaps visits every unchanged run, in order, as (old position, new
// position, length).
func (d ChangeDesc) IterGaps(f func(posA, posB, length int)) {
	posA, posB := 0, 0
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		if ins == -1 {
			f(posA, posB, length)
			posA += length
			posB += length
		} else {
			posA += length
			posB += maxInt(ins, 0)
		}
	}
}

// IterChangedRanges visits every replaced run as (fromA, toA, fromB, toB).
// When individual is false, adjacent replaced runs are coalesced into a
// single callback.
func (d ChangeDesc) IterChangedRanges(individual bool, f func(fromA, toA, fromB, toB int)) {
	posA, posB := 0, 0
	haveOpen := false
	var oFromA, oToA, oFromB, oToB int
	flush := func() {
		if haveOpen {
			f(oFromA, oToA, oFromB, oToB)
			haveOpen = false
		}
	}
	for i := 0; i < len(d.sections); i += 2 {
		length, ins := d.sections[i], d.sections[i+1]
		endA := posA + length
		if ins == -1 {
			flush()
			posA, posB = endA, posB+length
			continue
		}
		insLen := maxInt(ins, 0)
		if !individual && haveOpen && oToA == posA {
			oToA, oToB = endA, posB+insLen
		} else {
			flush()
			oFromA, oToA, oFromB, oToB = posA, endA, posB, posB+insLen
			haveOpen = true
		}
		posA, posB = endA, posB+insLen
	}
	flush()
}

// ToJSON returns d's sections as the flat [length, ins, length, ins, ...]
// array.
func (d ChangeDesc) ToJSON() []int {
	out := make([]int, len(d.sections))
	copy(out, d.sections)
	return out
}

// ChangeDescFromJSON rebuilds a ChangeDesc from ToJSON's output.
func ChangeDescFromJSON(data []int) (ChangeDesc, error) {
	if len(data)%2 != 0 {
		return ChangeDesc{}, ErrMalformedJSON
	}
	return ChangeDesc{sections: append([]int(nil), data...)}, nil
}

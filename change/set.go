package change

import "github.com/codemirror/state/text"

// ChangeSet is a ChangeDesc with the actual replacement content attached:
// inserted[i] holds the text for the i-th replaced section (sections with
// ins == -1 have no corresponding entry requirement; by convention we still
// keep inserted aligned 1:1 with every section pair and leave unchanged
// slots as text.Empty, which keeps indexing by section index simple).
type ChangeSet struct {
	ChangeDesc
	inserted []text.Text
}

// Desc returns the ChangeDesc view of cs, discarding the attached text.
func (cs *ChangeSet) Desc() ChangeDesc { return cs.ChangeDesc }

// textChange is a change annotated with the text it inserts, the unit
// Compose and Map operate on so they can assemble result text alongside
// result positions.
type textChange struct {
	change
	ins text.Text
}

func (cs *ChangeSet) changesWithText() []textChange {
	var out []textChange
	posA, posB := 0, 0
	for i := 0; i < len(cs.sections); i += 2 {
		length, ins := cs.sections[i], cs.sections[i+1]
		if ins == -1 {
			posA += length
			posB += length
			continue
		}
		insLen := maxInt(ins, 0)
		out = append(out, textChange{
			change: change{fromA: posA, toA: posA + length, fromB: posB, toB: posB + insLen},
			ins:    cs.inserted[i/2],
		})
		posA += length
		posB += insLen
	}
	return out
}

func concatTexts(pieces []text.Text) (text.Text, error) {
	if len(pieces) == 0 {
		return text.Empty, nil
	}
	result := pieces[0]
	for _, p := range pieces[1:] {
		var err error
		result, err = result.Append(p)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Apply replaces each of cs's sections in doc with its inserted text.
// cs.Length() must equal doc.Length().
func (cs *ChangeSet) Apply(doc text.Text) (text.Text, error) {
	if cs.Length() != doc.Length() {
		return nil, ErrLengthMismatch
	}
	result := doc
	shift := 0
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length, ins := cs.sections[i], cs.sections[i+1]
		if ins != -1 {
			insLen := maxInt(ins, 0)
			var err error
			result, err = result.Replace(posA+shift, posA+shift+length, cs.inserted[i/2])
			if err != nil {
				return nil, err
			}
			shift += insLen - length
		}
		posA += length
	}
	return result, nil
}

// Invert returns the ChangeSet that undoes cs, given the document cs was
// built against (the deleted text has to come from somewhere: cs itself
// only carries what was inserted).
func (cs *ChangeSet) Invert(doc text.Text) (*ChangeSet, error) {
	if cs.Length() != doc.Length() {
		return nil, ErrLengthMismatch
	}
	sections := make([]int, 0, len(cs.sections))
	inserted := make([]text.Text, 0, len(cs.inserted))
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length, ins := cs.sections[i], cs.sections[i+1]
		if ins == -1 {
			sections = append(sections, length, -1)
			inserted = append(inserted, text.Empty)
		} else {
			var deleted text.Text = text.Empty
			if length > 0 {
				var err error
				deleted, err = doc.Slice(posA, posA+length)
				if err != nil {
					return nil, err
				}
			}
			sections = append(sections, maxInt(ins, 0), length)
			inserted = append(inserted, deleted)
		}
		posA += length
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: sections}, inserted: inserted}, nil
}

// Compose returns the ChangeSet describing applying cs then other in
// sequence. cs.NewLength() must equal other.Length().
func (cs *ChangeSet) Compose(other *ChangeSet) (*ChangeSet, error) {
	if cs.NewLength() != other.Length() {
		return nil, ErrLengthMismatch
	}
	selfCh := cs.changesWithText()
	otherCh := other.changesWithText()
	selfPlain := make([]change, len(selfCh))
	for i, c := range selfCh {
		selfPlain[i] = c.change
	}
	otherPlain := make([]change, len(otherCh))
	for i, c := range otherCh {
		otherPlain[i] = c.change
	}
	groups := mergeIntervalsTagged(selfPlain, otherPlain)

	sections := make([]int, 0, 2*len(groups)+2)
	inserted := make([]text.Text, 0, len(groups)+1)
	posA := 0
	for _, g := range groups {
		oldFrom := resolveOld(selfPlain, g.lo)
		oldTo := resolveOld(selfPlain, g.hi)
		newFrom := resolveNew(otherPlain, g.lo)
		newTo := resolveNew(otherPlain, g.hi)
		if oldFrom > posA {
			sections = append(sections, oldFrom-posA, -1)
			inserted = append(inserted, text.Empty)
		}
		txt, err := assembleComposedText(g, selfCh, otherCh)
		if err != nil {
			return nil, err
		}
		sections = append(sections, oldTo-oldFrom, newTo-newFrom)
		inserted = append(inserted, txt)
		posA = oldTo
	}
	if posA < cs.Length() {
		sections = append(sections, cs.Length()-posA, -1)
		inserted = append(inserted, text.Empty)
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: sections}, inserted: inserted}, nil
}

// group is a maximal run of overlapping self/other spans, tagged with the
// member spans that compose it so assembleComposedText can reassemble the
// result's inserted text without re-deriving membership.
type group struct {
	lo, hi  int
	members []member
}

type member struct {
	self   bool
	idx    int
	lo, hi int
}

func mergeIntervalsTagged(selfCh, otherCh []change) []group {
	members := make([]member, 0, len(selfCh)+len(otherCh))
	for i, c := range selfCh {
		members = append(members, member{self: true, idx: i, lo: c.fromB, hi: c.toB})
	}
	for i, c := range otherCh {
		members = append(members, member{self: false, idx: i, lo: c.fromA, hi: c.toA})
	}
	sortMembers(members)
	var groups []group
	for _, m := range members {
		if n := len(groups); n > 0 && m.lo < groups[n-1].hi {
			if m.hi > groups[n-1].hi {
				groups[n-1].hi = m.hi
			}
			groups[n-1].members = append(groups[n-1].members, m)
		} else {
			groups = append(groups, group{lo: m.lo, hi: m.hi, members: []member{m}})
		}
	}
	return groups
}

func sortMembers(members []member) {
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j].lo < members[j-1].lo; j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}
}

// assembleComposedText walks g's span in new-to-other/old-to-self coverage
// order, emitting each overlapping other-change's inserted text whole
// (once, to avoid duplicating content other already fixed) and slicing
// self's inserted text for the portions other left untouched.
func assembleComposedText(g group, selfCh, otherCh []textChange) (text.Text, error) {
	bpSet := map[int]bool{g.lo: true, g.hi: true}
	for _, m := range g.members {
		bpSet[m.lo] = true
		bpSet[m.hi] = true
	}
	bps := make([]int, 0, len(bpSet))
	for k := range bpSet {
		bps = append(bps, k)
	}
	sortInts(bps)

	var pieces []text.Text
	lastOther, lastSelf := -1, -1
	for i := 0; i+1 < len(bps); i++ {
		a, b := bps[i], bps[i+1]
		if a == b {
			continue
		}
		covered := false
		for _, m := range g.members {
			if !m.self && m.lo <= a && b <= m.hi {
				if m.idx != lastOther {
					pieces = append(pieces, otherCh[m.idx].ins)
					lastOther = m.idx
				}
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		for _, m := range g.members {
			if m.self && m.lo <= a && b <= m.hi {
				piece, err := selfCh[m.idx].ins.Slice(a-selfCh[m.idx].fromB, b-selfCh[m.idx].fromB)
				if err != nil {
					return nil, err
				}
				pieces = append(pieces, piece)
				lastSelf = m.idx
				covered = true
				break
			}
		}
		_ = lastSelf
	}
	return concatTexts(pieces)
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// Map rebases cs, built against the same base document as other, onto the
// document other.NewLength() produces. before is handled the same way
// ChangeDesc.MapDesc handles it.
func (cs *ChangeSet) Map(other *ChangeSet, before bool) (*ChangeSet, error) {
	selfCh := cs.changesWithText()
	otherDesc := other.ChangeDesc
	sections := make([]int, 0, 2*len(selfCh)+2)
	inserted := make([]text.Text, 0, len(selfCh)+1)
	pos := 0
	for _, c := range selfCh {
		assocFrom, assocTo := -1, 1
		if before {
			assocFrom, assocTo = 1, -1
		}
		newFrom, _ := otherDesc.MapPos(c.fromA, assocFrom, Simple)
		newTo, _ := otherDesc.MapPos(c.toA, assocTo, Simple)
		if newFrom < pos {
			newFrom = pos
		}
		if newTo < newFrom {
			newTo = newFrom
		}
		if newFrom > pos {
			sections = append(sections, newFrom-pos, -1)
			inserted = append(inserted, text.Empty)
		}
		sections = append(sections, newTo-newFrom, c.toB-c.fromB)
		inserted = append(inserted, c.ins)
		pos = newTo
	}
	newLen := other.NewLength()
	if pos < newLen {
		sections = append(sections, newLen-pos, -1)
		inserted = append(inserted, text.Empty)
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: sections}, inserted: inserted}, nil
}

// IterChanges visits every replaced section as (fromA, toA, fromB, toB,
// insertedText).
func (cs *ChangeSet) IterChanges(f func(fromA, toA, fromB, toB int, ins text.Text)) {
	for _, c := range cs.changesWithText() {
		f(c.fromA, c.toA, c.fromB, c.toB, c.ins)
	}
}

// FilterResult is the outcome of ChangeSet.Filter.
type FilterResult struct {
	// Changes keeps only the sections that intersect one of the queried
	// ranges; everything else is reported unchanged.
	Changes *ChangeSet
	// Filtered is the complement: a ChangeDesc recording where the
	// removed sections were, so a caller can tell what got dropped.
	Filtered ChangeDesc
}

// Filter splits cs into the sections touching any of ranges and the
// sections that don't, without discarding either half's shape.
func (cs *ChangeSet) Filter(ranges [][2]int) FilterResult {
	touches := func(from, to int) bool {
		for _, r := range ranges {
			if to > r[0] && from < r[1] {
				return true
			}
		}
		return false
	}
	keepSections := make([]int, 0, len(cs.sections))
	dropSections := make([]int, 0, len(cs.sections))
	keepInserted := make([]text.Text, 0, len(cs.inserted))
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length, ins := cs.sections[i], cs.sections[i+1]
		if ins == -1 {
			keepSections = append(keepSections, length, -1)
			dropSections = append(dropSections, length, -1)
			keepInserted = append(keepInserted, text.Empty)
			posA += length
			continue
		}
		if touches(posA, posA+length) {
			keepSections = append(keepSections, length, ins)
			keepInserted = append(keepInserted, cs.inserted[i/2])
			dropSections = append(dropSections, length, -1)
		} else {
			keepSections = append(keepSections, length, -1)
			keepInserted = append(keepInserted, text.Empty)
			dropSections = append(dropSections, length, ins)
		}
		posA += length
	}
	return FilterResult{
		Changes:  &ChangeSet{ChangeDesc: ChangeDesc{sections: keepSections}, inserted: keepInserted},
		Filtered: ChangeDesc{sections: dropSections},
	}
}

// Empty returns the ChangeSet that describes no change to a document of the
// given length.
func Empty(length int) *ChangeSet {
	if length == 0 {
		return &ChangeSet{}
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: []int{length, -1}}, inserted: []text.Text{text.Empty}}
}

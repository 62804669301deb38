package change

import (
	"regexp"
	"sort"
	"strings"

	"github.com/codemirror/state/text"
)

// ChangeSpec describes a single replacement to fold into a ChangeSet built
// by Of: replace [From, To) with Insert. Insert may be nil (pure deletion),
// a string (split into lines the way Of's lineSep argument says to), or a
// text.Text (used as-is). A pure insertion sets From == To.
type ChangeSpec struct {
	From, To int
	Insert   interface{}
}

// Spec is anything Of accepts: a ChangeSpec, a slice of them, a nested
// slice of Specs, or an existing *ChangeSet (whose own sections are folded
// in verbatim).
type Spec interface{}

var defaultLineSplit = regexp.MustCompile(`\r\n?|\n`)

func splitInsert(s, lineSep string) []string {
	if s == "" {
		return []string{""}
	}
	if lineSep != "" {
		return strings.Split(s, lineSep)
	}
	return defaultLineSplit.Split(s, -1)
}

type specItem struct {
	from, to int
	insert   text.Text
}

func flattenSpec(spec Spec, length int, lineSep string, out *[]specItem) error {
	switch s := spec.(type) {
	case nil:
		return nil
	case ChangeSpec:
		var ins text.Text
		switch v := s.Insert.(type) {
		case nil:
			ins = text.Empty
		case string:
			t, err := text.Of(splitInsert(v, lineSep))
			if err != nil {
				return err
			}
			ins = t
		case text.Text:
			ins = v
		default:
			return ErrIllegalSpec
		}
		if s.From < 0 || s.From > s.To || s.To > length {
			return ErrRangeInvalid
		}
		*out = append(*out, specItem{from: s.From, to: s.To, insert: ins})
		return nil
	case []ChangeSpec:
		for _, it := range s {
			if err := flattenSpec(it, length, lineSep, out); err != nil {
				return err
			}
		}
		return nil
	case *ChangeSet:
		if s.Length() != length {
			return ErrLengthMismatch
		}
		for _, c := range s.changesWithText() {
			*out = append(*out, specItem{from: c.fromA, to: c.toA, insert: c.ins})
		}
		return nil
	case []Spec:
		for _, e := range s {
			if err := flattenSpec(e, length, lineSep, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrIllegalSpec
	}
}

// Of builds a ChangeSet over a document of the given length from spec.
// Sub-changes may be given out of order; they are sorted by position before
// being assembled, so the result does not depend on the order spec lists
// them in as long as they don't overlap (overlapping sub-changes are, as
// in the rest of the change algebra, not a defined case: later entries at
// the same position are clamped against earlier ones rather than rejected).
func Of(spec Spec, length int, lineSep string) (*ChangeSet, error) {
	var items []specItem
	if err := flattenSpec(spec, length, lineSep, &items); err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].from < items[j].from })

	sections := make([]int, 0, 2*len(items)+2)
	inserted := make([]text.Text, 0, len(items)+1)
	pos := 0
	for _, it := range items {
		from, to := it.from, it.to
		if from < pos {
			from = pos
		}
		if to < from {
			to = from
		}
		if from > pos {
			sections = append(sections, from-pos, -1)
			inserted = append(inserted, text.Empty)
		}
		sections = append(sections, to-from, it.insert.Length())
		inserted = append(inserted, it.insert)
		pos = to
	}
	if pos < length {
		sections = append(sections, length-pos, -1)
		inserted = append(inserted, text.Empty)
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: sections}, inserted: inserted}, nil
}

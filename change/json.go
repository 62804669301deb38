package change

import "github.com/codemirror/state/text"

// ToJSON encodes cs as a mixed array: a bare length for an unchanged run, a
// one-element array [length] for a pure deletion, and a [length, ...lines]
// array for a replacement, its inserted text split into lines the way
// text.Text.ToJSON does.
func (cs *ChangeSet) ToJSON() []interface{} {
	out := make([]interface{}, 0, len(cs.sections)/2)
	for i := 0; i < len(cs.sections); i += 2 {
		length, ins := cs.sections[i], cs.sections[i+1]
		switch {
		case ins == -1:
			out = append(out, length)
		case ins == 0:
			out = append(out, []interface{}{length})
		default:
			lines := cs.inserted[i/2].ToJSON()
			entry := make([]interface{}, 0, len(lines)+1)
			entry = append(entry, length)
			for _, l := range lines {
				entry = append(entry, l)
			}
			out = append(out, entry)
		}
	}
	return out
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// FromJSON rebuilds a ChangeSet from ToJSON's output.
func FromJSON(data []interface{}) (*ChangeSet, error) {
	sections := make([]int, 0, 2*len(data))
	inserted := make([]text.Text, 0, len(data))
	for _, el := range data {
		switch v := el.(type) {
		case []interface{}:
			if len(v) == 0 {
				return nil, ErrMalformedJSON
			}
			length, ok := asInt(v[0])
			if !ok {
				return nil, ErrMalformedJSON
			}
			if len(v) == 1 {
				sections = append(sections, length, 0)
				inserted = append(inserted, text.Empty)
				continue
			}
			lines := make([]string, 0, len(v)-1)
			for _, s := range v[1:] {
				str, ok := s.(string)
				if !ok {
					return nil, ErrMalformedJSON
				}
				lines = append(lines, str)
			}
			t, err := text.Of(lines)
			if err != nil {
				return nil, err
			}
			sections = append(sections, length, t.Length())
			inserted = append(inserted, t)
		default:
			length, ok := asInt(v)
			if !ok {
				return nil, ErrMalformedJSON
			}
			sections = append(sections, length, -1)
			inserted = append(inserted, text.Empty)
		}
	}
	return &ChangeSet{ChangeDesc: ChangeDesc{sections: sections}, inserted: inserted}, nil
}

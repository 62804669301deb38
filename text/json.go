package text

import "strings"

// ToJSON returns the document as an array of line strings, the bit-exact
// Text JSON format.
func ToJSON(t Text) []string {
	var out []string
	collectLines(t, &out)
	return out
}

func collectLines(t Text, out *[]string) {
	switch n := t.(type) {
	case *leaf:
		*out = append(*out, n.lines...)
	case *branch:
		for _, c := range n.kids {
			collectLines(c, out)
		}
	}
}

// FromJSON builds a Text from its JSON array-of-lines representation.
func FromJSON(lines []string) (Text, error) {
	if len(lines) == 0 {
		return nil, ErrMalformedJSON
	}
	return Of(lines)
}

func (l *leaf) ToJSON() []string   { return ToJSON(l) }
func (b *branch) ToJSON() []string { return ToJSON(b) }

// SliceString returns the substring text in [from, to), joining lines with
// lineSep (defaults to "\n" when empty).
func SliceString(t Text, from, to int, lineSep string) (string, error) {
	if from < 0 || from > to || to > t.Length() {
		return "", ErrIndexOutOfBounds
	}
	if lineSep == "" {
		lineSep = "\n"
	}
	var sb strings.Builder
	c := NewRangeCursor(t, from, to, Forward)
	for c.Next() {
		if c.LineBreak() {
			sb.WriteString(lineSep)
		} else {
			sb.WriteString(c.Value())
		}
	}
	return sb.String(), nil
}

func (l *leaf) SliceString(from, to int, lineSep string) (string, error) {
	return SliceString(l, from, to, lineSep)
}

func (b *branch) SliceString(from, to int, lineSep string) (string, error) {
	return SliceString(b, from, to, lineSep)
}

// String renders the whole document with "\n" separators, for debugging and
// tests (fmt.Stringer).
func String(t Text) string {
	s, _ := SliceString(t, 0, t.Length(), "\n")
	return s
}

func (l *leaf) String() string   { return String(l) }
func (b *branch) String() string { return String(b) }

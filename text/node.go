package text

import "math/bits"

// B is the target branching factor for both leaves (max line strings per
// leaf) and branches (max children per branch). Trees are kept within a
// roughly 1/2-to-2x factor of balanced without per-edit rebalancing, the
// same budget the teacher's btree.Config documents for its own B+ tree.
const B = 32

var log2B = bits.Len(uint(B)) - 1

// Text is an immutable node in a line-structured document tree: either a
// Leaf (a run of line strings) or a Branch (a run of child Texts).
//
// Values are shared freely: Replace, Slice and Append return new Texts that
// reference unchanged subtrees of their receivers.
type Text interface {
	// Length returns the code-unit length of the text, including implicit
	// line breaks between lines/children.
	Length() int
	// Lines returns the number of lines (always >= 1).
	Lines() int
	// LineAt returns the descriptor of the line containing pos.
	LineAt(pos int) (Line, error)
	// Line returns the descriptor of the n'th line (1-based).
	Line(number int) (Line, error)
	// Slice returns the substring text in [from, to).
	Slice(from, to int) (Text, error)
	// SliceString returns the substring text in [from, to), joining lines
	// with lineSep (defaults to "\n" when empty).
	SliceString(from, to int, lineSep string) (string, error)
	// Replace returns a new Text with [from, to) replaced by ins.
	Replace(from, to int, ins Text) (Text, error)
	// Append returns a new Text with other appended at the end.
	Append(other Text) (Text, error)
	// Eq reports whether other holds the same sequence of characters.
	Eq(other Text) bool
	// Iter returns a cursor over the whole document in the given direction.
	Iter(dir Direction) *RawCursor
	// IterRange returns a cursor bounded to [from, to), always forward.
	IterRange(from, to int) *RawCursor
	// IterLines returns a line-by-line cursor bounded to [from, to).
	IterLines(from, to int) *LineCursor
	// ToJSON returns the document as an array of line strings.
	ToJSON() []string

	decompose(from, to int, target *[]Text, openLeft, openRight bool)
	firstLine() string
	lastLine() string
}

// leaf holds 1..B line strings; implicit breaks sit between adjacent
// entries, none before the first or after the last.
type leaf struct {
	lines []string
}

// branch holds 2..B children with implicit breaks between them, carrying
// precomputed aggregates so Length/Lines are O(1).
type branch struct {
	kids   []Text
	length int
	lines  int
}

// Empty is the process-wide singleton empty document: one empty line.
var Empty Text = &leaf{lines: []string{""}}

func newLeaf(lines []string) *leaf {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &leaf{lines: cp}
}

func (l *leaf) Length() int {
	n := len(l.lines) - 1
	for _, s := range l.lines {
		n += len(s)
	}
	return n
}

func (l *leaf) Lines() int { return len(l.lines) }

func (l *leaf) firstLine() string { return l.lines[0] }
func (l *leaf) lastLine() string  { return l.lines[len(l.lines)-1] }

func (b *branch) Length() int { return b.length }
func (b *branch) Lines() int  { return b.lines }

func (b *branch) firstLine() string { return b.kids[0].firstLine() }
func (b *branch) lastLine() string  { return b.kids[len(b.kids)-1].lastLine() }

func newBranch(kids []Text) *branch {
	b := &branch{kids: kids}
	for _, k := range kids {
		b.length += k.Length()
		b.lines += k.Lines()
	}
	b.length += len(kids) - 1
	return b
}

// Of builds a Text from an array of line strings (implicit breaks between
// entries). An empty array is rejected; use Empty for the empty document.
func Of(lines []string) (Text, error) {
	if len(lines) == 0 {
		return nil, ErrIllegalArguments
	}
	if len(lines) <= B {
		return newLeaf(lines), nil
	}
	children := make([]Text, 0, (len(lines)+B-1)/B)
	for i := 0; i < len(lines); i += B {
		end := i + B
		if end > len(lines) {
			end = len(lines)
		}
		children = append(children, newLeaf(lines[i:end]))
	}
	return nodeFrom(children), nil
}

// nodeFrom assembles a balanced Text from an ordered list of already-built
// Text fragments, following TextNode.from's policy: merge small adjacent
// leaves by concatenation, then group the remainder into branches sized
// around max(B, totalLines>>log2B).
func nodeFrom(children []Text) Text {
	T().Debugf("nodeFrom(%d fragments)", len(children))
	children = mergeSmallLeaves(children)
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= B {
		return newBranch(children)
	}
	T().Debugf("nodeFrom: %d fragments exceed branching factor %d, splitting into groups", len(children), B)
	total := 0
	for _, c := range children {
		total += c.Lines()
	}
	chunk := total >> log2B
	if chunk < B {
		chunk = B
	}
	var groups [][]Text
	var cur []Text
	curLines := 0
	for _, c := range children {
		cur = append(cur, c)
		curLines += c.Lines()
		if curLines >= chunk && len(cur) >= 2 {
			groups = append(groups, cur)
			cur = nil
			curLines = 0
		}
	}
	if len(cur) > 0 {
		if len(groups) > 0 && len(cur) == 1 {
			groups[len(groups)-1] = append(groups[len(groups)-1], cur...)
		} else {
			groups = append(groups, cur)
		}
	}
	branches := make([]Text, len(groups))
	for i, g := range groups {
		branches[i] = nodeFrom(g)
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return newBranch(branches)
}

// mergeSmallLeaves concatenates adjacent leaves while their combined line
// count stays within B, matching "inline leaves <= B lines by concatenation".
func mergeSmallLeaves(children []Text) []Text {
	out := make([]Text, 0, len(children))
	for _, c := range children {
		if lf, ok := c.(*leaf); ok {
			if len(out) > 0 {
				if last, ok := out[len(out)-1].(*leaf); ok && last.Lines()+lf.Lines() <= B {
					merged := make([]string, 0, last.Lines()+lf.Lines())
					merged = append(merged, last.lines...)
					merged = append(merged, lf.lines...)
					out[len(out)-1] = &leaf{lines: merged}
					continue
				}
			}
		}
		out = append(out, c)
	}
	return out
}

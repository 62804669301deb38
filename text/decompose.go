package text

// decompose is the key primitive described in the spec: it appends nodes
// representing t's substring [from, to) onto *target. openLeft/openRight
// tell decompose that the corresponding edge of the produced content is
// interior to a larger splice and must be joined textually with whatever
// sits at that edge of *target (openLeft) or will be produced by the next
// decompose call (openRight) — this is how Replace shares unaffected
// subtrees by reference while still producing correctly joined lines at the
// splice boundaries.
func decompose(t Text, from, to int, target *[]Text, openLeft, openRight bool) {
	if from > to {
		return
	}
	if from == 0 && to == t.Length() && !openLeft && !openRight {
		*target = append(*target, t)
		return
	}
	switch n := t.(type) {
	case *leaf:
		lines := sliceLeafLines(n, from, to)
		joinLines(target, lines, openLeft, openRight)
	case *branch:
		type span struct {
			idx, lo, hi, start int
		}
		var spans []span
		pos := 0
		for i, c := range n.kids {
			start := pos
			end := pos + c.Length()
			lo, hi := from, to
			if lo < start {
				lo = start
			}
			if hi > end {
				hi = end
			}
			if lo <= hi {
				spans = append(spans, span{i, lo, hi, start})
			}
			pos = end + 1
		}
		for si, sp := range spans {
			childOpenLeft := openLeft && si == 0
			childOpenRight := openRight && si == len(spans)-1
			decompose(n.kids[sp.idx], sp.lo-sp.start, sp.hi-sp.start, target, childOpenLeft, childOpenRight)
		}
	}
}

// sliceLeafLines returns the line-string fragments of a leaf covering the
// local range [from, to), using the convention that a position exactly at a
// line boundary belongs to the end of the earlier line.
func sliceLeafLines(n *leaf, from, to int) []string {
	firstIdx, firstOff := -1, 0
	lastIdx, lastOff := -1, 0
	pos := 0
	for i, s := range n.lines {
		end := pos + len(s)
		if firstIdx < 0 && from <= end {
			firstIdx, firstOff = i, from-pos
		}
		if lastIdx < 0 && to <= end {
			lastIdx, lastOff = i, to-pos
		}
		pos = end + 1
		if firstIdx >= 0 && lastIdx >= 0 {
			break
		}
	}
	if firstIdx == lastIdx {
		return []string{n.lines[firstIdx][firstOff:lastOff]}
	}
	out := make([]string, 0, lastIdx-firstIdx+1)
	out = append(out, n.lines[firstIdx][firstOff:])
	for i := firstIdx + 1; i < lastIdx; i++ {
		out = append(out, n.lines[i])
	}
	out = append(out, n.lines[lastIdx][:lastOff])
	return out
}

// joinLines pushes a line run onto *target, merging its first line into the
// previous target entry when openLeft requests it. The run is realized as
// leaves of at most B lines each (never taken through the whole-subtree
// shortcut in decompose), so a later openLeft merge can always see a plain
// leaf to pop and rejoin.
func joinLines(target *[]Text, lines []string, openLeft, openRight bool) {
	_ = openRight
	if openLeft && len(*target) > 0 {
		prevIdx := len(*target) - 1
		prevLines := linesOfFragment((*target)[prevIdx])
		merged := make([]string, 0, len(prevLines)+len(lines)-1)
		merged = append(merged, prevLines[:len(prevLines)-1]...)
		merged = append(merged, prevLines[len(prevLines)-1]+lines[0])
		merged = append(merged, lines[1:]...)
		*target = (*target)[:prevIdx]
		lines = merged
	}
	for len(lines) > B {
		*target = append(*target, &leaf{lines: append([]string(nil), lines[:B]...)})
		lines = lines[B:]
	}
	*target = append(*target, &leaf{lines: append([]string(nil), lines...)})
}

// linesOfFragment returns a fragment's line strings. Fragments eligible for
// an openLeft merge are always leaves produced by joinLines itself.
func linesOfFragment(t Text) []string {
	if lf, ok := t.(*leaf); ok {
		return lf.lines
	}
	return []string{t.firstLine()}
}

// Replace returns a new Text with [from, to) replaced by ins.
func Replace(doc Text, from, to int, ins Text) (Text, error) {
	if from < 0 || from > to || to > doc.Length() {
		return nil, ErrIndexOutOfBounds
	}
	T().Debugf("Replace([%d,%d), ins.Length()=%d) on doc.Length()=%d", from, to, ins.Length(), doc.Length())
	var target []Text
	decompose(doc, 0, from, &target, false, true)
	decompose(ins, 0, ins.Length(), &target, true, true)
	decompose(doc, to, doc.Length(), &target, true, false)
	return assemble(target), nil
}

// Slice returns the substring text in [from, to).
func Slice(doc Text, from, to int) (Text, error) {
	if from < 0 || from > to || to > doc.Length() {
		return nil, ErrIndexOutOfBounds
	}
	if from == 0 && to == doc.Length() {
		return doc, nil
	}
	var target []Text
	decompose(doc, from, to, &target, false, false)
	return assemble(target), nil
}

// Append returns a new Text with other appended at the end of doc.
func Append(doc, other Text) (Text, error) {
	return Replace(doc, doc.Length(), doc.Length(), other)
}

func assemble(target []Text) Text {
	if len(target) == 0 {
		return Empty
	}
	return nodeFrom(target)
}

func (l *leaf) decompose(from, to int, target *[]Text, openLeft, openRight bool) {
	decompose(l, from, to, target, openLeft, openRight)
}

func (b *branch) decompose(from, to int, target *[]Text, openLeft, openRight bool) {
	decompose(b, from, to, target, openLeft, openRight)
}

func (l *leaf) Replace(from, to int, ins Text) (Text, error) { return Replace(l, from, to, ins) }
func (b *branch) Replace(from, to int, ins Text) (Text, error) {
	return Replace(b, from, to, ins)
}

func (l *leaf) Slice(from, to int) (Text, error) { return Slice(l, from, to) }
func (b *branch) Slice(from, to int) (Text, error) {
	return Slice(b, from, to)
}

func (l *leaf) Append(other Text) (Text, error) { return Append(l, other) }
func (b *branch) Append(other Text) (Text, error) {
	return Append(b, other)
}

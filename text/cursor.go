package text

import "strings"

// Direction selects which way a cursor walks a Text.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// RawCursor is a finite, non-restartable iterator over a Text's content,
// yielding alternating line-text chunks and "\n" line-break tokens (never
// a break before the first chunk or after the last). Bounded to [from, to)
// it behaves as the spec's PartialTextCursor.
type RawCursor struct {
	t            Text
	from, to     int
	dir          Direction
	cur          int
	pendingBreak bool
	done         bool

	value     string
	lineBreak bool
}

// NewCursor returns a cursor over the whole of t.
func NewCursor(t Text, dir Direction) *RawCursor {
	return NewRangeCursor(t, 0, t.Length(), dir)
}

// NewRangeCursor returns a cursor bounded to [from, to), walking in
// direction dir.
func NewRangeCursor(t Text, from, to int, dir Direction) *RawCursor {
	c := &RawCursor{t: t, from: from, to: to, dir: dir}
	if dir == Forward {
		c.cur = from
	} else {
		c.cur = to
	}
	if from > to {
		c.done = true
	}
	return c
}

// Value returns the chunk produced by the most recent successful Next.
func (c *RawCursor) Value() string { return c.value }

// LineBreak reports whether the most recent chunk was a line-break token.
func (c *RawCursor) LineBreak() bool { return c.lineBreak }

// Next advances the cursor. It returns false once exhausted; Next is not
// restartable after that.
func (c *RawCursor) Next() bool {
	if c.done {
		c.value, c.lineBreak = "", false
		return false
	}
	if c.dir == Forward {
		return c.nextForward()
	}
	return c.nextBackward()
}

func (c *RawCursor) nextForward() bool {
	if c.pendingBreak {
		c.pendingBreak = false
		c.value, c.lineBreak = "\n", true
		c.cur++
		if c.cur >= c.to {
			c.done = true
		}
		return true
	}
	if c.cur >= c.to {
		c.done = true
		return false
	}
	line, err := c.t.LineAt(c.cur)
	if err != nil {
		c.done = true
		return false
	}
	start := c.cur
	end := line.To
	if end > c.to {
		end = c.to
	}
	c.value = line.Text[start-line.From : end-line.From]
	c.lineBreak = false
	c.cur = end
	switch {
	case end == line.To && end < c.to:
		c.pendingBreak = true
	case c.cur >= c.to:
		c.done = true
	}
	return true
}

func (c *RawCursor) nextBackward() bool {
	if c.pendingBreak {
		c.pendingBreak = false
		c.value, c.lineBreak = "\n", true
		c.cur--
		if c.cur <= c.from {
			c.done = true
		}
		return true
	}
	if c.cur <= c.from {
		c.done = true
		return false
	}
	line, err := c.t.LineAt(c.cur)
	if err != nil {
		c.done = true
		return false
	}
	end := c.cur
	start := line.From
	if start < c.from {
		start = c.from
	}
	c.value = line.Text[start-line.From : end-line.From]
	c.lineBreak = false
	c.cur = start
	switch {
	case start == line.From && start > c.from:
		c.pendingBreak = true
	case c.cur <= c.from:
		c.done = true
	}
	return true
}

// LineCursor yields one logical line of text per Next call, inserting
// empty strings for empty lines, bounded to [from, to). An empty range
// (including the whole of an empty document) yields no line.
type LineCursor struct {
	raw   *RawCursor
	value string
	done  bool
}

// NewLineCursor returns a line cursor bounded to [from, to).
func NewLineCursor(t Text, from, to int) *LineCursor {
	return &LineCursor{raw: NewRangeCursor(t, from, to, Forward)}
}

// Value returns the line text produced by the most recent successful Next.
func (c *LineCursor) Value() string { return c.value }

// Next advances to the next line. It returns false once exhausted.
func (c *LineCursor) Next() bool {
	if c.done {
		return false
	}
	afterBreak := c.raw.LineBreak()
	var sb strings.Builder
	any := false
	for c.raw.Next() {
		any = true
		if c.raw.LineBreak() {
			c.value = sb.String()
			return true
		}
		sb.WriteString(c.raw.Value())
	}
	if !any {
		c.done = true
		if afterBreak {
			c.value = ""
			return true
		}
		return false
	}
	c.value = sb.String()
	c.done = true
	return true
}

func (l *leaf) Iter(dir Direction) *RawCursor        { return NewCursor(l, dir) }
func (l *leaf) IterRange(from, to int) *RawCursor    { return NewRangeCursor(l, from, to, Forward) }
func (l *leaf) IterLines(from, to int) *LineCursor   { return NewLineCursor(l, from, to) }
func (b *branch) Iter(dir Direction) *RawCursor      { return NewCursor(b, dir) }
func (b *branch) IterRange(from, to int) *RawCursor  { return NewRangeCursor(b, from, to, Forward) }
func (b *branch) IterLines(from, to int) *LineCursor { return NewLineCursor(b, from, to) }

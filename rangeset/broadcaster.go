package rangeset

import (
	"context"
	"errors"

	"github.com/guiguan/caster"
)

// UpdateNotice is published on a ChangeBroadcaster's channel whenever a
// RangeSet it tracks is replaced by a newer version, following the same
// fragment-ready broadcast pattern the teacher's async file loader uses
// for its leaf-loaded notifications.
type UpdateNotice struct {
	Set *RangeSet
}

// ChangeBroadcaster lets consumers of a RangeSet (e.g. a view layer redrawing
// decorations) subscribe to updates instead of polling. It wraps caster.Caster
// the way the teacher's textfile loader wraps it to publish loaded fragments.
type ChangeBroadcaster struct {
	cast *caster.Caster
}

// NewChangeBroadcaster creates a broadcaster with no history; subscribers
// only see updates published after they subscribe.
func NewChangeBroadcaster() *ChangeBroadcaster {
	return &ChangeBroadcaster{cast: caster.New(nil)}
}

// Publish announces that set is the current value, waking every live
// subscriber.
func (b *ChangeBroadcaster) Publish(set *RangeSet) {
	b.cast.Pub(UpdateNotice{Set: set})
}

// Subscribe returns a channel of UpdateNotice values and an unsubscribe
// function. Callers must invoke unsubscribe when done to release the
// channel.
func (b *ChangeBroadcaster) Subscribe(ctx context.Context) (<-chan interface{}, func(), error) {
	sub, ok := b.cast.Sub(ctx, 0)
	if !ok {
		return nil, nil, errors.New("rangeset: broadcaster is closed")
	}
	return sub, func() { b.cast.Unsub(sub) }, nil
}

// Close shuts the broadcaster down, closing every live subscriber channel.
func (b *ChangeBroadcaster) Close() {
	b.cast.Close()
}

// CompareEvent is published through a DiffBroadcaster for every difference
// Compare finds, letting several view-invalidation listeners subscribe to
// one diff pass instead of each being threaded through as its own
// RangeComparator.
type CompareEvent struct {
	From, To           int
	Point              bool
	OldValue, NewValue RangeValue
	ActiveOld, ActiveNew []RangeValue
}

// DiffBroadcaster is a RangeComparator that republishes every difference it
// receives as a CompareEvent, the same decoupled fan-out idiom
// ChangeBroadcaster uses for RangeSet updates. Pass one to Compare in place
// of a bespoke RangeComparator when more than one listener needs the diff.
type DiffBroadcaster struct {
	*ChangeBroadcaster
}

// NewDiffBroadcaster creates a DiffBroadcaster ready to be used as a
// RangeComparator.
func NewDiffBroadcaster() *DiffBroadcaster {
	return &DiffBroadcaster{ChangeBroadcaster: NewChangeBroadcaster()}
}

func (d *DiffBroadcaster) ComparePoint(from, to int, oldValue, newValue RangeValue) {
	d.cast.Pub(CompareEvent{From: from, To: to, Point: true, OldValue: oldValue, NewValue: newValue})
}

func (d *DiffBroadcaster) CompareRange(from, to int, activeOld, activeNew []RangeValue) {
	d.cast.Pub(CompareEvent{From: from, To: to, ActiveOld: activeOld, ActiveNew: activeNew})
}

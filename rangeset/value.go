package rangeset

import "github.com/codemirror/state/change"

// RangeValue is the tagged payload attached to a Range. The spec's
// `RangeSet<V>` generic parameter is flattened to this capability
// interface, following the spec's own design note that trait objects/dyn
// dispatch are an acceptable stand-in for monomorphized generics when a
// set mixes, or might mix, more than one concrete value type.
type RangeValue interface {
	// StartSide and EndSide are tie-break biases at the range's two
	// endpoints, used when ordering ranges that share a position.
	StartSide() int
	EndSide() int
	// MapMode controls how an empty range (or a range that becomes empty
	// under Map) is treated by position mapping.
	MapMode() change.MapMode
	// Point marks a value as meaningful when its range is empty, and as
	// atomic/shadowing with respect to overlapping non-point ranges.
	Point() bool
	// Eq reports structural equality with another value of the same kind.
	Eq(other RangeValue) bool
}

// BaseValue supplies the spec's defaults (start_side = end_side = 0,
// map_mode = TrackDel, point = false) for embedding into concrete value
// types. BaseValue.Eq is true only when other is itself a bare BaseValue:
// Go's method promotion passes the embedded BaseValue, not the outer
// value, so a type that embeds BaseValue without overriding Eq is never
// equal to a value of its own type, fields or no fields. Concrete types
// therefore override Eq themselves.
type BaseValue struct{}

func (BaseValue) StartSide() int          { return 0 }
func (BaseValue) EndSide() int            { return 0 }
func (BaseValue) MapMode() change.MapMode { return change.TrackDel }
func (BaseValue) Point() bool             { return false }

func (b BaseValue) Eq(other RangeValue) bool {
	return other != nil && other == RangeValue(b)
}

// Range is a single (from, to, value) entry, as produced by iteration and
// consumed by Of/RangeSetBuilder.Add. from == to marks an empty range.
// Map keeps an empty range when its position survives under the value's
// MapMode, and drops a range that collapses to empty only when
// StartSide() > 0 and EndSide() <= 0; Value.Point() is not consulted.
type Range struct {
	From, To int
	Value    RangeValue
}

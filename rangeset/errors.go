package rangeset

// RangeError is the error type used throughout the rangeset package.
type RangeError string

func (e RangeError) Error() string { return string(e) }

const (
	// ErrOutOfOrder is returned by RangeSetBuilder.Add when a range arrives
	// strictly before the last one added, not merely tied with it.
	ErrOutOfOrder = RangeError("rangeset: ranges must be added sorted by (from, startSide)")
	// ErrBuilderFinished is returned by Add or Finish on a builder that has
	// already been finished; builders are one-shot.
	ErrBuilderFinished = RangeError("rangeset: builder already finished")
)

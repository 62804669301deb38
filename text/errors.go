package text

// TextError is the error type used throughout the text package.
//
// The package's operations return these exported sentinels directly, so
// callers can compare against them with == or errors.Is.
type TextError string

func (e TextError) Error() string { return string(e) }

const (
	// ErrIndexOutOfBounds is returned by LineAt, Line, Replace, Slice and
	// SliceString when a position or line number is outside the document.
	ErrIndexOutOfBounds = TextError("text: index out of bounds")
	// ErrIllegalArguments is returned by Of when given malformed input, such
	// as an empty line array.
	ErrIllegalArguments = TextError("text: illegal arguments")
	// ErrMalformedJSON is returned by FromJSON when the input shape does not
	// match the documented Text JSON format (an array of line strings).
	ErrMalformedJSON = TextError("text: malformed JSON")
)

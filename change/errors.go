package change

// ChangeError is the error type used throughout the change package.
type ChangeError string

func (e ChangeError) Error() string { return string(e) }

const (
	// ErrLengthMismatch is returned by Apply, Compose and Of when a
	// ChangeSet's length does not match the document or accumulator it is
	// being combined with ("Mismatched change set length" in the spec).
	ErrLengthMismatch = ChangeError("change: mismatched change set length")
	// ErrRangeInvalid is returned by Of when a spec item has from > to, a
	// negative position, or a position beyond the document length.
	ErrRangeInvalid = ChangeError("change: invalid change range")
	// ErrIllegalSpec is returned by Of when given a spec value of a type it
	// does not recognize.
	ErrIllegalSpec = ChangeError("change: illegal change spec")
	// ErrMalformedJSON is returned by FromJSON when the input shape does not
	// match the documented ChangeSet/ChangeDesc JSON formats.
	ErrMalformedJSON = ChangeError("change: malformed JSON")
)

package finder

import "errors"

// Error definitions for the finder package. Returned errors wrap one of these
// so callers can classify failures with errors.Is.
var (
	// ErrInvalidInput reports a precondition violated by the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIOFailure reports that the inspected directory could not be traversed.
	ErrIOFailure = errors.New("io failure")

	// ErrPatternCompilation reports an exclusion pattern that is not a valid
	// regular expression or glob.
	ErrPatternCompilation = errors.New("pattern compilation failed")
)

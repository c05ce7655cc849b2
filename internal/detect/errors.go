package detect

import "errors"

// Error taxonomy. Callers match with errors.Is; everything else degrades
// toward a smaller or empty result set instead of failing the call.
var (
	// ErrInput indicates an unreadable, empty, or unsupported input image.
	ErrInput = errors.New("invalid input image")

	// ErrConfig indicates an invalid parameter combination.
	ErrConfig = errors.New("invalid detection parameters")

	// ErrProcessing indicates an unexpected internal failure not attributable
	// to a specific candidate.
	ErrProcessing = errors.New("detection processing failed")
)

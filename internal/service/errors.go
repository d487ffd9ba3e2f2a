package service

import "errors"

var (
	// ErrSolutionNotFound indicates the requested solution document does not exist.
	ErrSolutionNotFound = errors.New("solution not found")
	// ErrMissingIdentifier is returned before any store call when a required id is empty.
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrInvalidRating rejects star ratings outside 1..5.
	ErrInvalidRating = errors.New("estrelas must be between 1 and 5")
)

// ErrInvalidPayload wraps structural problems with otherwise valid JSON.
var ErrInvalidPayload = errors.New("invalid payload")

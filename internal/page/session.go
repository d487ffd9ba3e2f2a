// Package page holds the controllers behind the evaluation, history and
// context-menu views. Controllers receive their session and data access
// explicitly; nothing is shared between views.
package page

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrMissingSession means the view was opened without both identifiers.
	ErrMissingSession = errors.New("solution session is incomplete")
	// ErrSessionMismatch means the document id does not belong to the logical id.
	ErrSessionMismatch = errors.New("session identifiers refer to different solutions")
	// ErrInvalidInput wraps user-facing form validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// LandingPath is where views redirect when their session is incomplete.
const LandingPath = "/pages/menu"

// Session carries the identifiers of the solution a view works on.
type Session struct {
	SolutionID string
	DocumentID string
}

// NewSession trims both identifiers.
func NewSession(solutionID, documentID string) Session {
	return Session{
		SolutionID: strings.TrimSpace(solutionID),
		DocumentID: strings.TrimSpace(documentID),
	}
}

// Validate reports ErrMissingSession when either identifier is empty.
func (s Session) Validate() error {
	if s.SolutionID == "" || s.DocumentID == "" {
		return ErrMissingSession
	}
	return nil
}

// checkOwnership loads the solution header and confirms it carries the
// session's logical id. Writes run it before touching the store.
func checkOwnership(ctx context.Context, solutions SolutionReader, session Session) error {
	header, err := solutions.Get(ctx, session.DocumentID)
	if err != nil {
		return err
	}
	if header.SolutionID != session.SolutionID {
		return ErrSessionMismatch
	}
	return nil
}

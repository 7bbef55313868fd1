package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no attempt session exists for a token.
	ErrSessionNotFound = errors.New("attempt session not found")
	// ErrAttemptFinalized is returned when answers are edited after submission.
	ErrAttemptFinalized = errors.New("attempt already finalized")
	// ErrFetchTimeout is returned when an in-flight draw does not complete in time.
	ErrFetchTimeout = errors.New("question draw timed out")
	// ErrQuestionNotFound indicates an answer references a question outside the draw.
	ErrQuestionNotFound = errors.New("question not part of this draw")
	// ErrNotAuthenticated is returned when a call requires stored credentials.
	ErrNotAuthenticated = errors.New("not authenticated")
)

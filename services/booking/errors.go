package booking

import (
	"errors"
	"fmt"
)

// Failure classes for the booking + payment pipeline.
var (
	// ErrSessionMissing: no authenticated identity at finalization time.
	ErrSessionMissing = errors.New("no active session")

	// ErrDraftIncomplete: a required field is empty. No backend call is
	// made in this state.
	ErrDraftIncomplete = errors.New("booking draft is missing required fields")
)

// PersistenceError marks the worst failure mode: payment already captured
// but the booking POST did not succeed. Money may have moved, so it must be
// visibly distinguished from a fully-failed transaction and never retried
// silently.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("payment captured but booking not recorded: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

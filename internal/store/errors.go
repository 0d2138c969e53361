package store

import (
	"errors"
	"strings"
)

// Failure taxonomy surfaced to the API layer. Stores and the chore service
// return these (wrapped) so handlers can pick a status code with errors.Is.
var (
	// ErrNotFound: the target id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation: a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownMember: a member reference points at no existing row.
	ErrUnknownMember = errors.New("family member not found")
	// ErrDuplicateName: the member name uniqueness constraint was violated.
	ErrDuplicateName = errors.New("family member name already exists")
	// ErrAlreadyCompleted: completion was requested for a completed chore.
	ErrAlreadyCompleted = errors.New("chore already completed")
	// ErrClosed: the store was shut down before the call.
	ErrClosed = errors.New("store is closed")
	// ErrNotImplemented: a declared operation with no implementation yet.
	ErrNotImplemented = errors.New("not implemented")
)

// translate maps raw driver errors onto the taxonomy where the text is the
// only signal the driver gives us (modernc/sqlite has no typed errors for
// constraint classes).
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "database is closed"):
		return ErrClosed
	case strings.Contains(msg, "UNIQUE constraint failed: family_members.name"):
		return ErrDuplicateName
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrUnknownMember
	}
	return err
}

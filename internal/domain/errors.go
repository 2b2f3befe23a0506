package domain

import "errors"

var (
	// ErrInvalidTransition is returned when a session operation is not valid
	// from the current state. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrIndexOutOfRange is returned by positional history operations whose
	// index does not address an entry. Nothing is modified.
	ErrIndexOutOfRange = errors.New("history index out of range")

	ErrNotFound          = errors.New("not found")
	ErrProtectedCategory = errors.New("the default category cannot be deleted")
	ErrInvalidBreak      = errors.New("invalid break interval")
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidSettings   = errors.New("invalid settings")
)

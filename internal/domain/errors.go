package domain

import "errors"

// Error classes. Component errors wrap one of these so callers can tell
// bad input apart from an unreachable local service.
var (
	// ErrBadInput marks dataset or configuration problems the user can fix.
	ErrBadInput = errors.New("bad input")

	// ErrService marks a failed call to the embedding or generation service.
	ErrService = errors.New("service unavailable")

	// ErrStore marks an unreadable or corrupt vector store.
	ErrStore = errors.New("vector store error")
)

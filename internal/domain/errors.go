package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrSessionClosed = errors.New("session is closed")
	ErrEmptyDish     = errors.New("dish has no ingredients")
	ErrRejected      = errors.New("rejected by vessel")
)

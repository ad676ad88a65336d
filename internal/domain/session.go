package domain

import "time"

// Session is a cooking session at a single vessel. Each session owns
// exactly one builder for its lifetime.
type Session struct {
	ID        string
	Vessel    VesselKind
	Status    SessionStatus
	DishID    string // set once the session is completed
	StartedAt time.Time
	UpdatedAt time.Time
}

// SessionStatus tracks the lifecycle of a cooking session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionCompleted
	SessionAbandoned
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	case SessionAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Open reports whether the session still accepts ingredients.
func (s *Session) Open() bool {
	return s.Status == SessionActive
}

package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
)

// Capability is the unit of routing: every operation a session may invoke is
// either a read or a mutation.
type Capability int

const (
	CapabilityRead Capability = iota
	CapabilityWrite
)

func (c Capability) String() string {
	if c == CapabilityWrite {
		return "write"
	}
	return "read"
}

// Session is an authenticated principal. One session exists at a time; it is
// created only by a successful authentication and discarded on logout.
type Session struct {
	ID        uuid.UUID
	Rut       string
	Role      domain.Role
	StartedAt time.Time
}

// New creates a session for an authenticated principal.
func New(rut string, role domain.Role) *Session {
	return &Session{
		ID:        uuid.New(),
		Rut:       rut,
		Role:      role,
		StartedAt: time.Now(),
	}
}

// Authorize gates an operation on the session's role. Administrator sessions
// hold every capability; standard sessions are read-only, and mutation
// attempts are rejected here rather than hidden from the menu.
func (s *Session) Authorize(c Capability) error {
	if s == nil {
		return domain.ErrPermissionDenied
	}
	if c == CapabilityWrite && !s.Role.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated identity of a request. It is built from a verified access token
// and handed explicitly to the layers that need the user identity.
type Session struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// IsExpired reports whether the session is no longer valid at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

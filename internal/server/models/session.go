package models

import "time"

// Session is a persisted refresh-token record. A revoked session stays in
// the table for audit purposes but can never be used again; at most one
// non-revoked session exists per user at any time.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Active reports whether the session can still redeem its refresh token.
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && s.ExpiresAt.After(now)
}

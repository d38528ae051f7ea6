package models

import "time"

// Session is the authenticated state a client carries between requests.
type Session struct {
	ID            string
	Authenticated bool
	Email         string
	// ExpiresAt is zero for sessions that last until logout.
	ExpiresAt time.Time
}

package domain

import "time"

// OneTimeCode is an ephemeral credential scoped to an email and a purpose.
// Only the hash of the code is ever stored. A consumed or superseded code
// is deleted from the store, so at most one live code exists per
// (email, purpose) pair.
type OneTimeCode struct {
	Email     string
	Purpose   string
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
	IPAddress string
	UserAgent string
}

// Expired reports whether the code's validity window has passed.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

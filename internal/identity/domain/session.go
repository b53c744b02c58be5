package domain

import (
	"errors"
	"time"
)

// ErrSessionRevoked is returned by SessionRepository.Rotate when the session
// being rotated was already revoked, i.e. another rotation won the race.
var ErrSessionRevoked = errors.New("session already revoked")

// Session is a refresh-token grant. FamilyID is shared by every session
// descending from one original login; revoked rows keep their secret hash
// so a replay of a rotated-away token can be recognized.
type Session struct {
	ID         string
	AccountID  string
	SecretHash string
	FamilyID   string
	ExpiresAt  time.Time
	Revoked    bool
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

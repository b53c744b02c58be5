package domain

import (
	"context"
	"time"
)

// AccountRepository persists identity records.
type AccountRepository interface {
	GetByEmailAndRole(ctx context.Context, email, role string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error

	// RecordFailedLogin atomically increments the failure counter and, once
	// it reaches maxAttempts, sets lock_until = now + lockFor. Returns the
	// post-increment state.
	RecordFailedLogin(ctx context.Context, id string, maxAttempts int, lockFor time.Duration) (*LoginFailure, error)

	// RecordSuccessfulLogin resets the failure counter, clears any lock and
	// stamps last_login_at.
	RecordSuccessfulLogin(ctx context.Context, id string) error

	MarkEmailVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SessionRepository persists refresh-token sessions and their rotation
// families.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// ActiveByAccount returns unrevoked, unexpired sessions, newest first.
	ActiveByAccount(ctx context.Context, accountID string) ([]*Session, error)

	// RevokedByAccount returns revoked sessions whose expiry has not yet
	// passed, newest first. These are the replay-detection candidates.
	RevokedByAccount(ctx context.Context, accountID string) ([]*Session, error)

	// Rotate atomically revokes the old session and inserts next, which
	// must carry the same family id. Returns ErrSessionRevoked when the
	// old session was already revoked.
	Rotate(ctx context.Context, oldSessionID string, next *Session) error

	Revoke(ctx context.Context, sessionID string) error
	RevokeAllForAccount(ctx context.Context, accountID string) error

	// PruneActive revokes the oldest active sessions beyond keep.
	PruneActive(ctx context.Context, accountID string, keep int) error

	// DeleteExpired removes sessions past their expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPStore persists one-time codes. Put replaces any live code for the same
// (email, purpose) pair; expiry is enforced by the store itself.
type OTPStore interface {
	Put(ctx context.Context, code *OneTimeCode) error
	Get(ctx context.Context, email, purpose string) (*OneTimeCode, error)
	IncrementAttempts(ctx context.Context, email, purpose string) (int, error)
	Delete(ctx context.Context, email, purpose string) error
}

// ConsentRepository is the read-only view of the externally managed consent
// grants consulted by the consent gate.
type ConsentRepository interface {
	// HasActiveGrant reports whether an active, unexpired grant exists for
	// (patient, clinician) or (patient, clinician's facility).
	HasActiveGrant(ctx context.Context, patientID, clinicianID, facilityID string) (bool, error)
}

// Notifier delivers one-time codes out of band. Delivery is best-effort;
// failures are logged by callers and never fail the triggering operation.
type Notifier interface {
	SendCode(ctx context.Context, to, purpose, code, recipientName string) error
}

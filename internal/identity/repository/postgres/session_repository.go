package postgres

import (
	"context"
	"fmt"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, account_id, secret_hash, family_id, expires_at,
		revoked, revoked_at, last_used_at, ip_address, user_agent, created_at`

func scanSessions(rows pgx.Rows) ([]*domain.Session, error) {
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		err := rows.Scan(&s.ID, &s.AccountID, &s.SecretHash, &s.FamilyID, &s.ExpiresAt,
			&s.Revoked, &s.RevokedAt, &s.LastUsedAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (id, account_id, secret_hash, family_id, expires_at,
			revoked, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.AccountID, s.SecretHash, s.FamilyID, s.ExpiresAt,
		s.Revoked, s.IPAddress, s.UserAgent, s.CreatedAt)

	return err
}

func (r *SessionRepository) ActiveByAccount(ctx context.Context, accountID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE account_id = $1 AND revoked = FALSE AND expires_at > now()
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sessions: %w", err)
	}

	return scanSessions(rows)
}

func (r *SessionRepository) RevokedByAccount(ctx context.Context, accountID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE account_id = $1 AND revoked = TRUE AND expires_at > now()
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revoked sessions: %w", err)
	}

	return scanSessions(rows)
}

// Rotate revokes the old session and inserts its same-family successor in
// one transaction. The revoked = FALSE guard makes concurrent rotations of
// the same session resolve to exactly one winner; the loser gets
// domain.ErrSessionRevoked.
func (r *SessionRepository) Rotate(ctx context.Context, oldSessionID string, next *domain.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE sessions
		SET revoked = TRUE, revoked_at = now(), last_used_at = now()
		WHERE id = $1 AND revoked = FALSE
	`, oldSessionID)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionRevoked
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sessions (id, account_id, secret_hash, family_id, expires_at,
			revoked, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, next.ID, next.AccountID, next.SecretHash, next.FamilyID, next.ExpiresAt,
		next.Revoked, next.IPAddress, next.UserAgent, next.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store rotated session: %w", err)
	}

	return tx.Commit(ctx)
}

// Revoke marks one session revoked. Already-revoked sessions are a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID string) error {
	query := `
		UPDATE sessions
		SET revoked = TRUE, revoked_at = now()
		WHERE id = $1 AND revoked = FALSE
	`
	_, err := r.db.Exec(ctx, query, sessionID)

	return err
}

func (r *SessionRepository) RevokeAllForAccount(ctx context.Context, accountID string) error {
	query := `
		UPDATE sessions
		SET revoked = TRUE, revoked_at = now()
		WHERE account_id = $1 AND revoked = FALSE
	`
	_, err := r.db.Exec(ctx, query, accountID)

	return err
}

func (r *SessionRepository) PruneActive(ctx context.Context, accountID string, keep int) error {
	query := `
		UPDATE sessions
		SET revoked = TRUE, revoked_at = now()
		WHERE id IN (
			SELECT id FROM sessions
			WHERE account_id = $1 AND revoked = FALSE AND expires_at > now()
			ORDER BY created_at DESC
			OFFSET $2
		)
	`
	_, err := r.db.Exec(ctx, query, accountID, keep)

	return err
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

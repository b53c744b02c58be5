package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, role, password_hash, is_active, email_verified,
		failed_attempts, lock_until, last_login_at,
		COALESCE(facility_id::text, ''), COALESCE(clinician_id::text, ''), COALESCE(patient_id::text, ''),
		created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Role, &a.PasswordHash, &a.IsActive, &a.EmailVerified,
		&a.FailedAttempts, &a.LockUntil, &a.LastLoginAt,
		&a.FacilityID, &a.ClinicianID, &a.PatientID,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmailAndRole(ctx context.Context, email, role string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1 AND role = $2
		LIMIT 1;
	`
	return scanAccount(r.db.QueryRow(ctx, query, email, role))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
		LIMIT 1;
	`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, role, password_hash, is_active, email_verified,
			failed_attempts, facility_id, clinician_id, patient_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			NULLIF($8, '')::uuid, NULLIF($9, '')::uuid, NULLIF($10, '')::uuid, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Email, a.Role, a.PasswordHash, a.IsActive, a.EmailVerified,
		a.FailedAttempts, a.FacilityID, a.ClinicianID, a.PatientID, a.CreatedAt, a.UpdatedAt)

	return err
}

// RecordFailedLogin bumps the failure counter in a single UPDATE so a burst
// of concurrent failures cannot undercount past the lock threshold.
func (r *AccountRepository) RecordFailedLogin(ctx context.Context, id string, maxAttempts int, lockFor time.Duration) (*domain.LoginFailure, error) {
	query := `
		UPDATE accounts
		SET failed_attempts = failed_attempts + 1,
			lock_until = CASE WHEN failed_attempts + 1 >= $2 THEN now() + $3 ELSE lock_until END,
			updated_at = now()
		WHERE id = $1
		RETURNING failed_attempts, lock_until;
	`
	var f domain.LoginFailure
	err := r.db.QueryRow(ctx, query, id, maxAttempts, lockFor).Scan(&f.FailedAttempts, &f.LockUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to record login failure: %w", err)
	}

	return &f, nil
}

func (r *AccountRepository) RecordSuccessfulLogin(ctx context.Context, id string) error {
	query := `
		UPDATE accounts
		SET failed_attempts = 0, lock_until = NULL, last_login_at = now(), updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)

	return err
}

func (r *AccountRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE accounts
		SET email_verified = TRUE, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)

	return err
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, failed_attempts = 0, lock_until = NULL, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, passwordHash)

	return err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/dto"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/observability"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/google/uuid"
)

// AuthService composes the credential verifier, lockout policy, OTP manager,
// session store and token issuer into the login, refresh and logout flows.
type AuthService struct {
	accounts          domain.AccountRepository
	sessions          domain.SessionRepository
	otp               OTPManager
	tokens            TokenGenerator
	notifier          domain.Notifier
	log               logging.Logger
	maxActiveSessions int
}

func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository,
	otp OTPManager, tokens TokenGenerator, notifier domain.Notifier,
	log logging.Logger, maxActiveSessions int) *AuthService {
	return &AuthService{
		accounts:          accounts,
		sessions:          sessions,
		otp:               otp,
		tokens:            tokens,
		notifier:          notifier,
		log:               log,
		maxActiveSessions: maxActiveSessions,
	}
}

// Login authenticates by (email, role, password). The gate order is fixed:
// lockout first (a locked account is rejected before any hash work), then
// the credential, then the email-verified and active flags. Only credential
// mismatches count toward lockout.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	account, err := s.accounts.GetByEmailAndRole(ctx, email, input.Role)
	if err != nil {
		return nil, err
	}
	if account == nil {
		observability.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, autherror.ErrInvalidCredentials
	}

	now := time.Now()
	if account.Locked(now) {
		observability.LoginAttempts.WithLabelValues("locked").Inc()
		return nil, lockedError(*account.LockUntil, now)
	}

	if !CheckPassword(account.PasswordHash, input.Password) {
		failure, recErr := s.accounts.RecordFailedLogin(ctx, account.ID, constant.MaxFailedLogins, constant.LockDuration)
		if recErr != nil {
			return nil, recErr
		}

		if failure.LockUntil != nil && failure.LockUntil.After(now) {
			observability.LoginAttempts.WithLabelValues("locked").Inc()
			return nil, lockedError(*failure.LockUntil, now)
		}

		observability.LoginAttempts.WithLabelValues("invalid_credentials").Inc()

		return nil, autherror.ErrInvalidCredentials.WithDetails(map[string]any{
			"attempts_remaining": constant.MaxFailedLogins - failure.FailedAttempts,
		})
	}

	if !account.EmailVerified {
		observability.LoginAttempts.WithLabelValues("unverified").Inc()
		return nil, autherror.ErrEmailNotVerified
	}
	if !account.IsActive {
		observability.LoginAttempts.WithLabelValues("inactive").Inc()
		return nil, autherror.ErrAccountInactive
	}

	if err := s.accounts.RecordSuccessfulLogin(ctx, account.ID); err != nil {
		return nil, err
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()

	return s.generateAuthResponse(ctx, account, input.IPAddress, input.UserAgent)
}

// RequestLoginOTP issues a login code for an existing, verified, active
// account. It reports success regardless of whether the account exists, so
// the endpoint cannot be used to enumerate emails.
func (s *AuthService) RequestLoginOTP(ctx context.Context, input dto.RequestOTPInput) error {
	email := NormalizeEmail(input.Email)

	account, err := s.accounts.GetByEmailAndRole(ctx, email, input.Role)
	if err != nil {
		return err
	}
	if account == nil || !account.EmailVerified || !account.IsActive {
		return nil
	}

	code, err := s.otp.Create(ctx, email, constant.OTPPurposeLogin, OTPOrigin{
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return err
	}

	s.dispatchCode(ctx, email, constant.OTPPurposeLogin, code)

	return nil
}

// LoginWithOTP authenticates with a login one-time code instead of a
// password. Lockout bookkeeping does not apply; the code carries its own
// attempt cap.
func (s *AuthService) LoginWithOTP(ctx context.Context, input dto.OTPLoginInput) (*dto.AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	if err := s.otp.Verify(ctx, email, input.Code, constant.OTPPurposeLogin); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmailAndRole(ctx, email, input.Role)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrInvalidCredentials
	}
	if !account.EmailVerified {
		return nil, autherror.ErrEmailNotVerified
	}
	if !account.IsActive {
		return nil, autherror.ErrAccountInactive
	}

	if err := s.accounts.RecordSuccessfulLogin(ctx, account.ID); err != nil {
		return nil, err
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()

	return s.generateAuthResponse(ctx, account, input.IPAddress, input.UserAgent)
}

// Refresh exchanges a still-valid composite refresh credential for a new
// token pair, rotating the underlying session within its family. Replay of
// a rotated-away credential revokes every session of the account.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AuthResponse, error) {
	_, signed, err := SplitRefreshCredential(input.RefreshToken)
	if err != nil {
		return nil, autherror.ErrInvalidSession
	}

	claims, err := s.tokens.VerifyRefreshToken(signed)
	if err != nil {
		return nil, autherror.ErrInvalidSession
	}

	current, err := s.verifySession(ctx, claims.AccountID, signed)
	if err != nil {
		return nil, err
	}

	// The session id inside the composite credential is not signed; the
	// session is located through the verified account claim instead, which
	// also guarantees the rotated session belongs to the token's account.
	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, autherror.ErrInvalidSession
	}

	newSessionID := uuid.NewString()

	accessToken, refreshToken, err := s.tokens.Generate(account, PermissionsFor(account.Role), newSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	secretHash, err := HashRefreshSecret(refreshToken)
	if err != nil {
		return nil, err
	}

	next := &domain.Session{
		ID:         newSessionID,
		AccountID:  account.ID,
		SecretHash: secretHash,
		FamilyID:   current.FamilyID,
		ExpiresAt:  time.Now().Add(s.tokens.RefreshTokenTTL()),
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		CreatedAt:  time.Now(),
	}

	if err := s.sessions.Rotate(ctx, current.ID, next); err != nil {
		if errors.Is(err, domain.ErrSessionRevoked) {
			// A concurrent refresh won the race. Ambiguity between a stale
			// client and a stolen token is resolved in favor of safety.
			return nil, s.handleReplay(ctx, account.ID)
		}
		return nil, err
	}

	observability.TokenRotations.Inc()

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: BuildRefreshCredential(newSessionID, refreshToken),
		ExpiresIn:    int(s.tokens.AccessTokenTTL().Seconds()),
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.Role,
		SessionID:    newSessionID,
	}, nil
}

// verifySession scans the account's active sessions for one matching the
// presented secret, newest first. A match among revoked sessions means the
// token was already rotated away: a replay.
func (s *AuthService) verifySession(ctx context.Context, accountID, signed string) (*domain.Session, error) {
	active, err := s.sessions.ActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, session := range active {
		if CheckRefreshSecret(session.SecretHash, signed) {
			return session, nil
		}
	}

	revoked, err := s.sessions.RevokedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, session := range revoked {
		if CheckRefreshSecret(session.SecretHash, signed) {
			return nil, s.handleReplay(ctx, accountID)
		}
	}

	// "Expired" and "never existed" are deliberately indistinguishable.
	return nil, autherror.ErrInvalidSession
}

// handleReplay revokes every session of the account, across all families,
// and returns the replay error.
func (s *AuthService) handleReplay(ctx context.Context, accountID string) error {
	observability.TokenReuseIncidents.Inc()
	s.log.Warn(ctx, "refresh token replay detected, revoking all sessions", "account_id", accountID)

	if err := s.sessions.RevokeAllForAccount(ctx, accountID); err != nil {
		return err
	}

	return autherror.ErrTokenReuseDetected
}

// Logout revokes the session named by the composite credential. Garbled
// input is not an error; logout is best-effort by design.
func (s *AuthService) Logout(ctx context.Context, input dto.LogoutInput) {
	sessionID, _, err := SplitRefreshCredential(input.RefreshToken)
	if err != nil {
		return
	}

	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		s.log.Warn(ctx, "failed to revoke session on logout", "session_id", sessionID, "err", err)
	}
}

// ForceLogout revokes every session of the given account.
func (s *AuthService) ForceLogout(ctx context.Context, accountID string) error {
	return s.sessions.RevokeAllForAccount(ctx, accountID)
}

// generateAuthResponse creates the session and signs the token pair.
func (s *AuthService) generateAuthResponse(ctx context.Context, account *domain.Account, ip, userAgent string) (*dto.AuthResponse, error) {
	sessionID := uuid.NewString()

	accessToken, refreshToken, err := s.tokens.Generate(account, PermissionsFor(account.Role), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	secretHash, err := HashRefreshSecret(refreshToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.sessions.Create(ctx, &domain.Session{
		ID:         sessionID,
		AccountID:  account.ID,
		SecretHash: secretHash,
		FamilyID:   uuid.NewString(),
		ExpiresAt:  now.Add(s.tokens.RefreshTokenTTL()),
		IPAddress:  ip,
		UserAgent:  userAgent,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.PruneActive(ctx, account.ID, s.maxActiveSessions); err != nil {
		s.log.Warn(ctx, "failed to prune surplus sessions", "account_id", account.ID, "err", err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: BuildRefreshCredential(sessionID, refreshToken),
		ExpiresIn:    int(s.tokens.AccessTokenTTL().Seconds()),
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.Role,
		SessionID:    sessionID,
	}, nil
}

// dispatchCode hands a plaintext code to the delivery collaborator.
// Delivery failure never fails the triggering call.
func (s *AuthService) dispatchCode(ctx context.Context, email, purpose, code string) {
	if err := s.notifier.SendCode(ctx, email, purpose, code, ""); err != nil {
		s.log.Warn(ctx, "code delivery failed", "purpose", purpose, "err", err)
	}
}

// lockedError builds the ACCOUNT_LOCKED error with minutes remaining.
func lockedError(until, now time.Time) error {
	minutes := int(math.Ceil(until.Sub(now).Minutes()))

	return autherror.ErrAccountLocked.WithDetails(map[string]any{
		"retry_after_minutes": minutes,
	})
}

// NormalizeEmail lowercases and trims an email address. Accounts store the
// normalized form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

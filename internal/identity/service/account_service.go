package service

import (
	"context"
	"time"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/dto"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/google/uuid"
)

// AccountService owns registration, email verification and password reset.
type AccountService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	otp      OTPManager
	notifier domain.Notifier
	log      logging.Logger
}

func NewAccountService(accounts domain.AccountRepository, sessions domain.SessionRepository,
	otp OTPManager, notifier domain.Notifier, log logging.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: sessions,
		otp:      otp,
		notifier: notifier,
		log:      log,
	}
}

// Register creates a patient account. Clinician and admin accounts are
// provisioned through the admin surface, never self-registered. The new
// account stays email-unverified until the emailed code is confirmed.
func (s *AccountService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	email := NormalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = constant.RolePatient
	}
	if role != constant.RolePatient {
		return nil, autherror.New(autherror.CodeInvalidInput, "self-registration is limited to the patient role")
	}

	existing, err := s.accounts.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:            uuid.NewString(),
		Email:         email,
		Role:          role,
		PasswordHash:  passwordHash,
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	code, err := s.otp.Create(ctx, email, constant.OTPPurposeEmailVerification, OTPOrigin{})
	if err != nil {
		s.log.Warn(ctx, "failed to create verification code", "err", err)
		return account, nil
	}
	if err := s.notifier.SendCode(ctx, email, constant.OTPPurposeEmailVerification, code, input.FullName); err != nil {
		s.log.Warn(ctx, "verification code delivery failed", "err", err)
	}

	return account, nil
}

// VerifyEmail consumes an email-verification code and flips the flag.
func (s *AccountService) VerifyEmail(ctx context.Context, input dto.VerifyEmailInput) error {
	email := NormalizeEmail(input.Email)

	if err := s.otp.Verify(ctx, email, input.Code, constant.OTPPurposeEmailVerification); err != nil {
		return err
	}

	role := input.Role
	if role == "" {
		role = constant.RolePatient
	}

	account, err := s.accounts.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrOTPInvalidOrExpired
	}

	return s.accounts.MarkEmailVerified(ctx, account.ID)
}

// RequestPasswordReset issues a reset code when the account exists. Callers
// always see a generic success, so the endpoint reveals nothing about
// which emails are registered.
func (s *AccountService) RequestPasswordReset(ctx context.Context, input dto.RequestPasswordResetInput) error {
	email := NormalizeEmail(input.Email)

	account, err := s.accounts.GetByEmailAndRole(ctx, email, input.Role)
	if err != nil {
		return err
	}
	if account == nil || !account.IsActive {
		return nil
	}

	code, err := s.otp.Create(ctx, email, constant.OTPPurposePasswordReset, OTPOrigin{
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return err
	}

	if err := s.notifier.SendCode(ctx, email, constant.OTPPurposePasswordReset, code, ""); err != nil {
		s.log.Warn(ctx, "reset code delivery failed", "err", err)
	}

	return nil
}

// ResetPassword consumes a reset code, replaces the password hash, clears
// any lockout state and revokes every session of the account.
func (s *AccountService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	email := NormalizeEmail(input.Email)

	if err := s.otp.Verify(ctx, email, input.Code, constant.OTPPurposePasswordReset); err != nil {
		return err
	}

	account, err := s.accounts.GetByEmailAndRole(ctx, email, input.Role)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrOTPInvalidOrExpired
	}

	passwordHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, passwordHash); err != nil {
		return err
	}

	// A reset is a credential change: no previously issued refresh token
	// may survive it.
	if err := s.sessions.RevokeAllForAccount(ctx, account.ID); err != nil {
		return err
	}

	return nil
}

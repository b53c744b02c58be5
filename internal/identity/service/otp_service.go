package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/observability"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
)

//go:generate mockgen -destination=../../mocks/mock_otp_manager.go -package=mocks github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service OTPManager

// OTPManager is the one-time-code contract the orchestrators depend on.
type OTPManager interface {
	Create(ctx context.Context, email, purpose string, origin OTPOrigin) (string, error)
	Verify(ctx context.Context, email, code, purpose string) error
}

// OTPService issues and verifies one-time codes. Codes are stored hashed;
// the plaintext is returned once to the caller, who hands it to the
// delivery collaborator.
type OTPService struct {
	store domain.OTPStore
}

func NewOTPService(store domain.OTPStore) *OTPService {
	return &OTPService{store: store}
}

// OTPOrigin is the request metadata recorded with a code.
type OTPOrigin struct {
	IPAddress string
	UserAgent string
}

// Create generates a fresh 6-digit code for (email, purpose), replacing any
// previous unused code for the pair, and returns the plaintext.
func (s *OTPService) Create(ctx context.Context, email, purpose string, origin OTPOrigin) (string, error) {
	if !constant.ValidOTPPurpose(purpose) {
		return "", fmt.Errorf("unknown otp purpose %q", purpose)
	}

	code, err := randomCode()
	if err != nil {
		return "", err
	}

	hash, err := HashOTP(code)
	if err != nil {
		return "", err
	}

	now := time.Now()
	err = s.store.Put(ctx, &domain.OneTimeCode{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: now.Add(constant.OTPTTL),
		Attempts:  0,
		CreatedAt: now,
		IPAddress: origin.IPAddress,
		UserAgent: origin.UserAgent,
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks code against the live one-time code for (email, purpose).
// A correct code is consumed; verifying it again reports the same error as
// a code that never existed.
func (s *OTPService) Verify(ctx context.Context, email, code, purpose string) error {
	stored, err := s.store.Get(ctx, email, purpose)
	if err != nil {
		return err
	}
	if stored == nil || stored.Expired(time.Now()) {
		observability.OTPVerifications.WithLabelValues("expired").Inc()
		return autherror.ErrOTPInvalidOrExpired
	}

	if stored.Attempts >= constant.OTPMaxAttempts {
		observability.OTPVerifications.WithLabelValues("exhausted").Inc()
		return autherror.ErrOTPMaxAttemptsExceeded
	}

	if !CheckOTP(stored.CodeHash, code) {
		attempts, incErr := s.store.IncrementAttempts(ctx, email, purpose)
		if incErr != nil {
			return incErr
		}
		if attempts == 0 {
			// Code expired between the read and the increment.
			observability.OTPVerifications.WithLabelValues("expired").Inc()
			return autherror.ErrOTPInvalidOrExpired
		}

		observability.OTPVerifications.WithLabelValues("incorrect").Inc()

		remaining := constant.OTPMaxAttempts - attempts
		if remaining < 0 {
			remaining = 0
		}

		return autherror.ErrOTPIncorrect.WithDetails(map[string]any{
			"attempts_remaining": remaining,
		})
	}

	if err := s.store.Delete(ctx, email, purpose); err != nil {
		return err
	}

	observability.OTPVerifications.WithLabelValues("success").Inc()

	return nil
}

// randomCode draws a uniformly random code in [100000, 999999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

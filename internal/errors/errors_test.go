package errors_test

import (
	"errors"
	"fmt"
	"testing"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	detailed := autherror.ErrAccountLocked.WithDetails(map[string]any{"retry_after_minutes": 12})

	assert.ErrorIs(t, detailed, autherror.ErrAccountLocked)
	assert.NotErrorIs(t, detailed, autherror.ErrInvalidCredentials)
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", autherror.ErrEmailNotVerified)

	assert.ErrorIs(t, wrapped, autherror.ErrEmailNotVerified)

	var appErr *autherror.AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, autherror.CodeEmailNotVerified, appErr.Code)
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	_ = autherror.ErrInvalidCredentials.WithDetails(map[string]any{"attempts_remaining": 1})

	assert.Nil(t, autherror.ErrInvalidCredentials.Details)
}

func TestInvalidSessionSharesCredentialsCode(t *testing.T) {
	// A dead session and a wrong password look identical to clients.
	assert.ErrorIs(t, autherror.ErrInvalidSession, autherror.ErrInvalidCredentials)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "ACCOUNT_LOCKED: account temporarily locked", autherror.ErrAccountLocked.Error())
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	redisrepo "github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/repository/redis"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
)

func newStore(t *testing.T) (*redisrepo.OTPStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisrepo.NewOTPStore(client), mr
}

func testCode(email, purpose string) *domain.OneTimeCode {
	now := time.Now()
	return &domain.OneTimeCode{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  "bcrypt-hash",
		Attempts:  0,
		ExpiresAt: now.Add(constant.OTPTTL),
		CreatedAt: now,
		IPAddress: "10.0.0.1",
		UserAgent: "agent",
	}
}

func TestOTPStore_PutGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testCode("a@x.com", constant.OTPPurposeLogin)))

	got, err := store.Get(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, constant.OTPPurposeLogin, got.Purpose)
	assert.Equal(t, "bcrypt-hash", got.CodeHash)
	assert.Equal(t, 0, got.Attempts)
	assert.Equal(t, "10.0.0.1", got.IPAddress)
	assert.Equal(t, "agent", got.UserAgent)
	assert.WithinDuration(t, time.Now().Add(constant.OTPTTL), got.ExpiresAt, 2*time.Second)
}

func TestOTPStore_GetMissingReturnsNil(t *testing.T) {
	store, _ := newStore(t)

	got, err := store.Get(context.Background(), "nobody@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOTPStore_PutReplacesPriorCode(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	first := testCode("a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, store.Put(ctx, first))

	_, err := store.IncrementAttempts(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)

	second := testCode("a@x.com", constant.OTPPurposeLogin)
	second.CodeHash = "replacement-hash"
	require.NoError(t, store.Put(ctx, second))

	got, err := store.Get(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	require.NotNil(t, got)

	// A re-request yields a fresh code with a reset attempt counter.
	assert.Equal(t, "replacement-hash", got.CodeHash)
	assert.Equal(t, 0, got.Attempts)
}

func TestOTPStore_CodesArePerPurpose(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	login := testCode("a@x.com", constant.OTPPurposeLogin)
	login.CodeHash = "login-hash"
	require.NoError(t, store.Put(ctx, login))

	reset := testCode("a@x.com", constant.OTPPurposePasswordReset)
	reset.CodeHash = "reset-hash"
	require.NoError(t, store.Put(ctx, reset))

	got, err := store.Get(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "login-hash", got.CodeHash)
}

func TestOTPStore_ExpiryEvictsCode(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testCode("a@x.com", constant.OTPPurposeLogin)))

	mr.FastForward(constant.OTPTTL + time.Second)

	got, err := store.Get(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOTPStore_IncrementAttempts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testCode("a@x.com", constant.OTPPurposeLogin)))

	n, err := store.IncrementAttempts(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.IncrementAttempts(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOTPStore_IncrementAttemptsMissingKey(t *testing.T) {
	store, _ := newStore(t)

	// The counter must not come back to life after the code expired.
	n, err := store.IncrementAttempts(context.Background(), "nobody@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOTPStore_Delete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testCode("a@x.com", constant.OTPPurposeLogin)))
	require.NoError(t, store.Delete(ctx, "a@x.com", constant.OTPPurposeLogin))

	got, err := store.Get(ctx, "a@x.com", constant.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent code is a no-op.
	assert.NoError(t, store.Delete(ctx, "a@x.com", constant.OTPPurposeLogin))
}

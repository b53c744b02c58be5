// Package redis implements the one-time-code store on Redis. Each
// (purpose, email) pair maps to a single hash whose TTL enforces code
// expiry, so a new code always replaces the previous unused one and
// expired codes vanish without a sweep.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/go-redis/redis/v8"
)

type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func key(email, purpose string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

// incrAttempts bumps the attempt counter only while the code still exists,
// so a stray increment cannot resurrect an expired key.
var incrAttempts = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "attempts", 1)
`)

func (s *OTPStore) Put(ctx context.Context, code *domain.OneTimeCode) error {
	k := key(code.Email, code.Purpose)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k, map[string]interface{}{
		"code_hash":  code.CodeHash,
		"attempts":   code.Attempts,
		"expires_at": code.ExpiresAt.Unix(),
		"created_at": code.CreatedAt.Unix(),
		"ip_address": code.IPAddress,
		"user_agent": code.UserAgent,
	})
	pipe.ExpireAt(ctx, k, code.ExpiresAt)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store one-time code: %w", err)
	}

	return nil
}

// Get returns the live code for (email, purpose), or nil when none exists.
func (s *OTPStore) Get(ctx context.Context, email, purpose string) (*domain.OneTimeCode, error) {
	fields, err := s.client.HGetAll(ctx, key(email, purpose)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read one-time code: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	expiresAt, _ := strconv.ParseInt(fields["expires_at"], 10, 64)
	createdAt, _ := strconv.ParseInt(fields["created_at"], 10, 64)

	return &domain.OneTimeCode{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  fields["code_hash"],
		Attempts:  attempts,
		ExpiresAt: time.Unix(expiresAt, 0),
		CreatedAt: time.Unix(createdAt, 0),
		IPAddress: fields["ip_address"],
		UserAgent: fields["user_agent"],
	}, nil
}

// IncrementAttempts atomically bumps the attempt counter. A return of 0
// means the code no longer exists.
func (s *OTPStore) IncrementAttempts(ctx context.Context, email, purpose string) (int, error) {
	n, err := incrAttempts.Run(ctx, s.client, []string{key(email, purpose)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if n < 0 {
		return 0, nil
	}

	return int(n), nil
}

func (s *OTPStore) Delete(ctx context.Context, email, purpose string) error {
	if err := s.client.Del(ctx, key(email, purpose)).Err(); err != nil {
		return fmt.Errorf("failed to delete one-time code: %w", err)
	}

	return nil
}

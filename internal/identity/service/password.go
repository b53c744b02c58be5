package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password at the password cost factor.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constant.PasswordHashCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. bcrypt's
// own comparison is used; plaintexts are never re-derived or compared
// directly.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashOTP hashes a one-time code at the cheaper secret cost factor.
func HashOTP(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), constant.SecretHashCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckOTP reports whether code matches the stored hash.
func CheckOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// refreshDigest reduces a signed refresh token to a fixed-length digest.
// bcrypt ignores input beyond 72 bytes and two signed tokens share a long
// common prefix, so the token is digested before hashing.
func refreshDigest(token string) []byte {
	sum := sha256.Sum256([]byte(token))

	return []byte(hex.EncodeToString(sum[:]))
}

// HashRefreshSecret hashes a signed refresh token for session storage.
func HashRefreshSecret(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(refreshDigest(token), constant.SecretHashCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckRefreshSecret reports whether token matches a stored session hash.
func CheckRefreshSecret(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), refreshDigest(token)) == nil
}

package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service TokenGenerator

import (
	"fmt"
	"strings"
	"time"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator signs and verifies the access/refresh token pair.
type TokenGenerator interface {
	Generate(account *domain.Account, permissions []string, sessionID string) (accessToken, refreshToken string, err error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// JWTCustomClaims is the claims payload of both token kinds. Refresh tokens
// only populate AccountID and SessionID.
type JWTCustomClaims struct {
	jwt.RegisteredClaims
	AccountID   string   `json:"account_id"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role,omitempty"`
	FacilityID  string   `json:"facility_id,omitempty"`
	ClinicianID string   `json:"clinician_id,omitempty"`
	PatientID   string   `json:"patient_id,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	SessionID   string   `json:"session_id"`
}

// TokenService signs HS256 tokens with two independent secrets, so a leaked
// access-token key cannot mint refresh tokens.
type TokenService struct {
	accessSecret   string
	refreshSecret  string
	accessExpiry   time.Duration
	refreshExpiry  time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) Generate(account *domain.Account, permissions []string, sessionID string) (string, string, error) {
	now := time.Now()

	accessClaims := JWTCustomClaims{
		AccountID:   account.ID,
		Email:       account.Email,
		Role:        account.Role,
		FacilityID:  account.FacilityID,
		ClinicianID: account.ClinicianID,
		PatientID:   account.PatientID,
		Permissions: permissions,
		SessionID:   sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := JWTCustomClaims{
		AccountID: account.ID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.accessSecret))
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(ts.refreshSecret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (ts *TokenService) verify(tokenString, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.accessSecret)
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.refreshSecret)
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessExpiry
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshExpiry
}

// BuildRefreshCredential concatenates the session id with the signed token.
// The id lets the store start from the session row without a table scan;
// the signature still binds the token to the account.
func BuildRefreshCredential(sessionID, signedToken string) string {
	return sessionID + "." + signedToken
}

// SplitRefreshCredential parses "<sessionID>.<signedJWT>". The session id
// is opaque and contains no dots, so the first separator is the boundary.
func SplitRefreshCredential(credential string) (sessionID, signedToken string, err error) {
	parts := strings.SplitN(credential, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed refresh credential")
	}

	return parts[0], parts[1], nil
}

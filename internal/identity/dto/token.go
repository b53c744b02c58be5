package dto

// AuthResponse is returned by every flow that establishes a session. The
// refresh token is the composite "<sessionID>.<signedJWT>" credential.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	AccountID    string `json:"account_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	SessionID    string `json:"session_id"`
}

// Message is the generic success envelope used where revealing whether an
// account exists would aid enumeration.
type Message struct {
	Message string `json:"message"`
}

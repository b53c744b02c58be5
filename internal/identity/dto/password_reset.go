package dto

type RequestPasswordResetInput struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

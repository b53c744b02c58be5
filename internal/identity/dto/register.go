package dto

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type VerifyEmailInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
	Role  string `json:"role"`
}

package dto

type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type OTPLoginInput struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	Role      string `json:"role"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type RequestOTPInput struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

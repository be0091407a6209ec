package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=160"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
}

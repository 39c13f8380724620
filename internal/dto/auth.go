package dto

// LoginRequest carries the credentials posted to /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the bearer token for subsequent calls.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

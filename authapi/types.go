package authapi

import "github.com/jrsteele09/go-auth-client/users"

// RegisterRequest is the body of POST /auth/signup.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest is the body of POST /auth/refresh-token.
type refreshRequest struct {
	Token string `json:"token"`
}

// RegisterResponse is the decoded body of a signup response. A populated
// Error/Message pair signals a rejection even on a 2xx status.
type RegisterResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Error        string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

// LoginResponse is the decoded body of a login response.
type LoginResponse struct {
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         *users.User `json:"user,omitempty"`
	Error        string      `json:"error,omitempty"`
	Message      string      `json:"message,omitempty"`
}

// RefreshResponse is the decoded body of a renewal response. The endpoint
// reports the new token in snake_case, unlike login/signup, and signals
// failure through a non-empty Message.
type RefreshResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	Message     string `json:"message,omitempty"`
}

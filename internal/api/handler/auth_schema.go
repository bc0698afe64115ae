package handler

import "github.com/ai-autopilot/gateway/internal/core/domain"

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse carries the issued token and the public account fields. The
// password hash is excluded by the domain type's json:"-" tag.
type authResponse struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Account `json:"user,omitempty"`
}

package handler

import "github.com/hockeyclub/club-system/internal/core/domain"

// messageResponse is the error envelope returned on all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

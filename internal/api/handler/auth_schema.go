package handler

import "github.com/karnbhushan1994/freefortalk/internal/core/domain"

type signupRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"`
}

func (signupRequest) requiredMessage() string { return domain.MsgSignupFieldsRequired }

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (loginRequest) requiredMessage() string { return domain.MsgLoginFieldsRequired }

type authResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

type sessionUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type meResponse struct {
	Success bool        `json:"success"`
	User    sessionUser `json:"user"`
}

package auth

import (
	"vrisa/internal/domain"
	"vrisa/internal/lifecycle"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	// Self-selectable roles only; backend-assigned roles cannot be requested.
	Role string `json:"role" binding:"omitempty,oneof=citizen station_admin researcher institution_member"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type LoginResponse struct {
	User         UserPayload `json:"user"`
	SessionToken string      `json:"session_token"`
	Redirect     string      `json:"redirect"`
}

type UserPayload struct {
	ID            int64             `json:"id"`
	Email         string            `json:"email"`
	FirstName     string            `json:"first_name"`
	Role          domain.Role       `json:"role"`
	RoleStatus    domain.RoleStatus `json:"role_status,omitempty"`
	InstitutionID *int64            `json:"institution_id,omitempty"`
}

type MeResponse struct {
	User UserPayload    `json:"user"`
	View lifecycle.View `json:"view"`
}

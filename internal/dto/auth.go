package dto

import (
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
)

// RegisterAdminRequest creates the company together with its administrator.
type RegisterAdminRequest struct {
	Name            string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email           string `json:"email" binding:"required,email" example:"ada@acme.com"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	CompanyName     string `json:"companyName" binding:"required" example:"Acme Ltd"`
	Country         string `json:"country" binding:"required,len=2,alpha" example:"IN"`
}

// LoginRequest holds email and password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	LandingView string       `json:"landingView"` // admin, manager or employee
	User        UserResponse `json:"user"`
}

// ToAuthResponse converts a domain.AuthResult to AuthResponse DTO.
func ToAuthResponse(r *domain.AuthResult) AuthResponse {
	return AuthResponse{
		Token:       r.AccessToken,
		ExpiresAt:   r.ExpiresAt,
		LandingView: r.LandingView,
		User:        ToUserResponse(&r.User),
	}
}

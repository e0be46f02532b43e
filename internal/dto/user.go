package dto

import (
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
)

// AddUserRequest is used by an admin to add a manager or employee.
type AddUserRequest struct {
	Name      string      `json:"name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Role      domain.Role `json:"role" binding:"required,oneof=manager employee"`
	ManagerID *string     `json:"managerID" binding:"omitempty,min=1"` // employees only
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID      string      `json:"userID"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	CompanyName string      `json:"companyName"`
	Country     string      `json:"country"`
	Currency    string      `json:"currency"`
	ManagerID   *string     `json:"managerID,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsActive    bool        `json:"isActive"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO. The password hash never leaves the service.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		Country:     u.Country,
		Currency:    u.Currency,
		ManagerID:   u.ManagerID,
		CreatedAt:   u.CreatedAt,
		IsActive:    u.IsActive,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

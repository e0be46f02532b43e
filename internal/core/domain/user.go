package domain

import "time"

// Role is the organisational role of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanReview reports whether the role may approve or reject expenses.
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents a member of the company.
type User struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CompanyName  string    `json:"companyName"`
	Country      string    `json:"country"`
	Currency     string    `json:"currency"`
	ManagerID    *string   `json:"managerID,omitempty"` // employees only, references a manager
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"`
}

// LandingView is the dashboard a user lands on after logging in.
func (u User) LandingView() string {
	return string(u.Role)
}

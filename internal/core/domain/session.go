package domain

import "time"

// Session is one logged-in client of a user.
type Session struct {
	SessionID string    `json:"sessionID"`
	UserID    string    `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult is what a successful registration or login hands back to the caller.
type AuthResult struct {
	User        User
	Session     Session
	AccessToken string
	ExpiresAt   time.Time
	LandingView string
}

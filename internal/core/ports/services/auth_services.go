package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a token for the user's session.
	GenerateAccessToken(ctx context.Context, user *domain.User, sessionID string) (string, time.Time, error)
}

// AuthSvcFacade covers registration and the session lifecycle.
type AuthSvcFacade interface {
	// RegisterAdmin creates the company and its admin and logs the admin in.
	RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*domain.AuthResult, error)

	// Login starts a session for an active user with matching credentials.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.AuthResult, error)

	// Logout ends a session. Unknown sessions are ignored.
	Logout(ctx context.Context, sessionID string) error

	// CurrentUser resolves the user behind a session.
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

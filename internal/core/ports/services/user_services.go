package services

import (
	"context"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUser returns a user visible to the caller (self, or anyone for an admin).
	GetUser(ctx context.Context, sessionID, userID string) (*domain.User, error)

	// ListUsers returns every user in insertion order. Admin only.
	ListUsers(ctx context.Context, sessionID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// AddUser creates a manager or employee with a generated password. Admin only.
	AddUser(ctx context.Context, sessionID string, req dto.AddUserRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/state"
	"github.com/SscSPs/expense_management_app/internal/delivery"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	credentials delivery.CredentialDeliveryChannel
}

// NewUserService creates the user management service. Generated passwords are handed to credentials.
func NewUserService(store portsrepo.StateStore, credentials delivery.CredentialDeliveryChannel, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(store, options...),
		credentials: credentials,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) AddUser(ctx context.Context, sessionID string, req dto.AddUserRequest) (*domain.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	st := s.store.Snapshot(ctx)
	admin, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRole(ctx, admin, domain.RoleAdmin); err != nil {
		return nil, err
	}
	managerID, err := checkNewUser(st, req)
	if err != nil {
		return nil, err
	}

	password, err := utils.GeneratePassword(utils.GeneratedPasswordLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate password")
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	created := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: hash,
		CompanyName:  admin.CompanyName,
		Country:      admin.Country,
		Currency:     admin.Currency,
		ManagerID:    managerID,
		CreatedAt:    now,
		IsActive:     true,
	}

	// Delivery may hit the network, so it runs outside the store lock. The user is only
	// committed once the credentials went out.
	notifications, err := s.credentials.Deliver(ctx, delivery.Credentials{
		Admin:    admin,
		User:     created,
		Password: password,
		IssuedAt: now,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deliver credentials", slog.String("role", string(req.Role)))
		return nil, fmt.Errorf("failed to deliver credentials: %w", err)
	}

	err = s.store.Update(ctx, func(st state.State) (state.State, error) {
		if _, err := checkNewUser(st, req); err != nil {
			return st, err
		}
		next := state.AddUser(st, created)
		return state.AddNotifications(next, notifications...), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add user", slog.String("role", string(req.Role)))
		return nil, err
	}

	s.LogInfo(ctx, "User added", slog.String("new_user_id", created.UserID), slog.String("role", string(created.Role)))
	return &created, nil
}

// checkNewUser verifies the email is free and resolves the manager of a new employee.
func checkNewUser(st state.State, req dto.AddUserRequest) (*string, error) {
	if _, taken := st.FindUserByEmail(req.Email); taken {
		return nil, fmt.Errorf("email %s is already registered: %w", req.Email, apperrors.ErrDuplicate)
	}
	if req.Role != domain.RoleEmployee || req.ManagerID == nil {
		return nil, nil
	}
	manager, ok := st.FindUser(*req.ManagerID)
	if !ok || manager.Role != domain.RoleManager {
		return nil, fmt.Errorf("managerID %s does not reference a manager: %w", *req.ManagerID, apperrors.ErrValidation)
	}
	id := manager.UserID
	return &id, nil
}

func (s *userService) ListUsers(ctx context.Context, sessionID string) ([]domain.User, error) {
	st := s.store.Snapshot(ctx)
	caller, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(st.Users))
	copy(users, st.Users)
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, sessionID, userID string) (*domain.User, error) {
	st := s.store.Snapshot(ctx)
	caller, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	user, ok := st.FindUser(userID)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}

	switch {
	case caller.Role == domain.RoleAdmin, caller.UserID == user.UserID:
	case caller.Role == domain.RoleManager && user.ManagerID != nil && *user.ManagerID == caller.UserID:
	default:
		return nil, fmt.Errorf("user %s is not visible to caller: %w", userID, apperrors.ErrForbidden)
	}
	return &user, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_management_app/internal/core/state"
	"github.com/SscSPs/expense_management_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	store portsrepo.StateStore
	clock func() time.Time
}

// ServiceOption is a functional option applied to every service's BaseService.
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(store portsrepo.StateStore, options ...ServiceOption) BaseService {
	b := BaseService{store: store, clock: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// authenticate resolves the session to an active user.
func (s *BaseService) authenticate(st state.State, sessionID string) (domain.User, error) {
	if sessionID == "" {
		return domain.User{}, apperrors.ErrUnauthenticated
	}
	user, ok := st.SessionUser(sessionID)
	if !ok || !user.IsActive {
		return domain.User{}, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// authorizeRole checks the user holds one of roles.
func (s *BaseService) authorizeRole(ctx context.Context, user domain.User, roles ...domain.Role) error {
	if slices.Contains(roles, user.Role) {
		return nil
	}
	s.LogDebug(ctx, "Role not permitted",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return fmt.Errorf("role %s is not permitted: %w", user.Role, apperrors.ErrForbidden)
}

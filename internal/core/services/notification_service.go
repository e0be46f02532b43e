package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/state"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/utils/pagination"
)

type notificationService struct {
	BaseService
}

// NewNotificationService creates the notification inbox service.
func NewNotificationService(store portsrepo.StateStore, options ...ServiceOption) portssvc.NotificationSvcFacade {
	return &notificationService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, sessionID string, params dto.ListNotificationsParams) ([]domain.Notification, *string, error) {
	if err := dto.Validate(params); err != nil {
		return nil, nil, err
	}
	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, nil, err
	}

	all := st.NotificationsFor(user.UserID)
	slices.SortStableFunc(all, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.NotificationID, a.NotificationID)
	})

	if params.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			s.LogDebug(ctx, "Rejected pagination token", slog.String("error", err.Error()))
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}
		start := slices.IndexFunc(all, func(n domain.Notification) bool {
			return pagination.After(n.CreatedAt, n.NotificationID, cursorAt, cursorID)
		})
		if start < 0 {
			return []domain.Notification{}, nil, nil
		}
		all = all[start:]
	}

	if len(all) <= params.Limit {
		if all == nil {
			all = []domain.Notification{}
		}
		return all, nil, nil
	}
	page := all[:params.Limit]
	last := page[len(page)-1]
	next := pagination.EncodeToken(last.CreatedAt, last.NotificationID)
	return page, &next, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, sessionID string) (int, error) {
	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range st.NotificationsFor(user.UserID) {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, sessionID, notificationID string) (*domain.Notification, error) {
	var marked domain.Notification
	err := s.store.Update(ctx, func(st state.State) (state.State, error) {
		user, err := s.authenticate(st, sessionID)
		if err != nil {
			return st, err
		}
		n, ok := st.FindNotification(notificationID)
		if !ok || n.UserID != user.UserID {
			return st, fmt.Errorf("notification %s: %w", notificationID, apperrors.ErrNotFound)
		}
		next := state.MarkNotificationRead(st, notificationID)
		marked, _ = next.FindNotification(notificationID)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &marked, nil
}

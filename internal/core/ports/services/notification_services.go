package services

import (
	"context"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
)

// NotificationSvcFacade defines operations on the caller's notifications.
type NotificationSvcFacade interface {
	// ListNotifications returns one page, newest first, and the token for the next page if any.
	ListNotifications(ctx context.Context, sessionID string, params dto.ListNotificationsParams) ([]domain.Notification, *string, error)

	// UnreadCount counts the caller's unread notifications.
	UnreadCount(ctx context.Context, sessionID string) (int, error)

	// MarkRead flags a notification as read. Marking an already read notification is a no-op.
	MarkRead(ctx context.Context, sessionID, notificationID string) (*domain.Notification, error)
}

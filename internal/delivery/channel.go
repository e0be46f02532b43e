// Package delivery hands the generated password of a newly added user to someone who can pass it on.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/google/uuid"
)

// Credentials is a freshly issued login for a new user.
type Credentials struct {
	Admin    domain.User // the admin who added the user
	User     domain.User
	Password string
	IssuedAt time.Time
}

// CredentialDeliveryChannel delivers credentials and returns the in-app notifications to record
// alongside the new user. An error aborts user creation.
type CredentialDeliveryChannel interface {
	Deliver(ctx context.Context, creds Credentials) ([]domain.Notification, error)
}

// NotificationChannel shows the password to the acting admin in an in-app notification.
type NotificationChannel struct{}

// NewNotificationChannel creates the in-app channel.
func NewNotificationChannel() *NotificationChannel {
	return &NotificationChannel{}
}

var _ CredentialDeliveryChannel = (*NotificationChannel)(nil)

func (c *NotificationChannel) Deliver(ctx context.Context, creds Credentials) ([]domain.Notification, error) {
	return []domain.Notification{
		newUserAddedNotification(creds, fmt.Sprintf("%s has been added as %s. Password: %s", creds.User.Name, creds.User.Role, creds.Password)),
	}, nil
}

func newUserAddedNotification(creds Credentials, message string) domain.Notification {
	return domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         creds.Admin.UserID,
		Type:           domain.NotificationApprovalRequired,
		Title:          "New User Added",
		Message:        message,
		CreatedAt:      creds.IssuedAt,
	}
}

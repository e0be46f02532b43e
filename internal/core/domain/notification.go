package domain

import "time"

// NotificationType categorises a notification.
type NotificationType string

const (
	NotificationExpenseSubmitted NotificationType = "expense_submitted"
	NotificationExpenseApproved  NotificationType = "expense_approved"
	NotificationExpenseRejected  NotificationType = "expense_rejected"
	NotificationApprovalRequired NotificationType = "approval_required"
)

// Notification is a one-way message to a single recipient. Only IsRead ever changes.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}

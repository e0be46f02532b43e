package dto

import (
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
)

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	Limit     int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	NextToken string `form:"nextToken"`
}

// NotificationResponse defines the notification data returned by the API.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ListNotificationsResponse is one page of notifications, newest first.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// UnreadCountResponse carries the number of unread notifications.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToNotificationResponse converts a domain.Notification to NotificationResponse DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationsResponse converts a page of notifications.
func ToListNotificationsResponse(ns []domain.Notification, nextToken *string) ListNotificationsResponse {
	out := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		out[i] = ToNotificationResponse(&n)
	}
	return ListNotificationsResponse{Notifications: out, NextToken: nextToken}
}

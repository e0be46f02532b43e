// Package state holds the application state value and the named transitions over it.
// Transitions never modify the slices or maps of their input; they return a new State.
package state

import (
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/core/stats"
)

// State is the complete in-memory application state.
type State struct {
	Company       *domain.Company
	Users         []domain.User         // insertion order
	Expenses      []domain.Expense      // insertion order
	Notifications []domain.Notification // newest first
	Sessions      map[string]domain.Session
	Stats         domain.DashboardStats
}

// Empty returns the initial state.
func Empty() State {
	return State{
		Sessions: map[string]domain.Session{},
		Stats:    stats.Compute(nil),
	}
}

// FindUser returns the user with the given id.
func (s State) FindUser(id string) (domain.User, bool) {
	for _, u := range s.Users {
		if u.UserID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// FindUserByEmail returns the first user whose email matches exactly.
func (s State) FindUserByEmail(email string) (domain.User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// FindExpense returns the expense with the given id.
func (s State) FindExpense(id string) (domain.Expense, bool) {
	for _, e := range s.Expenses {
		if e.ExpenseID == id {
			return e, true
		}
	}
	return domain.Expense{}, false
}

// FindNotification returns the notification with the given id.
func (s State) FindNotification(id string) (domain.Notification, bool) {
	for _, n := range s.Notifications {
		if n.NotificationID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

// SessionUser resolves a session to its user.
func (s State) SessionUser(sessionID string) (domain.User, bool) {
	sess, ok := s.Sessions[sessionID]
	if !ok {
		return domain.User{}, false
	}
	return s.FindUser(sess.UserID)
}

// NotificationsFor returns the notifications of one recipient, newest first.
func (s State) NotificationsFor(userID string) []domain.Notification {
	var out []domain.Notification
	for _, n := range s.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

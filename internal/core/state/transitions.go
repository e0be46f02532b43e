package state

import (
	"slices"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/core/stats"
)

// RegisterCompany installs the company and its admin.
func RegisterCompany(s State, company domain.Company, admin domain.User) State {
	next := s
	c := company
	next.Company = &c
	next.Users = append(slices.Clone(s.Users), admin)
	return next
}

// AddUser appends a user.
func AddUser(s State, u domain.User) State {
	next := s
	next.Users = append(slices.Clone(s.Users), u)
	return next
}

// StartSession records a session.
func StartSession(s State, sess domain.Session) State {
	next := s
	next.Sessions = cloneSessions(s.Sessions)
	next.Sessions[sess.SessionID] = sess
	return next
}

// EndSession removes a session. Unknown ids are ignored.
func EndSession(s State, sessionID string) State {
	if _, ok := s.Sessions[sessionID]; !ok {
		return s
	}
	next := s
	next.Sessions = cloneSessions(s.Sessions)
	delete(next.Sessions, sessionID)
	return next
}

// AddExpense appends an expense and recomputes stats.
func AddExpense(s State, e domain.Expense) State {
	next := s
	next.Expenses = append(slices.Clone(s.Expenses), e)
	next.Stats = stats.Compute(next.Expenses)
	return next
}

// RecordDecision appends a history entry to an expense, moves it to the entry's
// terminal status and bumps its version. Stats are recomputed.
func RecordDecision(s State, expenseID string, entry domain.ApprovalHistory, at time.Time) State {
	next := s
	next.Expenses = slices.Clone(s.Expenses)
	for i, e := range next.Expenses {
		if e.ExpenseID != expenseID {
			continue
		}
		e.ApprovalHistory = append(slices.Clone(e.ApprovalHistory), entry)
		e.Status = entry.Action.Status()
		e.UpdatedAt = at
		e.Version++
		next.Expenses[i] = e
		break
	}
	next.Stats = stats.Compute(next.Expenses)
	return next
}

// AddNotifications prepends notifications so the list stays newest first.
// ns is given oldest first.
func AddNotifications(s State, ns ...domain.Notification) State {
	if len(ns) == 0 {
		return s
	}
	next := s
	out := make([]domain.Notification, 0, len(ns)+len(s.Notifications))
	for i := len(ns) - 1; i >= 0; i-- {
		out = append(out, ns[i])
	}
	next.Notifications = append(out, s.Notifications...)
	return next
}

// MarkNotificationRead flags a notification as read. Already read or unknown ids leave s unchanged.
func MarkNotificationRead(s State, notificationID string) State {
	idx := slices.IndexFunc(s.Notifications, func(n domain.Notification) bool {
		return n.NotificationID == notificationID
	})
	if idx < 0 || s.Notifications[idx].IsRead {
		return s
	}
	next := s
	next.Notifications = slices.Clone(s.Notifications)
	next.Notifications[idx].IsRead = true
	return next
}

func cloneSessions(m map[string]domain.Session) map[string]domain.Session {
	out := make(map[string]domain.Session, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

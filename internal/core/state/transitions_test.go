package state

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func seeded() State {
	s := Empty()
	s = RegisterCompany(s,
		domain.Company{CompanyID: "c1", Name: "Acme", Country: "US", Currency: "USD", AdminID: "a1"},
		domain.User{UserID: "a1", Name: "Ada", Email: "ada@acme.test", Role: domain.RoleAdmin, IsActive: true},
	)
	s = AddUser(s, domain.User{UserID: "e1", Name: "Eve", Role: domain.RoleEmployee, IsActive: true})
	s = AddExpense(s, domain.Expense{
		ExpenseID: "x1",
		UserID:    "e1",
		ManagerID: "a1",
		Amount:    decimal.NewFromInt(150),
		Currency:  "USD",
		Category:  domain.CategoryMeals,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	})
	return s
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.Nil(t, s.Company)
	assert.NotNil(t, s.Sessions)
	assert.Equal(t, 0, s.Stats.ApprovalRate)
}

func TestAddExpense_RecomputesStats(t *testing.T) {
	s := seeded()
	assert.Equal(t, 1, s.Stats.TotalExpenses)
	assert.Equal(t, 1, s.Stats.PendingExpenses)
	assert.True(t, s.Stats.TotalAmount.Equal(decimal.NewFromInt(150)))
}

func TestRecordDecision(t *testing.T) {
	before := seeded()
	comment := "ok"
	entry := domain.ApprovalHistory{
		HistoryID:  "h1",
		ExpenseID:  "x1",
		ApproverID: "a1",
		Action:     domain.ActionApproved,
		Comment:    &comment,
		Timestamp:  now.Add(3 * time.Hour),
	}

	after := RecordDecision(before, "x1", entry, entry.Timestamp)

	e, ok := after.FindExpense("x1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusApproved, e.Status)
	assert.Equal(t, int64(2), e.Version)
	assert.Equal(t, entry.Timestamp, e.UpdatedAt)
	last, _ := e.LastDecision()
	assert.Equal(t, e.Status, last.Action.Status())
	assert.Equal(t, 100, after.Stats.ApprovalRate)
	assert.True(t, after.Stats.AverageApprovalTime.Equal(decimal.NewFromInt(3)))

	// the previous snapshot is untouched
	old, _ := before.FindExpense("x1")
	assert.Equal(t, domain.StatusPending, old.Status)
	assert.Empty(t, old.ApprovalHistory)
	assert.Equal(t, 0, before.Stats.ApprovalRate)
}

func TestSessions(t *testing.T) {
	before := seeded()
	after := StartSession(before, domain.Session{SessionID: "s1", UserID: "e1", CreatedAt: now})

	u, ok := after.SessionUser("s1")
	require.True(t, ok)
	assert.Equal(t, "Eve", u.Name)
	_, ok = before.SessionUser("s1")
	assert.False(t, ok)

	ended := EndSession(after, "s1")
	_, ok = ended.SessionUser("s1")
	assert.False(t, ok)
	_, ok = after.SessionUser("s1")
	assert.True(t, ok)

	assert.Equal(t, ended, EndSession(ended, "unknown"))
}

func TestNotifications_NewestFirstAndMarkRead(t *testing.T) {
	s := seeded()
	s = AddNotifications(s, domain.Notification{NotificationID: "n1", UserID: "a1", CreatedAt: now})
	s = AddNotifications(s,
		domain.Notification{NotificationID: "n2", UserID: "a1", CreatedAt: now.Add(time.Minute)},
		domain.Notification{NotificationID: "n3", UserID: "e1", CreatedAt: now.Add(2 * time.Minute)},
	)

	ids := []string{}
	for _, n := range s.Notifications {
		ids = append(ids, n.NotificationID)
	}
	assert.Equal(t, []string{"n3", "n2", "n1"}, ids)
	assert.Len(t, s.NotificationsFor("a1"), 2)

	read := MarkNotificationRead(s, "n2")
	n, _ := read.FindNotification("n2")
	assert.True(t, n.IsRead)
	orig, _ := s.FindNotification("n2")
	assert.False(t, orig.IsRead)

	again := MarkNotificationRead(read, "n2")
	assert.Equal(t, read, again)
}

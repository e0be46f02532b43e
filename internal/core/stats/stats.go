// Package stats folds an expense collection into dashboard counters.
package stats

import (
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Compute derives the dashboard counters from scratch.
func Compute(expenses []domain.Expense) domain.DashboardStats {
	s := domain.DashboardStats{
		TotalExpenses:       len(expenses),
		TotalAmount:         decimal.Zero,
		AverageApprovalTime: decimal.Zero,
	}

	var decidedHours decimal.Decimal
	decided := 0
	for _, e := range expenses {
		s.TotalAmount = s.TotalAmount.Add(e.Amount)
		switch e.Status {
		case domain.StatusPending:
			s.PendingExpenses++
		case domain.StatusApproved:
			s.ApprovedExpenses++
		case domain.StatusRejected:
			s.RejectedExpenses++
		}
		if last, ok := e.LastDecision(); ok && e.Status != domain.StatusPending {
			elapsed := last.Timestamp.Sub(e.CreatedAt)
			decidedHours = decidedHours.Add(decimal.NewFromFloat(elapsed.Hours()))
			decided++
		}
	}

	if decided > 0 {
		s.AverageApprovalTime = decidedHours.Div(decimal.NewFromInt(int64(decided))).Round(2)
	}
	if s.TotalExpenses > 0 {
		s.ApprovalRate = int(decimal.NewFromInt(int64(s.ApprovedExpenses)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(s.TotalExpenses))).
			Round(0).
			IntPart())
	}
	return s
}

// ApprovalRate is the percentage of expenses routed to managerID that ended up approved.
// Pending expenses count towards the denominator. Returns zero when nothing was routed.
func ApprovalRate(managerID string, expenses []domain.Expense) decimal.Decimal {
	total, approved := 0, 0
	for _, e := range expenses {
		if e.ManagerID != managerID {
			continue
		}
		total++
		if e.Status == domain.StatusApproved {
			approved++
		}
	}
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(approved)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
}

// Breakdown groups expenses by category. Every category is present, in display order.
func Breakdown(expenses []domain.Expense) []domain.CategoryBreakdown {
	idx := make(map[domain.ExpenseCategory]int, len(domain.Categories))
	out := make([]domain.CategoryBreakdown, len(domain.Categories))
	for i, c := range domain.Categories {
		idx[c] = i
		out[i] = domain.CategoryBreakdown{Category: c, TotalAmount: decimal.Zero}
	}
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].TotalAmount = out[i].TotalAmount.Add(e.Amount)
	}
	return out
}

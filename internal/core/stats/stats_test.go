package stats

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func expense(id, managerID string, status domain.ExpenseStatus, amount string, decidedAfter time.Duration) domain.Expense {
	e := domain.Expense{
		ExpenseID: id,
		ManagerID: managerID,
		Status:    status,
		Amount:    decimal.RequireFromString(amount),
		Category:  domain.CategoryMeals,
		CreatedAt: t0,
	}
	if status != domain.StatusPending {
		action := domain.ActionApproved
		if status == domain.StatusRejected {
			action = domain.ActionRejected
		}
		e.ApprovalHistory = []domain.ApprovalHistory{{Action: action, Timestamp: t0.Add(decidedAfter)}}
	}
	return e
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, 0, s.TotalExpenses)
	assert.Equal(t, 0, s.ApprovalRate)
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.AverageApprovalTime.IsZero())
}

func TestCompute_Counts(t *testing.T) {
	expenses := []domain.Expense{
		expense("e1", "m1", domain.StatusApproved, "100.50", 2*time.Hour),
		expense("e2", "m1", domain.StatusRejected, "20", 4*time.Hour),
		expense("e3", "m1", domain.StatusPending, "5", 0),
	}

	s := Compute(expenses)
	assert.Equal(t, 3, s.TotalExpenses)
	assert.Equal(t, 1, s.PendingExpenses)
	assert.Equal(t, 1, s.ApprovedExpenses)
	assert.Equal(t, 1, s.RejectedExpenses)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("125.50")), s.TotalAmount.String())
	assert.True(t, s.AverageApprovalTime.Equal(decimal.NewFromInt(3)), s.AverageApprovalTime.String())
	assert.Equal(t, 33, s.ApprovalRate)
}

func TestCompute_ApprovalRateRoundsHalfUp(t *testing.T) {
	expenses := []domain.Expense{
		expense("e1", "m1", domain.StatusApproved, "1", time.Hour),
		expense("e2", "m1", domain.StatusPending, "1", 0),
		expense("e3", "m1", domain.StatusPending, "1", 0),
		expense("e4", "m1", domain.StatusPending, "1", 0),
		expense("e5", "m1", domain.StatusPending, "1", 0),
		expense("e6", "m1", domain.StatusPending, "1", 0),
		expense("e7", "m1", domain.StatusPending, "1", 0),
		expense("e8", "m1", domain.StatusPending, "1", 0),
	}
	// 1/8 = 12.5%
	assert.Equal(t, 13, Compute(expenses).ApprovalRate)
}

func TestApprovalRate(t *testing.T) {
	expenses := []domain.Expense{
		expense("e1", "m1", domain.StatusApproved, "1", time.Hour),
		expense("e2", "m1", domain.StatusApproved, "1", time.Hour),
		expense("e3", "m1", domain.StatusPending, "1", 0),
		expense("e4", "m2", domain.StatusApproved, "1", time.Hour),
	}

	rate := ApprovalRate("m1", expenses)
	assert.Equal(t, "66.67", rate.Round(2).String())
	assert.True(t, ApprovalRate("m2", expenses).Equal(decimal.NewFromInt(100)))
	assert.True(t, ApprovalRate("nobody", expenses).IsZero())
}

func TestBreakdown(t *testing.T) {
	a := expense("e1", "m1", domain.StatusApproved, "10", time.Hour)
	b := expense("e2", "m1", domain.StatusPending, "15", 0)
	c := expense("e3", "m1", domain.StatusPending, "40", 0)
	c.Category = domain.CategoryTravel

	out := Breakdown([]domain.Expense{a, b, c})
	assert.Len(t, out, len(domain.Categories))
	assert.Equal(t, domain.CategoryTravel, out[0].Category)
	assert.Equal(t, 1, out[0].Count)
	assert.True(t, out[0].TotalAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, domain.CategoryMeals, out[1].Category)
	assert.Equal(t, 2, out[1].Count)
	assert.True(t, out[1].TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 0, out[5].Count)
}

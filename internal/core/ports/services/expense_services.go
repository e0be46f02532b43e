package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
)

// ExpenseReaderSvc defines read operations on expenses, scoped to what the caller may see.
type ExpenseReaderSvc interface {
	// ListExpenses returns one page of visible expenses and the number of matches before paging.
	ListExpenses(ctx context.Context, sessionID string, params dto.ListExpensesParams) ([]domain.Expense, int, error)

	// GetExpense returns a visible expense.
	GetExpense(ctx context.Context, sessionID, expenseID string) (*domain.Expense, error)
}

// ExpenseWriterSvc defines the expense lifecycle.
type ExpenseWriterSvc interface {
	// SubmitExpense files a pending expense for the caller and routes it to an approver.
	SubmitExpense(ctx context.Context, sessionID string, req dto.SubmitExpenseRequest) (*domain.Expense, error)

	// Decide approves or rejects a pending expense, subject to the approval policy.
	Decide(ctx context.Context, sessionID, expenseID string, req dto.DecideExpenseRequest) (*domain.Expense, error)
}

// ExpenseReminderSvc is driven by the scheduler.
type ExpenseReminderSvc interface {
	// RemindPendingApprovals notifies approvers of expenses pending for longer than olderThan.
	// It returns the number of reminders sent.
	RemindPendingApprovals(ctx context.Context, olderThan time.Duration) (int, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseReminderSvc
}

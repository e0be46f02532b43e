package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/approval"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/state"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/google/uuid"
)

type expenseService struct {
	BaseService
	policy approval.Policy
}

// NewExpenseService creates the expense workflow service.
func NewExpenseService(store portsrepo.StateStore, policy approval.Policy, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: newBaseService(store, options...),
		policy:      policy,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) SubmitExpense(ctx context.Context, sessionID string, req dto.SubmitExpenseRequest) (*domain.Expense, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var created domain.Expense
	err := s.store.Update(ctx, func(st state.State) (state.State, error) {
		submitter, err := s.authenticate(st, sessionID)
		if err != nil {
			return st, err
		}
		approverID, approverName, ok := approval.ResolveApprover(st.Users, st.Company)
		if !ok {
			return st, fmt.Errorf("no approver available: %w", apperrors.ErrValidation)
		}

		now := s.now()
		created = domain.Expense{
			ExpenseID:       uuid.NewString(),
			UserID:          submitter.UserID,
			UserName:        submitter.Name,
			ManagerID:       approverID,
			ManagerName:     approverName,
			Amount:          req.Amount,
			Currency:        strings.ToUpper(req.Currency),
			Date:            req.Date,
			Description:     req.Description,
			Category:        req.Category,
			Status:          domain.StatusPending,
			ReceiptURL:      req.ReceiptURL,
			CreatedAt:       now,
			UpdatedAt:       now,
			ApprovalHistory: []domain.ApprovalHistory{},
			Version:         1,
		}

		next := state.AddExpense(st, created)
		next = state.AddNotifications(next,
			domain.Notification{
				NotificationID: uuid.NewString(),
				UserID:         approverID,
				Type:           domain.NotificationApprovalRequired,
				Title:          "New Expense Submitted",
				Message:        fmt.Sprintf("%s submitted an expense of %s %s", submitter.Name, created.Currency, created.Amount.String()),
				CreatedAt:      now,
			},
			domain.Notification{
				NotificationID: uuid.NewString(),
				UserID:         submitter.UserID,
				Type:           domain.NotificationExpenseSubmitted,
				Title:          "Expense Submitted",
				Message:        fmt.Sprintf("Your expense of %s %s was sent to %s for approval", created.Currency, created.Amount.String(), approverName),
				CreatedAt:      now,
			},
		)
		return next, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit expense")
		return nil, err
	}

	s.LogInfo(ctx, "Expense submitted",
		slog.String("expense_id", created.ExpenseID),
		slog.String("approver_id", created.ManagerID))
	return &created, nil
}

func (s *expenseService) Decide(ctx context.Context, sessionID, expenseID string, req dto.DecideExpenseRequest) (*domain.Expense, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	comment := req.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}

	var (
		updated  domain.Expense
		decision approval.Decision
	)
	err := s.store.Update(ctx, func(st state.State) (state.State, error) {
		actor, err := s.authenticate(st, sessionID)
		if err != nil {
			return st, err
		}
		expense, ok := st.FindExpense(expenseID)
		if !ok {
			return st, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		if !actor.Role.CanReview() {
			return st, fmt.Errorf("role %s cannot review expenses: %w", actor.Role, apperrors.ErrForbidden)
		}
		if actor.Role == domain.RoleManager && !s.managesExpense(st, actor, expense) {
			return st, fmt.Errorf("expense %s is not assigned to this manager: %w", expenseID, apperrors.ErrForbidden)
		}
		if expense.Status != domain.StatusPending {
			return st, fmt.Errorf("expense %s is already %s: %w", expenseID, expense.Status, apperrors.ErrConflict)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != expense.Version {
			return st, fmt.Errorf("expense %s is at version %d, not %d: %w", expenseID, expense.Version, *req.ExpectedVersion, apperrors.ErrConflict)
		}

		decision = approval.Decide(s.policy, expense, actor, req.Action, comment, st.Expenses)

		now := s.now()
		entry := domain.ApprovalHistory{
			HistoryID:    uuid.NewString(),
			ExpenseID:    expense.ExpenseID,
			ApproverID:   actor.UserID,
			ApproverName: actor.Name,
			ApproverRole: decision.ApproverRole,
			Action:       decision.FinalAction,
			Comment:      decision.Comment,
			Timestamp:    now,
		}
		next := state.RecordDecision(st, expense.ExpenseID, entry, now)
		updated, _ = next.FindExpense(expense.ExpenseID)

		next = state.AddNotifications(next, decisionNotification(updated, decision, now))
		return next, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to decide expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	if decision.Overridden {
		s.LogInfo(ctx, "Approval auto-rejected",
			slog.String("expense_id", expenseID),
			slog.String("approval_rate", decision.Rate.StringFixed(2)))
	}
	s.LogInfo(ctx, "Expense decided",
		slog.String("expense_id", expenseID),
		slog.String("action", string(decision.FinalAction)))
	return &updated, nil
}

func decisionNotification(e domain.Expense, d approval.Decision, now time.Time) domain.Notification {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         e.UserID,
		Type:           domain.NotificationExpenseRejected,
		Title:          "Expense Rejected",
		CreatedAt:      now,
	}
	if d.FinalAction == domain.ActionApproved {
		n.Type = domain.NotificationExpenseApproved
		n.Title = "Expense Approved"
	}
	n.Message = fmt.Sprintf("Your expense of %s %s has been %s", e.Currency, e.Amount.String(), d.FinalAction)
	if d.Comment != nil && *d.Comment != "" {
		n.Message += ". Comment: " + *d.Comment
	}
	return n
}

// managesExpense reports whether a manager may review e: they are its approver or the
// submitter reports to them.
func (s *expenseService) managesExpense(st state.State, manager domain.User, e domain.Expense) bool {
	if e.ManagerID == manager.UserID {
		return true
	}
	submitter, ok := st.FindUser(e.UserID)
	return ok && submitter.ManagerID != nil && *submitter.ManagerID == manager.UserID
}

// visible reports whether the caller may see e.
func (s *expenseService) visible(st state.State, caller domain.User, e domain.Expense) bool {
	switch {
	case caller.Role == domain.RoleAdmin:
		return true
	case e.UserID == caller.UserID:
		return true
	case caller.Role == domain.RoleManager:
		return s.managesExpense(st, caller, e)
	}
	return false
}

func (s *expenseService) ListExpenses(ctx context.Context, sessionID string, params dto.ListExpensesParams) ([]domain.Expense, int, error) {
	if err := dto.Validate(params); err != nil {
		return nil, 0, err
	}
	st := s.store.Snapshot(ctx)
	caller, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, 0, err
	}

	matches := make([]domain.Expense, 0, len(st.Expenses))
	for _, e := range st.Expenses {
		if !s.visible(st, caller, e) || !s.matches(st, caller, e, params) {
			continue
		}
		matches = append(matches, e)
	}
	sortExpenses(matches, params.SortBy)

	total := len(matches)
	if params.Offset >= total {
		return []domain.Expense{}, total, nil
	}
	end := total
	if params.Limit > 0 && params.Offset+params.Limit < total {
		end = params.Offset + params.Limit
	}
	return matches[params.Offset:end], total, nil
}

func (s *expenseService) matches(st state.State, caller domain.User, e domain.Expense, p dto.ListExpensesParams) bool {
	if p.UserID != "" && e.UserID != p.UserID {
		return false
	}
	if p.ManagerID != "" && e.ManagerID != p.ManagerID {
		return false
	}
	if p.Status != "" && e.Status != p.Status {
		return false
	}
	if p.Category != "" && e.Category != p.Category {
		return false
	}
	if p.Team {
		submitter, ok := st.FindUser(e.UserID)
		if !ok || submitter.ManagerID == nil || *submitter.ManagerID != caller.UserID {
			return false
		}
	}
	return true
}

func newestFirst(a, b domain.Expense) int {
	if c := cmp.Compare(b.Date, a.Date); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

func sortExpenses(expenses []domain.Expense, sortBy string) {
	switch sortBy {
	case dto.SortByAmount:
		slices.SortStableFunc(expenses, func(a, b domain.Expense) int {
			if c := b.Amount.Cmp(a.Amount); c != 0 {
				return c
			}
			return newestFirst(a, b)
		})
	case dto.SortByEmployee:
		slices.SortStableFunc(expenses, func(a, b domain.Expense) int {
			if c := cmp.Compare(strings.ToLower(a.UserName), strings.ToLower(b.UserName)); c != 0 {
				return c
			}
			return newestFirst(a, b)
		})
	default:
		slices.SortStableFunc(expenses, newestFirst)
	}
}

func (s *expenseService) GetExpense(ctx context.Context, sessionID, expenseID string) (*domain.Expense, error) {
	st := s.store.Snapshot(ctx)
	caller, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	e, ok := st.FindExpense(expenseID)
	if !ok || !s.visible(st, caller, e) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return &e, nil
}

func (s *expenseService) RemindPendingApprovals(ctx context.Context, olderThan time.Duration) (int, error) {
	sent := 0
	err := s.store.Update(ctx, func(st state.State) (state.State, error) {
		now := s.now()
		var reminders []domain.Notification
		for _, e := range st.Expenses {
			if e.Status != domain.StatusPending || now.Sub(e.CreatedAt) < olderThan {
				continue
			}
			reminders = append(reminders, domain.Notification{
				NotificationID: uuid.NewString(),
				UserID:         e.ManagerID,
				Type:           domain.NotificationApprovalRequired,
				Title:          "Approval Reminder",
				Message:        fmt.Sprintf("%s's expense of %s %s from %s is still waiting for your approval", e.UserName, e.Currency, e.Amount.String(), e.Date),
				CreatedAt:      now,
			})
		}
		sent = len(reminders)
		return state.AddNotifications(st, reminders...), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to send approval reminders")
		return 0, err
	}
	if sent > 0 {
		s.LogInfo(ctx, "Approval reminders sent", slog.Int("count", sent))
	}
	return sent, nil
}

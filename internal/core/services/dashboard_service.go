package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/approval"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/stats"
	"github.com/shopspring/decimal"
)

type dashboardService struct {
	BaseService
	policy             approval.Policy
	highValueThreshold decimal.Decimal
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(store portsrepo.StateStore, policy approval.Policy, highValueThreshold decimal.Decimal, options ...ServiceOption) portssvc.DashboardSvcFacade {
	return &dashboardService{
		BaseService:        newBaseService(store, options...),
		policy:             policy,
		highValueThreshold: highValueThreshold,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}

	if user.Role.CanReview() {
		return &domain.Dashboard{
			Scope:     domain.ScopeCompany,
			Stats:     st.Stats,
			Breakdown: stats.Breakdown(st.Expenses),
		}, nil
	}

	var own []domain.Expense
	for _, e := range st.Expenses {
		if e.UserID == user.UserID {
			own = append(own, e)
		}
	}
	return &domain.Dashboard{
		Scope:     domain.ScopePersonal,
		Stats:     stats.Compute(own),
		Breakdown: stats.Breakdown(own),
	}, nil
}

func (s *dashboardService) GetMyApprovalRate(ctx context.Context, sessionID string) (*domain.ApprovalRateReport, error) {
	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRole(ctx, user, domain.RoleManager); err != nil {
		return nil, err
	}

	report := &domain.ApprovalRateReport{
		ManagerID: user.UserID,
		Threshold: s.policy.RateThreshold,
		Rate:      stats.ApprovalRate(user.UserID, st.Expenses),
	}
	for _, e := range st.Expenses {
		if e.ManagerID != user.UserID {
			continue
		}
		report.RoutedCount++
		if e.Status == domain.StatusApproved {
			report.ApprovedCount++
		}
	}
	report.AutoRejecting = approval.Exceeds(s.policy, report.Rate)
	return report, nil
}

func (s *dashboardService) GetHighValueExpenses(ctx context.Context, sessionID string) (*domain.HighValueReport, error) {
	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return nil, err
	}
	if !approval.IsCFO(s.policy, user) {
		return nil, fmt.Errorf("high value report is restricted to the CFO: %w", apperrors.ErrForbidden)
	}

	report := &domain.HighValueReport{
		Threshold:   s.highValueThreshold,
		Expenses:    []domain.Expense{},
		TotalAmount: decimal.Zero,
	}
	for _, e := range st.Expenses {
		if !e.Amount.GreaterThan(s.highValueThreshold) {
			continue
		}
		report.Expenses = append(report.Expenses, e)
		report.TotalAmount = report.TotalAmount.Add(e.Amount)
		if e.Status == domain.StatusPending {
			report.PendingCount++
		}
	}
	slices.SortStableFunc(report.Expenses, func(a, b domain.Expense) int {
		ap, bp := a.Status == domain.StatusPending, b.Status == domain.StatusPending
		switch {
		case ap && !bp:
			return -1
		case bp && !ap:
			return 1
		}
		return newestFirst(a, b)
	})
	report.Breakdown = stats.Breakdown(report.Expenses)
	return report, nil
}

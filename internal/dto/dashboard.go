package dto

import (
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdownResponse is the spend in one category.
type CategoryBreakdownResponse struct {
	Category    domain.ExpenseCategory `json:"category"`
	Count       int                    `json:"count"`
	TotalAmount decimal.Decimal        `json:"totalAmount" swaggertype:"string"`
}

// DashboardStatsResponse mirrors domain.DashboardStats.
type DashboardStatsResponse struct {
	TotalExpenses       int             `json:"totalExpenses"`
	PendingExpenses     int             `json:"pendingExpenses"`
	ApprovedExpenses    int             `json:"approvedExpenses"`
	RejectedExpenses    int             `json:"rejectedExpenses"`
	TotalAmount         decimal.Decimal `json:"totalAmount" swaggertype:"string"`
	AverageApprovalTime decimal.Decimal `json:"averageApprovalTime" swaggertype:"string"` // hours
	ApprovalRate        int             `json:"approvalRate"`                             // percent
}

// DashboardResponse is returned by GET /dashboard.
type DashboardResponse struct {
	Scope     domain.DashboardScope       `json:"scope"`
	Stats     DashboardStatsResponse      `json:"stats"`
	Breakdown []CategoryBreakdownResponse `json:"breakdown"`
}

// ApprovalRateResponse is returned by GET /dashboard/approval-rate.
type ApprovalRateResponse struct {
	Rate          decimal.Decimal `json:"rate" swaggertype:"string"`
	Threshold     decimal.Decimal `json:"threshold" swaggertype:"string"`
	RoutedCount   int             `json:"routedCount"`
	ApprovedCount int             `json:"approvedCount"`
	AutoRejecting bool            `json:"autoRejecting"`
}

// HighValueResponse is returned by GET /dashboard/high-value.
type HighValueResponse struct {
	Threshold    decimal.Decimal             `json:"threshold" swaggertype:"string"`
	PendingCount int                         `json:"pendingCount"`
	TotalAmount  decimal.Decimal             `json:"totalAmount" swaggertype:"string"`
	Expenses     []ExpenseResponse           `json:"expenses"`
	Breakdown    []CategoryBreakdownResponse `json:"breakdown"`
}

// ToDashboardStatsResponse converts domain.DashboardStats.
func ToDashboardStatsResponse(s domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalExpenses:       s.TotalExpenses,
		PendingExpenses:     s.PendingExpenses,
		ApprovedExpenses:    s.ApprovedExpenses,
		RejectedExpenses:    s.RejectedExpenses,
		TotalAmount:         s.TotalAmount,
		AverageApprovalTime: s.AverageApprovalTime,
		ApprovalRate:        s.ApprovalRate,
	}
}

func toBreakdownResponses(b []domain.CategoryBreakdown) []CategoryBreakdownResponse {
	out := make([]CategoryBreakdownResponse, len(b))
	for i, c := range b {
		out[i] = CategoryBreakdownResponse{Category: c.Category, Count: c.Count, TotalAmount: c.TotalAmount}
	}
	return out
}

// ToDashboardResponse converts a domain.Dashboard.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Scope:     d.Scope,
		Stats:     ToDashboardStatsResponse(d.Stats),
		Breakdown: toBreakdownResponses(d.Breakdown),
	}
}

// ToApprovalRateResponse converts a domain.ApprovalRateReport.
func ToApprovalRateResponse(r *domain.ApprovalRateReport) ApprovalRateResponse {
	return ApprovalRateResponse{
		Rate:          r.Rate.Round(2),
		Threshold:     r.Threshold,
		RoutedCount:   r.RoutedCount,
		ApprovedCount: r.ApprovedCount,
		AutoRejecting: r.AutoRejecting,
	}
}

// ToHighValueResponse converts a domain.HighValueReport.
func ToHighValueResponse(r *domain.HighValueReport) HighValueResponse {
	return HighValueResponse{
		Threshold:    r.Threshold,
		PendingCount: r.PendingCount,
		TotalAmount:  r.TotalAmount,
		Expenses:     ToExpenseResponses(r.Expenses),
		Breakdown:    toBreakdownResponses(r.Breakdown),
	}
}

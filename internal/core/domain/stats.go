package domain

import "github.com/shopspring/decimal"

// DashboardStats summarises an expense collection.
type DashboardStats struct {
	TotalExpenses       int             `json:"totalExpenses"`
	PendingExpenses     int             `json:"pendingExpenses"`
	ApprovedExpenses    int             `json:"approvedExpenses"`
	RejectedExpenses    int             `json:"rejectedExpenses"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`         // plain sum across currencies
	AverageApprovalTime decimal.Decimal `json:"averageApprovalTime"` // hours
	ApprovalRate        int             `json:"approvalRate"`        // percent, rounded
}

// CategoryBreakdown is the spend in one category.
type CategoryBreakdown struct {
	Category    ExpenseCategory `json:"category"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

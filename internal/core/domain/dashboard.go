package domain

import "github.com/shopspring/decimal"

// DashboardScope tells whether dashboard figures cover the whole company or one user.
type DashboardScope string

const (
	ScopeCompany  DashboardScope = "company"
	ScopePersonal DashboardScope = "personal"
)

// Dashboard is the stats view a user lands on.
type Dashboard struct {
	Scope     DashboardScope
	Stats     DashboardStats
	Breakdown []CategoryBreakdown
}

// ApprovalRateReport describes a manager's standing against the auto-reject threshold.
type ApprovalRateReport struct {
	ManagerID     string
	Rate          decimal.Decimal
	Threshold     decimal.Decimal
	RoutedCount   int
	ApprovedCount int
	AutoRejecting bool
}

// HighValueReport lists expenses above the high-value threshold.
type HighValueReport struct {
	Threshold    decimal.Decimal
	Expenses     []Expense // pending first, then newest first
	PendingCount int
	TotalAmount  decimal.Decimal
	Breakdown    []CategoryBreakdown
}

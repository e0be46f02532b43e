package services

import (
	"context"
	"io"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
)

// DashboardSvcFacade serves the role dashboards.
type DashboardSvcFacade interface {
	// GetDashboard returns company-wide stats for admins and managers, personal stats for employees.
	GetDashboard(ctx context.Context, sessionID string) (*domain.Dashboard, error)

	// GetMyApprovalRate reports a manager's approval rate against the auto-reject threshold.
	GetMyApprovalRate(ctx context.Context, sessionID string) (*domain.ApprovalRateReport, error)

	// GetHighValueExpenses lists expenses above the high-value threshold. CFO only.
	GetHighValueExpenses(ctx context.Context, sessionID string) (*domain.HighValueReport, error)
}

// ExportSvcFacade renders expense reports. Admin only.
type ExportSvcFacade interface {
	// ExportExpenses writes the filtered expense list to w and returns the content type and file name.
	ExportExpenses(ctx context.Context, sessionID string, params dto.ExportExpensesParams, w io.Writer) (contentType, fileName string, err error)
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/reports"
)

const (
	exportFormatXLSX = "xlsx"
	exportFormatPDF  = "pdf"
)

type exportService struct {
	BaseService
	expenses portssvc.ExpenseReaderSvc
}

// NewExportService creates the report export service on top of the expense reader.
func NewExportService(store portsrepo.StateStore, expenses portssvc.ExpenseReaderSvc, options ...ServiceOption) portssvc.ExportSvcFacade {
	return &exportService{
		BaseService: newBaseService(store, options...),
		expenses:    expenses,
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

func (s *exportService) ExportExpenses(ctx context.Context, sessionID string, params dto.ExportExpensesParams, w io.Writer) (string, string, error) {
	if params.Format == "" {
		params.Format = exportFormatXLSX
	}
	if err := dto.Validate(params); err != nil {
		return "", "", err
	}

	st := s.store.Snapshot(ctx)
	user, err := s.authenticate(st, sessionID)
	if err != nil {
		return "", "", err
	}
	if err := s.authorizeRole(ctx, user, domain.RoleAdmin); err != nil {
		return "", "", err
	}

	// exports cover every match
	list := params.ListExpensesParams
	list.Limit, list.Offset = 0, 0
	expenses, _, err := s.expenses.ListExpenses(ctx, sessionID, list)
	if err != nil {
		return "", "", err
	}

	stamp := s.now().Format("20060102-150405")
	title := "Expense Report"
	if st.Company != nil {
		title = st.Company.Name + " Expense Report"
	}

	switch params.Format {
	case exportFormatPDF:
		if err := reports.WritePDF(w, title, expenses); err != nil {
			s.LogError(ctx, err, "Failed to render PDF export")
			return "", "", fmt.Errorf("failed to render pdf: %w", err)
		}
		s.LogInfo(ctx, "Expenses exported", slog.String("format", params.Format), slog.Int("count", len(expenses)))
		return reports.PDFContentType, fmt.Sprintf("expenses-%s.pdf", stamp), nil
	case exportFormatXLSX:
		if err := reports.WriteXLSX(w, "Expenses", expenses); err != nil {
			s.LogError(ctx, err, "Failed to render XLSX export")
			return "", "", fmt.Errorf("failed to render xlsx: %w", err)
		}
		s.LogInfo(ctx, "Expenses exported", slog.String("format", params.Format), slog.Int("count", len(expenses)))
		return reports.XLSXContentType, fmt.Sprintf("expenses-%s.xlsx", stamp), nil
	}
	return "", "", fmt.Errorf("unsupported export format %q: %w", params.Format, apperrors.ErrValidation)
}

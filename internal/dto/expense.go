package dto

import (
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Expense list sort keys.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByEmployee = "employee"
)

// SubmitExpenseRequest defines the data needed to submit an expense claim.
type SubmitExpenseRequest struct {
	Amount      decimal.Decimal        `json:"amount" binding:"gte=0" swaggertype:"string" example:"150.00"`
	Currency    string                 `json:"currency" binding:"required,len=3,alpha" example:"USD"`
	Date        string                 `json:"date" binding:"required,iso_date" example:"2024-05-01"`
	Description string                 `json:"description" binding:"required,max=1000"`
	Category    domain.ExpenseCategory `json:"category" binding:"required,expense_category" example:"meals"`
	ReceiptURL  *string                `json:"receiptURL" binding:"omitempty,max=2048"`
}

// DecideExpenseRequest approves or rejects a pending expense.
type DecideExpenseRequest struct {
	Action          domain.ApprovalAction `json:"action" binding:"required,oneof=approved rejected" example:"approved"`
	Comment         *string               `json:"comment" binding:"omitempty,max=1000"`
	ExpectedVersion *int64                `json:"expectedVersion" binding:"omitempty,gte=1"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	UserID    string                 `form:"userId"`
	ManagerID string                 `form:"managerId"`
	Status    domain.ExpenseStatus   `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Category  domain.ExpenseCategory `form:"category" binding:"omitempty,expense_category"`
	Team      bool                   `form:"team"` // only expenses of employees assigned to the caller
	SortBy    string                 `form:"sortBy" binding:"omitempty,oneof=date amount employee"`
	Limit     int                    `form:"limit,default=50" binding:"gte=0,lte=500"`
	Offset    int                    `form:"offset,default=0" binding:"gte=0"`
}

// ExportExpensesParams selects the export format on top of the list filters.
type ExportExpensesParams struct {
	ListExpensesParams
	Format string `form:"format,default=xlsx" binding:"oneof=xlsx pdf"`
}

// ApprovalHistoryResponse is one review record.
type ApprovalHistoryResponse struct {
	HistoryID    string                `json:"historyID"`
	ApproverID   string                `json:"approverID"`
	ApproverName string                `json:"approverName"`
	ApproverRole domain.Role           `json:"approverRole"`
	Action       domain.ApprovalAction `json:"action"`
	Comment      *string               `json:"comment,omitempty"`
	Timestamp    time.Time             `json:"timestamp"`
}

// ExpenseResponse defines the expense data returned by the API.
type ExpenseResponse struct {
	ExpenseID       string                    `json:"expenseID"`
	UserID          string                    `json:"userID"`
	UserName        string                    `json:"userName"`
	ManagerID       string                    `json:"managerID"`
	ManagerName     string                    `json:"managerName"`
	Amount          decimal.Decimal           `json:"amount" swaggertype:"string"`
	Currency        string                    `json:"currency"`
	Date            string                    `json:"date"`
	Description     string                    `json:"description"`
	Category        domain.ExpenseCategory    `json:"category"`
	Status          domain.ExpenseStatus      `json:"status"`
	ReceiptURL      *string                   `json:"receiptURL,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
	Version         int64                     `json:"version"`
	ApprovalHistory []ApprovalHistoryResponse `json:"approvalHistory"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int               `json:"total"` // matches before limit/offset
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	history := make([]ApprovalHistoryResponse, len(e.ApprovalHistory))
	for i, h := range e.ApprovalHistory {
		history[i] = ApprovalHistoryResponse{
			HistoryID:    h.HistoryID,
			ApproverID:   h.ApproverID,
			ApproverName: h.ApproverName,
			ApproverRole: h.ApproverRole,
			Action:       h.Action,
			Comment:      h.Comment,
			Timestamp:    h.Timestamp,
		}
	}
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		UserID:          e.UserID,
		UserName:        e.UserName,
		ManagerID:       e.ManagerID,
		ManagerName:     e.ManagerName,
		Amount:          e.Amount,
		Currency:        e.Currency,
		Date:            e.Date,
		Description:     e.Description,
		Category:        e.Category,
		Status:          e.Status,
		ReceiptURL:      e.ReceiptURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
		ApprovalHistory: history,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(&e)
	}
	return out
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies what an expense was spent on.
type ExpenseCategory string

const (
	CategoryTravel         ExpenseCategory = "travel"
	CategoryMeals          ExpenseCategory = "meals"
	CategoryOfficeSupplies ExpenseCategory = "office_supplies"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryAccommodation  ExpenseCategory = "accommodation"
	CategoryOther          ExpenseCategory = "other"
)

// Categories lists every category in display order.
var Categories = []ExpenseCategory{
	CategoryTravel,
	CategoryMeals,
	CategoryOfficeSupplies,
	CategoryTransportation,
	CategoryAccommodation,
	CategoryOther,
}

// IsValid reports whether c is a known category.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpenseStatus is the position of an expense in the approval state machine.
type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
)

// IsValid reports whether s is a known status.
func (s ExpenseStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ApprovalAction is a reviewer's decision.
type ApprovalAction string

const (
	ActionApproved ApprovalAction = "approved"
	ActionRejected ApprovalAction = "rejected"
)

// IsValid reports whether a is approved or rejected.
func (a ApprovalAction) IsValid() bool {
	return a == ActionApproved || a == ActionRejected
}

// Status returns the terminal status an action leads to.
func (a ApprovalAction) Status() ExpenseStatus {
	if a == ActionApproved {
		return StatusApproved
	}
	return StatusRejected
}

// ExpenseDateLayout is the layout of Expense.Date.
const ExpenseDateLayout = "2006-01-02"

// Expense is a claim submitted by an employee.
type Expense struct {
	ExpenseID       string            `json:"expenseID"`
	UserID          string            `json:"userID"`
	UserName        string            `json:"userName"`
	ManagerID       string            `json:"managerID"` // approver resolved at submission
	ManagerName     string            `json:"managerName"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	Date            string            `json:"date"` // YYYY-MM-DD
	Description     string            `json:"description"`
	Category        ExpenseCategory   `json:"category"`
	Status          ExpenseStatus     `json:"status"`
	ReceiptURL      *string           `json:"receiptURL,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	ApprovalHistory []ApprovalHistory `json:"approvalHistory"`
	Version         int64             `json:"version"`
}

// LastDecision returns the most recent history entry, if any.
func (e Expense) LastDecision() (ApprovalHistory, bool) {
	if len(e.ApprovalHistory) == 0 {
		return ApprovalHistory{}, false
	}
	return e.ApprovalHistory[len(e.ApprovalHistory)-1], true
}

// ApprovalHistory is one immutable review record.
type ApprovalHistory struct {
	HistoryID    string         `json:"historyID"`
	ExpenseID    string         `json:"expenseID"`
	ApproverID   string         `json:"approverID"`
	ApproverName string         `json:"approverName"`
	ApproverRole Role           `json:"approverRole"`
	Action       ApprovalAction `json:"action"`
	Comment      *string        `json:"comment,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Package reports renders expense lists as downloadable files.
package reports

import (
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/utils"
)

var expenseHeaders = []string{"Date", "Employee", "Approver", "Category", "Description", "Currency", "Amount", "Status", "Last Comment"}

type expenseRow struct {
	Date        string
	Employee    string
	Approver    string
	Category    string
	Description string
	Currency    string
	Amount      string
	Status      string
	LastComment string
}

func (r expenseRow) values() []string {
	return []string{r.Date, r.Employee, r.Approver, r.Category, r.Description, r.Currency, r.Amount, r.Status, r.LastComment}
}

func toRow(e domain.Expense) expenseRow {
	row := expenseRow{
		Date:        e.Date,
		Employee:    e.UserName,
		Approver:    e.ManagerName,
		Category:    string(e.Category),
		Description: e.Description,
		Currency:    e.Currency,
		Amount:      utils.FormatWithCurrencyPrecision(e.Amount, e.Currency),
		Status:      string(e.Status),
	}
	if last, ok := e.LastDecision(); ok && last.Comment != nil {
		row.LastComment = *last.Comment
	}
	return row
}

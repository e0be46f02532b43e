package dto

import "github.com/SscSPs/expense_management_app/internal/refdata"

// ListCountriesResponse lists the countries a company can be registered in.
type ListCountriesResponse struct {
	Countries []refdata.Country `json:"countries"`
}

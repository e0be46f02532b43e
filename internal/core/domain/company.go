package domain

import "time"

// Company is the single tenant of a running service.
type Company struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`  // ISO 3166-1 alpha-2
	Currency  string    `json:"currency"` // derived from Country
	AdminID   string    `json:"adminID"`
	CreatedAt time.Time `json:"createdAt"`
}

// Package approval decides how a review action transitions an expense.
package approval

import (
	"fmt"
	"strings"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/core/stats"
	"github.com/shopspring/decimal"
)

// DefaultRateThreshold is the approval rate (percent) above which a manager's approvals are auto-rejected.
var DefaultRateThreshold = decimal.NewFromInt(60)

// Policy holds the tunable parts of the engine.
type Policy struct {
	RateThreshold      decimal.Decimal
	CFOOverrideEnabled bool
}

// DefaultPolicy returns the stock policy: 60% threshold, CFO override on.
func DefaultPolicy() Policy {
	return Policy{RateThreshold: DefaultRateThreshold, CFOOverrideEnabled: true}
}

// Decision is the outcome of running the engine on a review request.
type Decision struct {
	FinalAction  domain.ApprovalAction
	Comment      *string
	ApproverRole domain.Role
	Overridden   bool
	Rate         decimal.Decimal
}

// IsCFO reports whether the actor is recognised as the CFO: an admin whose email contains "cfo".
func IsCFO(p Policy, actor domain.User) bool {
	return p.CFOOverrideEnabled &&
		actor.Role == domain.RoleAdmin &&
		strings.Contains(strings.ToLower(actor.Email), "cfo")
}

// OverrideMarker is appended to the comment of an auto-rejected approval.
func OverrideMarker(p Policy) string {
	return fmt.Sprintf(" [Auto-rejected: Approval rate exceeds %s%% threshold]", p.RateThreshold.String())
}

// Exceeds reports whether a manager with the given rate currently has approvals auto-rejected.
func Exceeds(p Policy, rate decimal.Decimal) bool {
	return rate.GreaterThan(p.RateThreshold)
}

// Decide applies the policy to a requested action by actor on expense.
// expenses is the current collection, in which expense is still pending.
func Decide(p Policy, expense domain.Expense, actor domain.User, requested domain.ApprovalAction, comment *string, expenses []domain.Expense) Decision {
	d := Decision{
		FinalAction:  requested,
		Comment:      comment,
		ApproverRole: domain.RoleManager,
		Rate:         decimal.Zero,
	}

	if actor.Role == domain.RoleAdmin || IsCFO(p, actor) {
		d.ApproverRole = domain.RoleAdmin
		return d
	}

	if requested != domain.ActionApproved {
		return d
	}

	d.Rate = stats.ApprovalRate(actor.UserID, expenses)
	if Exceeds(p, d.Rate) {
		base := ""
		if comment != nil {
			base = *comment
		}
		marked := base + OverrideMarker(p)
		d.FinalAction = domain.ActionRejected
		d.Comment = &marked
		d.Overridden = true
	}
	return d
}

// ResolveApprover picks who reviews a new expense: the first manager in insertion order,
// otherwise the company admin.
func ResolveApprover(users []domain.User, company *domain.Company) (id, name string, ok bool) {
	for _, u := range users {
		if u.Role == domain.RoleManager {
			return u.UserID, u.Name, true
		}
	}
	if company == nil {
		return "", "", false
	}
	for _, u := range users {
		if u.UserID == company.AdminID {
			return u.UserID, u.Name, true
		}
	}
	return "", "", false
}

package approval

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func routed(managerID string, statuses ...domain.ExpenseStatus) []domain.Expense {
	out := make([]domain.Expense, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, domain.Expense{
			ExpenseID: string(rune('a' + i)),
			ManagerID: managerID,
			Status:    s,
			Amount:    decimal.NewFromInt(10),
			CreatedAt: time.Now(),
		})
	}
	return out
}

var (
	manager = domain.User{UserID: "m1", Name: "Maya", Email: "maya@acme.test", Role: domain.RoleManager}
	admin   = domain.User{UserID: "a1", Name: "Ada", Email: "ada@acme.test", Role: domain.RoleAdmin}
	cfo     = domain.User{UserID: "c1", Name: "Cy", Email: "Jane.CFO@acme.test", Role: domain.RoleAdmin}
)

func TestOverrideMarker_DefaultThreshold(t *testing.T) {
	assert.Equal(t, " [Auto-rejected: Approval rate exceeds 60% threshold]", OverrideMarker(DefaultPolicy()))
}

func TestIsCFO(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, IsCFO(p, cfo))
	assert.False(t, IsCFO(p, admin))
	assert.False(t, IsCFO(p, domain.User{Email: "cfo@acme.test", Role: domain.RoleManager}))

	p.CFOOverrideEnabled = false
	assert.False(t, IsCFO(p, cfo))
}

func TestDecide_ManagerOverRateIsAutoRejected(t *testing.T) {
	// 2 of 3 routed expenses approved: 66.67% > 60
	expenses := routed("m1", domain.StatusApproved, domain.StatusApproved, domain.StatusPending)
	target := expenses[2]

	d := Decide(DefaultPolicy(), target, manager, domain.ActionApproved, strPtr("looks fine"), expenses)

	assert.Equal(t, domain.ActionRejected, d.FinalAction)
	assert.True(t, d.Overridden)
	assert.Equal(t, domain.RoleManager, d.ApproverRole)
	require.NotNil(t, d.Comment)
	assert.Equal(t, "looks fine [Auto-rejected: Approval rate exceeds 60% threshold]", *d.Comment)
}

func TestDecide_ManagerOverRateWithoutComment(t *testing.T) {
	expenses := routed("m1", domain.StatusApproved, domain.StatusPending)

	d := Decide(DefaultPolicy(), expenses[1], manager, domain.ActionApproved, nil, expenses)

	require.NotNil(t, d.Comment)
	assert.Equal(t, " [Auto-rejected: Approval rate exceeds 60% threshold]", *d.Comment)
}

func TestDecide_ManagerAtThresholdIsNotOverridden(t *testing.T) {
	// 3 of 5 = 60%, the comparison is strict
	expenses := routed("m1",
		domain.StatusApproved, domain.StatusApproved, domain.StatusApproved,
		domain.StatusRejected, domain.StatusPending)

	d := Decide(DefaultPolicy(), expenses[4], manager, domain.ActionApproved, nil, expenses)

	assert.Equal(t, domain.ActionApproved, d.FinalAction)
	assert.False(t, d.Overridden)
	assert.Nil(t, d.Comment)
	assert.True(t, d.Rate.Equal(decimal.NewFromInt(60)))
}

func TestDecide_FirstApprovalHasZeroRate(t *testing.T) {
	expenses := routed("m1", domain.StatusPending)

	d := Decide(DefaultPolicy(), expenses[0], manager, domain.ActionApproved, nil, expenses)

	assert.Equal(t, domain.ActionApproved, d.FinalAction)
	assert.True(t, d.Rate.IsZero())
}

func TestDecide_RejectionPassesThrough(t *testing.T) {
	expenses := routed("m1", domain.StatusApproved, domain.StatusApproved, domain.StatusPending)

	d := Decide(DefaultPolicy(), expenses[2], manager, domain.ActionRejected, strPtr("no receipt"), expenses)

	assert.Equal(t, domain.ActionRejected, d.FinalAction)
	assert.False(t, d.Overridden)
	assert.Equal(t, "no receipt", *d.Comment)
}

func TestDecide_AdminAndCFONeverOverridden(t *testing.T) {
	for _, actor := range []domain.User{admin, cfo} {
		t.Run(actor.Email, func(t *testing.T) {
			expenses := routed(actor.UserID, domain.StatusApproved, domain.StatusApproved, domain.StatusPending)

			d := Decide(DefaultPolicy(), expenses[2], actor, domain.ActionApproved, nil, expenses)

			assert.Equal(t, domain.ActionApproved, d.FinalAction)
			assert.False(t, d.Overridden)
			assert.Equal(t, domain.RoleAdmin, d.ApproverRole)
			assert.Nil(t, d.Comment)
		})
	}
}

func TestDecide_CFOFlagDoesNotAffectDecisions(t *testing.T) {
	p := DefaultPolicy()
	p.CFOOverrideEnabled = false
	expenses := routed(cfo.UserID, domain.StatusApproved, domain.StatusApproved, domain.StatusPending)

	require.False(t, IsCFO(p, cfo))
	d := Decide(p, expenses[2], cfo, domain.ActionApproved, nil, expenses)

	assert.Equal(t, domain.ActionApproved, d.FinalAction)
	assert.False(t, d.Overridden)
	assert.Equal(t, domain.RoleAdmin, d.ApproverRole)
}

func TestDecide_CustomThreshold(t *testing.T) {
	p := Policy{RateThreshold: decimal.NewFromInt(75), CFOOverrideEnabled: true}
	expenses := routed("m1", domain.StatusApproved, domain.StatusApproved, domain.StatusPending)

	d := Decide(p, expenses[2], manager, domain.ActionApproved, nil, expenses)
	assert.Equal(t, domain.ActionApproved, d.FinalAction)

	expenses = routed("m1", domain.StatusApproved, domain.StatusApproved, domain.StatusApproved, domain.StatusPending)
	d = Decide(p, expenses[3], manager, domain.ActionApproved, nil, expenses)
	assert.Equal(t, domain.ActionRejected, d.FinalAction)
	assert.Equal(t, " [Auto-rejected: Approval rate exceeds 75% threshold]", *d.Comment)
}

func TestResolveApprover(t *testing.T) {
	company := &domain.Company{AdminID: "a1"}
	employee := domain.User{UserID: "e1", Role: domain.RoleEmployee}
	second := domain.User{UserID: "m2", Name: "Max", Role: domain.RoleManager}

	id, name, ok := ResolveApprover([]domain.User{admin, employee, manager, second}, company)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)
	assert.Equal(t, "Maya", name)

	id, name, ok = ResolveApprover([]domain.User{admin, employee}, company)
	assert.True(t, ok)
	assert.Equal(t, "a1", id)
	assert.Equal(t, "Ada", name)

	_, _, ok = ResolveApprover([]domain.User{employee}, nil)
	assert.False(t, ok)
}

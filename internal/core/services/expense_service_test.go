package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const autoRejectMarker = " [Auto-rejected: Approval rate exceeds 60% threshold]"

type ExpenseServiceTestSuite struct {
	ServicesTestSuite
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

// org registers an admin, one manager and one employee reporting to that manager.
func (suite *ExpenseServiceTestSuite) org() (admin, manager, employee *domain.AuthResult) {
	admin = suite.registerAdmin("owner@acme.com", "US")
	manager = suite.addUser(admin.Session.SessionID, "Mia Manager", "mia@acme.com", domain.RoleManager, nil)
	employee = suite.addUser(admin.Session.SessionID, "Eve Employee", "eve@acme.com", domain.RoleEmployee, &manager.User.UserID)
	return admin, manager, employee
}

func (suite *ExpenseServiceTestSuite) assertHistoryConsistent() {
	for _, e := range suite.store.Snapshot(context.Background()).Expenses {
		if e.Status == domain.StatusPending {
			suite.Empty(e.ApprovalHistory, "pending expense %s has history", e.ExpenseID)
			continue
		}
		last, ok := e.LastDecision()
		suite.Require().True(ok)
		suite.Equal(e.Status, last.Action.Status())
	}
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_RoutesToFirstManager() {
	_, manager, employee := suite.org()

	e := suite.submit(employee.Session.SessionID, "150.00")

	suite.Equal(domain.StatusPending, e.Status)
	suite.Equal(int64(1), e.Version)
	suite.Empty(e.ApprovalHistory)
	suite.Equal("USD", e.Currency)
	suite.Equal(employee.User.UserID, e.UserID)
	suite.Equal("Eve Employee", e.UserName)
	suite.Equal(manager.User.UserID, e.ManagerID)
	suite.Equal("Mia Manager", e.ManagerName)

	st := suite.store.Snapshot(context.Background())
	suite.Equal(1, st.Stats.TotalExpenses)
	suite.Equal(1, st.Stats.PendingExpenses)

	managerInbox := st.NotificationsFor(manager.User.UserID)
	suite.Require().Len(managerInbox, 1)
	suite.Equal(domain.NotificationApprovalRequired, managerInbox[0].Type)
	suite.Equal("New Expense Submitted", managerInbox[0].Title)
	suite.Equal("Eve Employee submitted an expense of USD 150", managerInbox[0].Message)

	own := st.NotificationsFor(employee.User.UserID)
	suite.Require().Len(own, 1)
	suite.Equal(domain.NotificationExpenseSubmitted, own[0].Type)
}

// Scenario E
func (suite *ExpenseServiceTestSuite) TestSubmitExpense_FallsBackToAdmin() {
	admin := suite.registerAdmin("owner@acme.com", "US")
	employee := suite.addUser(admin.Session.SessionID, "Eve Employee", "eve@acme.com", domain.RoleEmployee, nil)

	e := suite.submit(employee.Session.SessionID, "20")

	suite.Equal(admin.User.UserID, e.ManagerID)
	suite.Equal(admin.User.Name, e.ManagerName)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_Validation() {
	_, _, employee := suite.org()
	before := suite.store.Snapshot(context.Background())

	_, err := suite.svc.Expense.SubmitExpense(context.Background(), employee.Session.SessionID, dto.SubmitExpenseRequest{
		Currency:    "USD",
		Date:        "30/04/2024",
		Description: "taxi",
		Category:    domain.CategoryTransportation,
	})
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Equal(len(before.Expenses), len(suite.store.Snapshot(context.Background()).Expenses))
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_Unauthenticated() {
	suite.org()
	_, err := suite.svc.Expense.SubmitExpense(context.Background(), "no-such-session", dto.SubmitExpenseRequest{
		Currency:    "USD",
		Date:        "2024-04-30",
		Description: "taxi",
		Category:    domain.CategoryTransportation,
	})
	suite.True(errors.Is(err, apperrors.ErrUnauthenticated))
}

func (suite *ExpenseServiceTestSuite) TestDecide_ManagerApproves() {
	_, manager, employee := suite.org()
	e := suite.submit(employee.Session.SessionID, "150.00")

	decided, err := suite.decide(manager.Session.SessionID, e.ExpenseID, domain.ActionApproved, strPtr("ok"))
	suite.Require().NoError(err)

	suite.Equal(domain.StatusApproved, decided.Status)
	suite.Equal(int64(2), decided.Version)
	suite.Require().Len(decided.ApprovalHistory, 1)
	h := decided.ApprovalHistory[0]
	suite.Equal(domain.RoleManager, h.ApproverRole)
	suite.Equal(manager.User.UserID, h.ApproverID)
	suite.Equal("ok", *h.Comment)
	suite.True(decided.UpdatedAt.After(decided.CreatedAt))

	inbox := suite.store.Snapshot(context.Background()).NotificationsFor(employee.User.UserID)
	suite.Require().NotEmpty(inbox)
	suite.Equal(domain.NotificationExpenseApproved, inbox[0].Type)
	suite.Equal("Expense Approved", inbox[0].Title)
	suite.Equal("Your expense of USD 150 has been approved. Comment: ok", inbox[0].Message)
	suite.assertHistoryConsistent()
}

// Scenario A
func (suite *ExpenseServiceTestSuite) TestDecide_AutoRejectsAboveThreshold() {
	_, manager, employee := suite.org()

	var past []*domain.Expense
	for i := 0; i < 10; i++ {
		past = append(past, suite.submit(employee.Session.SessionID, "10"))
	}
	for i, e := range past {
		action := domain.ActionApproved
		if i >= 7 {
			action = domain.ActionRejected
		}
		decided, err := suite.decide(manager.Session.SessionID, e.ExpenseID, action, nil)
		suite.Require().NoError(err)
		suite.Equal(action.Status(), decided.Status)
	}

	e11 := suite.submit(employee.Session.SessionID, "10")
	decided, err := suite.decide(manager.Session.SessionID, e11.ExpenseID, domain.ActionApproved, nil)
	suite.Require().NoError(err)

	suite.Equal(domain.StatusRejected, decided.Status)
	last, _ := decided.LastDecision()
	suite.Equal(domain.ActionRejected, last.Action)
	suite.Require().NotNil(last.Comment)
	suite.Equal(autoRejectMarker, *last.Comment)

	inbox := suite.store.Snapshot(context.Background()).NotificationsFor(employee.User.UserID)
	suite.Equal("Expense Rejected", inbox[0].Title)
	suite.True(strings.HasSuffix(inbox[0].Message, autoRejectMarker))
	suite.assertHistoryConsistent()
}

// Scenario B
func (suite *ExpenseServiceTestSuite) TestDecide_BelowThresholdApproves() {
	_, manager, employee := suite.org()

	var past []*domain.Expense
	for i := 0; i < 5; i++ {
		past = append(past, suite.submit(employee.Session.SessionID, "10"))
	}
	for i, e := range past {
		action := domain.ActionRejected
		if i < 2 {
			action = domain.ActionApproved
		}
		_, err := suite.decide(manager.Session.SessionID, e.ExpenseID, action, nil)
		suite.Require().NoError(err)
	}

	e6 := suite.submit(employee.Session.SessionID, "10")
	decided, err := suite.decide(manager.Session.SessionID, e6.ExpenseID, domain.ActionApproved, strPtr("fine"))
	suite.Require().NoError(err)

	suite.Equal(domain.StatusApproved, decided.Status)
	last, _ := decided.LastDecision()
	suite.Equal("fine", *last.Comment)
}

// Scenario C
func (suite *ExpenseServiceTestSuite) TestDecide_CFORejectionKeepsComment() {
	cfo := suite.registerAdmin("cfo@company.com", "US")
	e := suite.submit(cfo.Session.SessionID, "5000")

	decided, err := suite.decide(cfo.Session.SessionID, e.ExpenseID, domain.ActionRejected, strPtr("over budget"))
	suite.Require().NoError(err)

	suite.Equal(domain.StatusRejected, decided.Status)
	last, _ := decided.LastDecision()
	suite.Equal(domain.RoleAdmin, last.ApproverRole)
	suite.Equal("over budget", *last.Comment)
}

func (suite *ExpenseServiceTestSuite) TestDecide_AdminIsNeverOverridden() {
	admin, manager, employee := suite.org()

	// two approvals out of three routed expenses puts the manager above the threshold
	for i := 0; i < 2; i++ {
		e := suite.submit(employee.Session.SessionID, "10")
		_, err := suite.decide(manager.Session.SessionID, e.ExpenseID, domain.ActionApproved, nil)
		suite.Require().NoError(err)
	}

	e := suite.submit(employee.Session.SessionID, "10")
	rate, err := suite.svc.Dashboard.GetMyApprovalRate(context.Background(), manager.Session.SessionID)
	suite.Require().NoError(err)
	suite.True(rate.AutoRejecting)

	decided, err := suite.decide(admin.Session.SessionID, e.ExpenseID, domain.ActionApproved, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, decided.Status)
	last, _ := decided.LastDecision()
	suite.Equal(domain.RoleAdmin, last.ApproverRole)
	suite.Nil(last.Comment)
}

func (suite *ExpenseServiceTestSuite) TestDecide_BlankCommentIsDropped() {
	_, manager, employee := suite.org()
	e := suite.submit(employee.Session.SessionID, "10")

	decided, err := suite.decide(manager.Session.SessionID, e.ExpenseID, domain.ActionRejected, strPtr("  "))
	suite.Require().NoError(err)
	last, _ := decided.LastDecision()
	suite.Nil(last.Comment)

	inbox := suite.store.Snapshot(context.Background()).NotificationsFor(employee.User.UserID)
	suite.Equal("Your expense of USD 10 has been rejected", inbox[0].Message)
}

func (suite *ExpenseServiceTestSuite) TestDecide_AlreadyDecidedConflicts() {
	_, manager, employee := suite.org()
	e := suite.submit(employee.Session.SessionID, "10")
	_, err := suite.decide(manager.Session.SessionID, e.ExpenseID, domain.ActionApproved, nil)
	suite.Require().NoError(err)
	before := suite.store.Snapshot(context.Background())

	_, err = suite.decide(manager.Session.SessionID, e.ExpenseID, domain.ActionRejected, nil)
	suite.True(errors.Is(err, apperrors.ErrConflict))

	after := suite.store.Snapshot(context.Background())
	suite.Equal(before.Expenses, after.Expenses)
	suite.Equal(len(before.Notifications), len(after.Notifications))
}

func (suite *ExpenseServiceTestSuite) TestDecide_StaleVersionConflicts() {
	_, manager, employee := suite.org()
	e := suite.submit(employee.Session.SessionID, "10")

	stale := int64(7)
	_, err := suite.svc.Expense.Decide(context.Background(), manager.Session.SessionID, e.ExpenseID, dto.DecideExpenseRequest{
		Action:          domain.ActionApproved,
		ExpectedVersion: &stale,
	})
	suite.True(errors.Is(err, apperrors.ErrConflict))

	current := e.Version
	decided, err := suite.svc.Expense.Decide(context.Background(), manager.Session.SessionID, e.ExpenseID, dto.DecideExpenseRequest{
		Action:          domain.ActionApproved,
		ExpectedVersion: &current,
	})
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, decided.Status)
}

func (suite *ExpenseServiceTestSuite) TestDecide_Authorization() {
	admin, _, employee := suite.org()
	other := suite.addUser(admin.Session.SessionID, "Oscar Other", "oscar@acme.com", domain.RoleManager, nil)
	e := suite.submit(employee.Session.SessionID, "10")

	_, err := suite.decide(employee.Session.SessionID, e.ExpenseID, domain.ActionApproved, nil)
	suite.True(errors.Is(err, apperrors.ErrForbidden), "employees cannot review")

	_, err = suite.decide(other.Session.SessionID, e.ExpenseID, domain.ActionApproved, nil)
	suite.True(errors.Is(err, apperrors.ErrForbidden), "unrelated manager cannot review")

	_, err = suite.decide(other.Session.SessionID, "missing", domain.ActionApproved, nil)
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	_, err = suite.decide("", e.ExpenseID, domain.ActionApproved, nil)
	suite.True(errors.Is(err, apperrors.ErrUnauthenticated))

	got, err := suite.svc.Expense.GetExpense(context.Background(), admin.Session.SessionID, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, got.Status)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_VisibilityFiltersAndPaging() {
	admin, manager, employee := suite.org()
	peer := suite.addUser(admin.Session.SessionID, "Pat Peer", "pat@acme.com", domain.RoleEmployee, nil)

	small := suite.submit(employee.Session.SessionID, "5")
	big := suite.submit(employee.Session.SessionID, "500")
	peerExpense := suite.submit(peer.Session.SessionID, "50")
	ctx := context.Background()

	own, total, err := suite.svc.Expense.ListExpenses(ctx, employee.Session.SessionID, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Equal(2, total)
	suite.Equal(big.ExpenseID, own[0].ExpenseID, "same date sorts newest first")
	suite.Equal(small.ExpenseID, own[1].ExpenseID)

	all, total, err := suite.svc.Expense.ListExpenses(ctx, admin.Session.SessionID, dto.ListExpensesParams{SortBy: dto.SortByAmount})
	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.Equal([]string{big.ExpenseID, peerExpense.ExpenseID, small.ExpenseID},
		[]string{all[0].ExpenseID, all[1].ExpenseID, all[2].ExpenseID})

	byName, _, err := suite.svc.Expense.ListExpenses(ctx, admin.Session.SessionID, dto.ListExpensesParams{SortBy: dto.SortByEmployee})
	suite.Require().NoError(err)
	suite.Equal("Eve Employee", byName[0].UserName)
	suite.Equal("Pat Peer", byName[2].UserName)

	team, total, err := suite.svc.Expense.ListExpenses(ctx, manager.Session.SessionID, dto.ListExpensesParams{Team: true})
	suite.Require().NoError(err)
	suite.Equal(2, total)
	for _, e := range team {
		suite.Equal(employee.User.UserID, e.UserID)
	}

	page, total, err := suite.svc.Expense.ListExpenses(ctx, admin.Session.SessionID, dto.ListExpensesParams{Limit: 1, Offset: 1})
	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.Len(page, 1)

	empty, total, err := suite.svc.Expense.ListExpenses(ctx, admin.Session.SessionID, dto.ListExpensesParams{Offset: 10})
	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.Empty(empty)

	pending, _, err := suite.svc.Expense.ListExpenses(ctx, admin.Session.SessionID, dto.ListExpensesParams{Status: domain.StatusApproved})
	suite.Require().NoError(err)
	suite.Empty(pending)

	_, err = suite.svc.Expense.GetExpense(ctx, peer.Session.SessionID, small.ExpenseID)
	suite.True(errors.Is(err, apperrors.ErrNotFound), "other employees' expenses are invisible")
}

func (suite *ExpenseServiceTestSuite) TestRemindPendingApprovals() {
	_, manager, employee := suite.org()
	old := suite.submit(employee.Session.SessionID, "10")
	suite.now = suite.now.Add(72 * time.Hour)
	suite.submit(employee.Session.SessionID, "20")

	sent, err := suite.svc.Expense.RemindPendingApprovals(context.Background(), 48*time.Hour)
	suite.Require().NoError(err)
	suite.Equal(1, sent)

	inbox := suite.store.Snapshot(context.Background()).NotificationsFor(manager.User.UserID)
	suite.Equal("Approval Reminder", inbox[0].Title)
	suite.Contains(inbox[0].Message, old.Date)

	_, err = suite.decide(manager.Session.SessionID, old.ExpenseID, domain.ActionApproved, nil)
	suite.Require().NoError(err)
	sent, err = suite.svc.Expense.RemindPendingApprovals(context.Background(), 48*time.Hour)
	suite.Require().NoError(err)
	suite.Zero(sent)
}

func (suite *ExpenseServiceTestSuite) TestExportExpenses() {
	admin, manager, employee := suite.org()
	suite.submit(employee.Session.SessionID, "10")
	ctx := context.Background()

	var buf bytes.Buffer
	contentType, fileName, err := suite.svc.Export.ExportExpenses(ctx, admin.Session.SessionID, dto.ExportExpensesParams{Format: "xlsx"}, &buf)
	suite.Require().NoError(err)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	suite.True(strings.HasSuffix(fileName, ".xlsx"))
	suite.NotZero(buf.Len())

	buf.Reset()
	contentType, fileName, err = suite.svc.Export.ExportExpenses(ctx, admin.Session.SessionID, dto.ExportExpensesParams{Format: "pdf"}, &buf)
	suite.Require().NoError(err)
	suite.Equal("application/pdf", contentType)
	suite.True(strings.HasSuffix(fileName, ".pdf"))
	suite.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	_, _, err = suite.svc.Export.ExportExpenses(ctx, manager.Session.SessionID, dto.ExportExpensesParams{Format: "pdf"}, &buf)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
}

func (suite *ExpenseServiceTestSuite) TestAddUser_DeliveryFailureRollsBack() {
	admin := suite.registerAdmin("owner@acme.com", "US")
	suite.creds.ExpectedCalls = nil
	suite.creds.On("Deliver", mock.Anything, mock.Anything).Return(nil, errors.New("smtp down")).Once()
	before := suite.store.Snapshot(context.Background())

	_, err := suite.svc.User.AddUser(context.Background(), admin.Session.SessionID, dto.AddUserRequest{
		Name:  "Mia Manager",
		Email: "mia@acme.com",
		Role:  domain.RoleManager,
	})
	suite.Require().Error(err)

	after := suite.store.Snapshot(context.Background())
	suite.Equal(before.Users, after.Users)
	suite.Equal(before.Notifications, after.Notifications)
	suite.creds.AssertExpectations(suite.T())
}

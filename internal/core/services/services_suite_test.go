package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/services"
	"github.com/SscSPs/expense_management_app/internal/delivery"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/platform/config"
	"github.com/SscSPs/expense_management_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CredentialDeliveryChannel ---
type MockCredentialChannel struct {
	mock.Mock
}

func (m *MockCredentialChannel) Deliver(ctx context.Context, creds delivery.Credentials) ([]domain.Notification, error) {
	args := m.Called(ctx, creds)
	var ns []domain.Notification
	if args.Get(0) != nil {
		ns = args.Get(0).([]domain.Notification)
	}
	return ns, args.Error(1)
}

// ServicesTestSuite drives the services against a real memory store.
type ServicesTestSuite struct {
	suite.Suite
	store     *memory.StateStore
	creds     *MockCredentialChannel
	svc       *portssvc.ServiceContainer
	now       time.Time
	passwords map[string]string
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:             "test-secret",
		JWTExpiryDuration:     time.Hour,
		JWTIssuer:             "test",
		ApprovalRateThreshold: decimal.NewFromInt(60),
		CFOOverrideEnabled:    true,
		HighValueThreshold:    decimal.NewFromInt(1000),
	}
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.store = memory.NewStateStore()
	suite.creds = new(MockCredentialChannel)
	suite.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	suite.passwords = map[string]string{}

	suite.creds.On("Deliver", mock.Anything, mock.AnythingOfType("delivery.Credentials")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(delivery.Credentials)
			suite.passwords[c.User.Email] = c.Password
		}).
		Return(nil, nil)

	suite.svc = services.NewServiceContainer(
		testConfig(),
		portsrepo.RepositoryProvider{Store: suite.store},
		suite.creds,
		services.WithClock(suite.clock),
	)
}

func (suite *ServicesTestSuite) clock() time.Time {
	return suite.now
}

func (suite *ServicesTestSuite) tick() {
	suite.now = suite.now.Add(time.Minute)
}

func (suite *ServicesTestSuite) registerAdmin(email, country string) *domain.AuthResult {
	res, err := suite.svc.Auth.RegisterAdmin(context.Background(), dto.RegisterAdminRequest{
		Name:            "Ada Admin",
		Email:           email,
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		CompanyName:     "Acme",
		Country:         country,
	})
	suite.Require().NoError(err)
	return res
}

// addUser creates a user through the admin and logs them in with the delivered password.
func (suite *ServicesTestSuite) addUser(adminSession, name, email string, role domain.Role, managerID *string) *domain.AuthResult {
	ctx := context.Background()
	_, err := suite.svc.User.AddUser(ctx, adminSession, dto.AddUserRequest{
		Name:      name,
		Email:     email,
		Role:      role,
		ManagerID: managerID,
	})
	suite.Require().NoError(err)

	res, err := suite.svc.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: suite.passwords[email]})
	suite.Require().NoError(err)
	return res
}

func (suite *ServicesTestSuite) submit(session, amount string) *domain.Expense {
	suite.tick()
	e, err := suite.svc.Expense.SubmitExpense(context.Background(), session, dto.SubmitExpenseRequest{
		Amount:      decimal.RequireFromString(amount),
		Currency:    "usd",
		Date:        "2024-04-30",
		Description: "client lunch",
		Category:    domain.CategoryMeals,
	})
	suite.Require().NoError(err)
	return e
}

func (suite *ServicesTestSuite) decide(session, expenseID string, action domain.ApprovalAction, comment *string) (*domain.Expense, error) {
	suite.tick()
	return suite.svc.Expense.Decide(context.Background(), session, expenseID, dto.DecideExpenseRequest{
		Action:  action,
		Comment: comment,
	})
}

func strPtr(s string) *string {
	return &s
}

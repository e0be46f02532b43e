package services

import (
	"github.com/SscSPs/expense_management_app/internal/core/approval"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/delivery"
	"github.com/SscSPs/expense_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, credentials delivery.CredentialDeliveryChannel, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	policy := approval.Policy{
		RateThreshold:      cfg.ApprovalRateThreshold,
		CFOOverrideEnabled: cfg.CFOOverrideEnabled,
	}

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.Store, container.Token, options...)
	container.User = NewUserService(repos.Store, credentials, options...)
	container.Expense = NewExpenseService(repos.Store, policy, options...)
	container.Notification = NewNotificationService(repos.Store, options...)
	container.Dashboard = NewDashboardService(repos.Store, policy, cfg.HighValueThreshold, options...)

	// Export reads through the expense service so exports honour list visibility and filters.
	container.Export = NewExportService(repos.Store, container.Expense, options...)

	return container
}

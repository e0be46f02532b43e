package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the role dashboards.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/approval-rate", h.getApprovalRate)
		dashboard.GET("/high-value", h.getHighValue)
	}
}

// getDashboard godoc
// @Summary Dashboard
// @Description Company-wide stats for admins and managers, personal stats for employees.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	d, err := h.dashboardService.GetDashboard(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(d))
}

// getApprovalRate godoc
// @Summary Manager approval rate
// @Description The caller's approval rate and whether approvals are currently auto-rejected. Managers only.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ApprovalRateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/approval-rate [get]
func (h *dashboardHandler) getApprovalRate(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	r, err := h.dashboardService.GetMyApprovalRate(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to compute approval rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalRateResponse(r))
}

// getHighValue godoc
// @Summary High-value expenses
// @Description Expenses above the high-value threshold, pending first. CFO only.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.HighValueResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/high-value [get]
func (h *dashboardHandler) getHighValue(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	r, err := h.dashboardService.GetHighValueExpenses(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to load high-value expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToHighValueResponse(r))
}

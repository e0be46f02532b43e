package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/middleware"
	"github.com/SscSPs/expense_management_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	exportService  portssvc.ExportSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade, xs portssvc.ExportSvcFacade, posthogClient *utils.PosthogClientWrapper) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
		exportService:  xs,
		posthogClient:  posthogClient,
	}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, exportService portssvc.ExportSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newExpenseHandler(expenseService, exportService, posthogClient)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.submitExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/export", h.exportExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.POST("/:id/decision", h.decideExpense)
	}
}

// submitExpense godoc
// @Summary Submit an expense
// @Description Files a pending expense for the caller and routes it to an approver.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.SubmitExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), sessionID, req)
	if err != nil {
		respondError(c, err, "Failed to submit expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists the expenses visible to the caller. Admins see every expense, managers the ones routed to them or submitted by their reports, employees their own.
// @Tags expenses
// @Produce json
// @Param userId query string false "Submitter"
// @Param managerId query string false "Approver"
// @Param status query string false "pending, approved or rejected"
// @Param category query string false "Expense category"
// @Param team query bool false "Only expenses of the caller's reports"
// @Param sortBy query string false "date (default), amount or employee"
// @Param limit query int false "Page size, 0 for all" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), sessionID, params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ToExpenseResponses(expenses),
		Total:    total,
	})
}

// getExpense godoc
// @Summary Get an expense
// @Description Returns an expense with its approval history.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpense(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// decideExpense godoc
// @Summary Approve or reject an expense
// @Description Records a review decision on a pending expense. Approvals by managers whose approval rate is above the threshold are turned into rejections.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param decision body dto.DecideExpenseRequest true "Decision"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided or stale version"
// @Security BearerAuth
// @Router /expenses/{id}/decision [post]
func (h *expenseHandler) decideExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.DecideExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expenseID := c.Param("id")
	expense, err := h.expenseService.Decide(c.Request.Context(), sessionID, expenseID, req)
	if err != nil {
		respondError(c, err, "Failed to record decision")
		return
	}

	if req.Action == domain.ActionApproved && expense.Status == domain.StatusRejected {
		logger.Info("Requested approval was auto-rejected", slog.String("expense_id", expenseID))
		middleware.PosthogEvent(c, h.posthogClient, "expense_auto_rejected", map[string]any{
			"expense_id": expenseID,
			"amount":     expense.Amount.String(),
			"currency":   expense.Currency,
		})
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// exportExpenses godoc
// @Summary Export expenses
// @Description Renders every expense matching the list filters as an XLSX workbook or a PDF report. Admin only.
// @Tags expenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param format query string false "xlsx (default) or pdf"
// @Param status query string false "pending, approved or rejected"
// @Param category query string false "Expense category"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/export [get]
func (h *expenseHandler) exportExpenses(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ExportExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	// render into a buffer so failures can still be reported as JSON
	var buf bytes.Buffer
	contentType, fileName, err := h.exportService.ExportExpenses(c.Request.Context(), sessionID, params, &buf)
	if err != nil {
		respondError(c, err, "Failed to export expenses")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

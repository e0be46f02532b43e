package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_management_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// workflowEvents names the analytics event of each workflow route.
var workflowEvents = map[string]string{
	http.MethodPost + " /api/v1/users":                  "user_added",
	http.MethodPost + " /api/v1/expenses":               "expense_submitted",
	http.MethodPost + " /api/v1/expenses/:id/decision":  "expense_decided",
	http.MethodGet + " /api/v1/expenses/export":         "expenses_exported",
	http.MethodPost + " /api/v1/notifications/:id/read": "notification_read",
	http.MethodGet + " /api/v1/dashboard/high-value":    "high_value_report_viewed",
	http.MethodGet + " /api/v1/dashboard/approval-rate": "approval_rate_viewed",
}

// EventName maps a matched route to its analytics event. Routes without a
// workflow event are named after their path, so
// "GET /api/v1/expenses/:id" becomes "get_api_v1_expenses_id".
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	if name, ok := workflowEvents[method+" "+fullPath]; ok {
		return name
	}
	path := strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(strings.TrimPrefix(fullPath, "/"))
	return strings.ToLower(method) + "_" + path
}

// PosthogMiddleware tracks successful authenticated API calls.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		for _, param := range c.Params {
			props[param.Key] = param.Value
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom workflow event for the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}

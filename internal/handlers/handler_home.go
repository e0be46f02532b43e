package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/refdata"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// listCountries godoc
// @Summary List countries
// @Description Countries a company can be registered in, with their currency.
// @Tags reference
// @Produce json
// @Success 200 {object} dto.ListCountriesResponse
// @Router /countries [get]
func listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListCountriesResponse{Countries: refdata.Countries()})
}

// registerPublicRoutes registers unauthenticated routes.
func registerPublicRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
	r.GET("/api/v1/countries", listCountries)
}

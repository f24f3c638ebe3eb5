// Package handlers implements HTTP handlers for the yelp-fusion API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	tokens yelp.TokenProvider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(tokens yelp.TokenProvider) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 once the Fusion credentials have produced an access
// token, 503 otherwise. The first probe triggers the token exchange; after
// that the cached token makes the check free.
//
// @Summary Readiness check
// @Description Returns 200 if Fusion credentials are usable, 503 otherwise.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.tokens.Token(c.Request().Context()); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

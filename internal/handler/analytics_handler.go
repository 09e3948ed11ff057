package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group, auth *middleware.Authenticator) {
	// The service answers 401 itself so anonymous callers get the login copy.
	g.GET("/:id/analytics", h.EventAnalytics, auth.OptionalAuth)
}

func (h *AnalyticsHandler) EventAnalytics(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	analytics, err := h.svc.EventAnalytics(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, analytics)
}

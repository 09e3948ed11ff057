package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

type PayoutHandler struct {
	svc service.PayoutService
}

func NewPayoutHandler(svc service.PayoutService) *PayoutHandler {
	return &PayoutHandler{svc: svc}
}

func (h *PayoutHandler) RegisterRoutes(api *echo.Group, auth *middleware.Authenticator) {
	g := api.Group("/admin/payouts", auth.RequireAuth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/:id/status", h.UpdateStatus)
}

func validPayoutStatus(s models.PayoutStatus) bool {
	switch s {
	case models.PayoutPending, models.PayoutProcessing, models.PayoutPaid, models.PayoutFailed:
		return true
	}
	return false
}

func (h *PayoutHandler) List(c echo.Context) error {
	var status *models.PayoutStatus
	if s := models.PayoutStatus(c.QueryParam("status")); s != "" {
		if !validPayoutStatus(s) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &s
	}

	payouts, err := h.svc.List(c.Request().Context(), middleware.ActorFrom(c), status)
	if err != nil {
		return httpError(err)
	}
	if payouts == nil {
		payouts = []models.Payout{}
	}
	return c.JSON(http.StatusOK, dto.PayoutListResponse{Payouts: payouts})
}

func (h *PayoutHandler) Create(c echo.Context) error {
	var req dto.CreatePayoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payout, err := h.svc.Create(c.Request().Context(), middleware.ActorFrom(c), req.EventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.PayoutEnvelope{Payout: payout})
}

func (h *PayoutHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id", "payout")
	if err != nil {
		return err
	}
	var req dto.PayoutStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status := models.PayoutStatus(req.Status)
	if !validPayoutStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payout status")
	}

	payout, err := h.svc.UpdateStatus(c.Request().Context(), middleware.ActorFrom(c), id, status, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.PayoutEnvelope{Payout: payout})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/service"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
)

type DonationHandler struct {
	svc service.DonationService
}

func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

func (h *DonationHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/donations")
	g.POST("/checkout", h.Checkout)
	g.POST("/paypal", h.RecordPayPal)
	g.POST("/share", h.Share)
	api.GET("/platform/fees", h.Fees)
}

func toDonationInput(req dto.DonationRequest) service.DonationInput {
	return service.DonationInput{
		EventID:    req.EventID,
		Amount:     req.Amount,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Message:    req.Message,
	}
}

func (h *DonationHandler) Checkout(c echo.Context) error {
	var req dto.DonationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	url, err := h.svc.Checkout(c.Request().Context(), toDonationInput(req))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}

func (h *DonationHandler) RecordPayPal(c echo.Context) error {
	var req dto.PayPalDonationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	donation, err := h.svc.RecordPayPal(c.Request().Context(), service.PayPalInput{
		DonationInput: toDonationInput(req.DonationRequest),
		OrderID:       req.OrderID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.DonationEnvelope{Donation: donation})
}

func (h *DonationHandler) Share(c echo.Context) error {
	var req dto.ShareRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.svc.Share(c.Request().Context(), service.ShareInput{To: req.To, EventID: req.EventID, Message: req.Message}); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *DonationHandler) Fees(c echo.Context) error {
	pct := h.svc.FeePercent()
	f, _ := pct.Float64()
	return c.JSON(http.StatusOK, dto.FeesResponse{FeePercent: pct, Disclosure: fundraising.FeeDisclosure(f)})
}

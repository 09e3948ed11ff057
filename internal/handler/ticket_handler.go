package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

type TicketHandler struct {
	svc service.TicketService
	now func() time.Time
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc, now: time.Now}
}

func (h *TicketHandler) RegisterRoutes(g *echo.Group, auth *middleware.Authenticator, cached echo.MiddlewareFunc) {
	g.GET("/:id/tickets", h.List, cached)
	g.POST("/:id/tickets", h.Create, auth.RequireAuth)
	g.POST("/:id/tickets/purchase", h.Purchase)
}

func (h *TicketHandler) List(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	tickets, err := h.svc.ListTickets(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	now := h.now()
	resp := dto.TicketListResponse{Tickets: make([]dto.TicketResponse, len(tickets))}
	for i := range tickets {
		resp.Tickets[i] = dto.ToTicketResponse(&tickets[i], now)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) Create(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ticket := &models.Ticket{
		Name:          req.Name,
		PriceCents:    req.PriceCents,
		Currency:      req.Currency,
		QuantityTotal: req.QuantityTotal,
		SalesStartAt:  req.SalesStartAt,
		SalesEndAt:    req.SalesEndAt,
	}
	if err := h.svc.CreateTicket(c.Request().Context(), middleware.ActorFrom(c), id, ticket); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.TicketEnvelope{Ticket: dto.ToTicketResponse(ticket, h.now())})
}

func (h *TicketHandler) Purchase(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.PurchaseTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Purchase(c.Request().Context(), id, service.PurchaseInput{
		TicketID: req.TicketID,
		Quantity: req.Quantity,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.PurchaseResponse{Registration: res.Registration, URL: res.CheckoutURL})
}

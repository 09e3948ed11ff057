package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/service"
	"github.com/shopspring/decimal"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group, auth *middleware.Authenticator, cached echo.MiddlewareFunc) {
	g.GET("", h.ListEvents, cached)
	g.POST("", h.CreateEvent, auth.RequireAuth)
	g.GET("/:id", h.GetEvent, auth.OptionalAuth, cached)
	g.PATCH("/:id", h.UpdateEvent, auth.RequireAuth)
	g.DELETE("/:id", h.DeleteEvent, auth.RequireAuth)
	g.POST("/:id/publish", h.Publish, auth.RequireAuth)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	event := &models.Event{
		Title:          req.Title,
		Description:    req.Description,
		EventType:      models.EventType(req.EventType),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Location:       req.Location,
		IsPublic:       req.IsPublic,
		IsPublished:    req.IsPublished,
		TicketCurrency: req.TicketCurrency,
		TicketQuantity: req.TicketQuantity,
	}
	if req.GoalAmount != nil {
		event.GoalAmount = decimal.NewNullDecimal(*req.GoalAmount)
	}
	if req.TicketPrice != nil {
		event.TicketPrice = decimal.NewNullDecimal(*req.TicketPrice)
	}

	if err := h.svc.CreateEvent(c.Request().Context(), middleware.ActorFrom(c), event); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.EventEnvelope{Event: dto.ToEventResponse(event)})
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := dto.EventListResponse{Events: make([]dto.EventResponse, len(events))}
	for i := range events {
		resp.Events[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.EventEnvelope{Event: dto.ToEventResponse(event)})
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), middleware.ActorFrom(c), id, service.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.EventEnvelope{Event: dto.ToEventResponse(event)})
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.DeleteEventResponse{Success: true, ID: id})
}

func (h *EventHandler) Publish(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.PublishRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	event, err := h.svc.SetPublished(c.Request().Context(), middleware.ActorFrom(c), id, req.Publish)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.EventEnvelope{Event: dto.ToEventResponse(event)})
}

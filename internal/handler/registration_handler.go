package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(g *echo.Group, auth *middleware.Authenticator) {
	g.POST("/:id/register", h.Register)
	g.GET("/:id/registrations", h.List, auth.RequireAuth)
	g.POST("/:id/registrations/bulk", h.Bulk, auth.RequireAuth)
	g.GET("/:id/registrations/csv", h.ExportCSV, auth.RequireAuth)
}

func (h *RegistrationHandler) Register(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Type != "" && req.Type != string(models.RegistrationRSVP) {
		return echo.NewHTTPError(http.StatusBadRequest, "tickets are purchased through /tickets/purchase")
	}

	reg, err := h.svc.RSVP(c.Request().Context(), id, service.RSVPInput{
		Name:     req.Name,
		Email:    req.Email,
		Quantity: req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.RegistrationEnvelope{Registration: reg})
}

func (h *RegistrationHandler) List(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	f, err := registrationFilter(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), middleware.ActorFrom(c), id, f)
	if err != nil {
		return httpError(err)
	}
	regs := page.Registrations
	if regs == nil {
		regs = []models.Registration{}
	}
	return c.JSON(http.StatusOK, dto.RegistrationPageResponse{
		Registrations: regs,
		Total:         page.Total,
		Page:          page.Page,
		PageSize:      page.PageSize,
	})
}

func registrationFilter(c echo.Context) (repository.RegistrationFilter, error) {
	var f repository.RegistrationFilter

	if t := c.QueryParam("type"); t != "" && t != "all" {
		rt := models.RegistrationType(t)
		if rt != models.RegistrationRSVP && rt != models.RegistrationTicket {
			return f, echo.NewHTTPError(http.StatusBadRequest, "type must be rsvp or ticket")
		}
		f.Type = &rt
	}

	var err error
	if f.From, err = parseDate(c.QueryParam("from")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	if f.Before, err = parseEndDate(c.QueryParam("to")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}

	for name, dst := range map[string]*int{"page": &f.Page, "pageSize": &f.PageSize} {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		}
		*dst = n
	}
	return f, nil
}

func (h *RegistrationHandler) Bulk(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.BulkRegistrationsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Action != "update_status" {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported action")
	}

	n, err := h.svc.BulkUpdateStatus(c.Request().Context(), middleware.ActorFrom(c), id, req.RegistrationIDs, models.RegistrationStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.BulkUpdateResponse{Updated: n})
}

func (h *RegistrationHandler) ExportCSV(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	export, err := h.svc.ExportCSV(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", export.Data)
}

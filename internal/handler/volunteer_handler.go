package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/dto"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

type VolunteerHandler struct {
	svc service.VolunteerService
}

func NewVolunteerHandler(svc service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

func (h *VolunteerHandler) RegisterRoutes(g *echo.Group, auth *middleware.Authenticator, cached echo.MiddlewareFunc) {
	g.POST("/volunteer-signup", h.Signup)
	g.GET("/:id/volunteer-shifts", h.ListShifts, cached)
	g.POST("/:id/volunteer-shifts", h.CreateShift, auth.RequireAuth)
}

func (h *VolunteerHandler) ListShifts(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	shifts, err := h.svc.ListShifts(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	resp := dto.ShiftListResponse{Shifts: make([]dto.ShiftResponse, len(shifts))}
	for i := range shifts {
		resp.Shifts[i] = dto.ToShiftResponse(&shifts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *VolunteerHandler) CreateShift(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	var req dto.CreateShiftRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shift := &models.VolunteerShift{
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		MaxVolunteers: req.MaxVolunteers,
		Requirements:  req.Requirements,
		SkillsNeeded:  req.SkillsNeeded,
		Location:      req.Location,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := h.svc.CreateShift(c.Request().Context(), middleware.ActorFrom(c), id, shift); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ShiftEnvelope{Shift: dto.ToShiftResponse(shift)})
}

func (h *VolunteerHandler) Signup(c echo.Context) error {
	var req dto.VolunteerSignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	signup, err := h.svc.Signup(c.Request().Context(), service.SignupInput{
		ShiftID:               req.ShiftID,
		Name:                  req.VolunteerName,
		Email:                 req.VolunteerEmail,
		Phone:                 req.VolunteerPhone,
		Skills:                req.Skills,
		Experience:            req.Experience,
		Availability:          req.Availability,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.SignupEnvelope{Signup: signup})
}

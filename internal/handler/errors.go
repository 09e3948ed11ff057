package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/service"
)

// httpError maps service failures onto status codes. Unknown errors pass
// through to the central error handler as 500s.
func httpError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrShiftNotFound),
		errors.Is(err, service.ErrPayoutNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAdminOnly):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTicketRequired),
		errors.Is(err, service.ErrShiftInactive):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTicketUnavailable),
		errors.Is(err, service.ErrInsufficientTickets),
		errors.Is(err, service.ErrShiftFull),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNothingToPayout),
		errors.Is(err, service.ErrDuplicatePayment),
		errors.Is(err, service.ErrAwaitingPayment):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCheckoutUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return err
}

func parseID(c echo.Context, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return id, nil
}

func eventID(c echo.Context) (uuid.UUID, error) {
	return parseID(c, "id", "event")
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseEndDate turns a "to" bound into an exclusive cutoff. A calendar date
// covers that whole day; a timestamp is used as is.
func parseEndDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		end := t.AddDate(0, 0, 1)
		return &end, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

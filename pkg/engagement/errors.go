package engagement

import (
	"errors"
	"net/http"

	"github.com/raoc-coder/eventraisehub/pkg/client"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrSuperseded     = errors.New("load superseded by a newer request")
	ErrSubmitting     = errors.New("a submission is already in progress")
	ErrNoModal        = errors.New("form is not open")
	ErrLoginRequired  = errors.New("Please log in to view analytics")
	ErrOwnerRequired  = errors.New("You must be the event owner or an admin to view analytics")
	ErrEmptyExport    = errors.New("No registrations to export")
	ErrExportFailed   = errors.New("Failed to export registrations")
	ErrNoSelection    = errors.New("Select at least one registration")
	ErrTicketClosed   = errors.New("This ticket is not available")
	ErrShiftFull      = errors.New("This shift is full")
	ErrUnknownTicket  = errors.New("Please choose a ticket")
	ErrUnknownShift   = errors.New("Please choose a shift")
	ErrOwnerOnly      = errors.New("Only the event owner can do that")
	ErrDonationFailed = errors.New("Failed to process donation")
)

// ValidationError is a client-side rejection; no request was sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UserMessage picks the copy shown for err: validation text and server
// error fields verbatim, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	for _, known := range []error{ErrSubmitting, ErrTicketClosed, ErrShiftFull, ErrUnknownTicket, ErrUnknownShift, ErrOwnerOnly, ErrLoginRequired, ErrOwnerRequired, ErrEmptyExport, ErrExportFailed, ErrNoSelection} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}

// authError maps the analytics-style 401/403 replies onto their sentinels.
func authError(err error) error {
	switch client.StatusOf(err) {
	case http.StatusUnauthorized:
		return ErrLoginRequired
	case http.StatusForbidden:
		return ErrOwnerRequired
	}
	return err
}

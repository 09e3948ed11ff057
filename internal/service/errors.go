package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrShiftNotFound       = errors.New("volunteer shift not found")
	ErrPayoutNotFound      = errors.New("payout not found")
	ErrPaymentNotFound     = errors.New("no donation or registration matches this payment")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("must be the event owner or an admin")
	ErrAdminOnly           = errors.New("admin access required")
	ErrTicketRequired      = errors.New("this event requires a ticket")
	ErrTicketUnavailable   = errors.New("ticket is not available for purchase")
	ErrInsufficientTickets = errors.New("not enough tickets remaining")
	ErrShiftInactive       = errors.New("volunteer shift is not accepting signups")
	ErrShiftFull           = errors.New("volunteer shift is full")
	ErrInvalidTransition   = errors.New("invalid payout status transition")
	ErrNothingToPayout     = errors.New("no settled donations to pay out")
	ErrDuplicatePayment    = errors.New("payment has already been recorded")
	ErrCheckoutUnavailable = errors.New("unable to start checkout")
	ErrAwaitingPayment     = errors.New("registration is awaiting payment")
)

// ValidationError carries a user-facing message for rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// Publisher emits domain messages. pkg/rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// CacheInvalidator drops cached public reads for an event.
type CacheInvalidator interface {
	PurgeEvent(ctx context.Context, eventID uuid.UUID)
}

func authorizeManage(actor *models.Actor, event *models.Event) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.CanManage(event) {
		return ErrForbidden
	}
	return nil
}

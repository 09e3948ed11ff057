package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/payment"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"gorm.io/gorm"
)

type PurchaseInput struct {
	TicketID uuid.UUID
	Quantity int
	Name     string
	Email    string
}

type PurchaseResult struct {
	Registration *models.Registration
	// CheckoutURL is empty for free tickets, which are confirmed at once.
	CheckoutURL string
}

type TicketService interface {
	ListTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ticket *models.Ticket) error
	Purchase(ctx context.Context, eventID uuid.UUID, in PurchaseInput) (*PurchaseResult, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	eventRepo  repository.EventRepository
	regRepo    repository.RegistrationRepository
	checkout   payment.CheckoutProvider
	cache      CacheInvalidator
	baseURL    string
	now        func() time.Time
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	regRepo repository.RegistrationRepository,
	checkout payment.CheckoutProvider,
	cache CacheInvalidator,
	baseURL string,
) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		regRepo:    regRepo,
		checkout:   checkout,
		cache:      cache,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

func (s *ticketService) ListTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *ticketService) CreateTicket(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ticket *models.Ticket) error {
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, event); err != nil {
		return err
	}

	ticket.Name = strings.TrimSpace(ticket.Name)
	switch {
	case ticket.Name == "":
		return invalid("ticket name is required")
	case ticket.PriceCents < 0:
		return invalid("ticket price cannot be negative")
	case ticket.QuantityTotal != nil && *ticket.QuantityTotal <= 0:
		return invalid("ticket quantity must be greater than 0")
	case ticket.SalesStartAt != nil && ticket.SalesEndAt != nil && !ticket.SalesEndAt.After(*ticket.SalesStartAt):
		return invalid("sales_end_at must be after sales_start_at")
	}
	if ticket.Currency == "" {
		ticket.Currency = "usd"
	}
	ticket.EventID = eventID
	ticket.QuantitySold = 0

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	if !event.IsTicketed {
		event.IsTicketed = true
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("mark event ticketed: %w", err)
		}
	}
	s.purge(ctx, eventID)
	return nil
}

func (s *ticketService) Purchase(ctx context.Context, eventID uuid.UUID, in PurchaseInput) (*PurchaseResult, error) {
	name, email, err := validateContact(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}

	var (
		reg    *models.Registration
		ticket *models.Ticket
		event  *models.Event
	)
	err = s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err = s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}
		if !event.IsPublished {
			return ErrEventNotFound
		}

		ticket, err = s.ticketRepo.FindByIDForUpdate(ctx, tx, eventID, in.TicketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if state := ticket.Availability(s.now()); state != fundraising.AvailabilityAvailable {
			return fmt.Errorf("%w: %s", ErrTicketUnavailable, state)
		}
		if !ticket.CanSell(in.Quantity) {
			return ErrInsufficientTickets
		}

		if err := s.ticketRepo.AddSold(ctx, tx, ticket.ID, in.Quantity); err != nil {
			return err
		}
		if err := s.eventRepo.AddTicketsSold(ctx, tx, eventID, in.Quantity); err != nil {
			return err
		}

		status := models.RegistrationPending
		if ticket.IsFree() {
			status = models.RegistrationConfirmed
		}
		ticketID := ticket.ID
		reg = &models.Registration{
			EventID:  eventID,
			TicketID: &ticketID,
			Name:     name,
			Email:    email,
			Quantity: in.Quantity,
			Type:     models.RegistrationTicket,
			Status:   status,
		}
		return s.regRepo.Create(ctx, tx, reg)
	})
	if err != nil {
		return nil, err
	}

	monitoring.TrackRegistration(string(models.RegistrationTicket))
	monitoring.TrackTicketsSold(in.Quantity)
	s.purge(ctx, eventID)

	result := &PurchaseResult{Registration: reg}
	if ticket.IsFree() {
		return result, nil
	}

	sess, err := s.checkout.CreateCheckout(ctx, payment.CheckoutRequest{
		Description:   fmt.Sprintf("%s: %s", event.Title, ticket.Name),
		AmountCents:   ticket.PriceCents,
		Currency:      ticket.Currency,
		Quantity:      int64(in.Quantity),
		CustomerEmail: email,
		SuccessURL:    fmt.Sprintf("%s/events/%s?ticket=success", s.baseURL, eventID),
		CancelURL:     fmt.Sprintf("%s/events/%s?ticket=cancelled", s.baseURL, eventID),
		Metadata: map[string]string{
			"registration_id": reg.ID.String(),
			"event_id":        eventID.String(),
		},
	})
	if err != nil {
		log.Printf("[TicketService] checkout for registration %s: %v", reg.ID, err)
		s.release(ctx, reg)
		return nil, ErrCheckoutUnavailable
	}

	if err := s.regRepo.SetProviderRef(ctx, reg.ID, sess.ID); err != nil {
		return nil, fmt.Errorf("store checkout reference: %w", err)
	}
	reg.ProviderRef = sess.ID
	result.CheckoutURL = sess.URL
	return result, nil
}

// release cancels a pending ticket registration and returns its inventory.
func (s *ticketService) release(ctx context.Context, reg *models.Registration) {
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseTickets(ctx, tx, s.regRepo, s.ticketRepo, s.eventRepo, reg)
	})
	if err != nil {
		log.Printf("[TicketService] release registration %s: %v", reg.ID, err)
	}
	s.purge(ctx, reg.EventID)
}

func (s *ticketService) purge(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.PurgeEvent(ctx, id)
	}
}

func releaseTickets(ctx context.Context, tx *gorm.DB, regRepo repository.RegistrationRepository, ticketRepo repository.TicketRepository, eventRepo repository.EventRepository, reg *models.Registration) error {
	if err := regRepo.UpdateStatus(ctx, tx, reg.ID, models.RegistrationCancelled); err != nil {
		return err
	}
	if reg.TicketID != nil {
		if err := ticketRepo.AddSold(ctx, tx, *reg.TicketID, -reg.Quantity); err != nil {
			return err
		}
	}
	if err := eventRepo.AddTicketsSold(ctx, tx, reg.EventID, -reg.Quantity); err != nil {
		return err
	}
	reg.Status = models.RegistrationCancelled
	return nil
}

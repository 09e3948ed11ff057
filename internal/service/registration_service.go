package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type RSVPInput struct {
	Name     string
	Email    string
	Quantity int
}

type RegistrationPage struct {
	Registrations []models.Registration
	Total         int64
	Page          int
	PageSize      int
}

type CSVExport struct {
	Filename string
	Data     []byte
}

type RegistrationService interface {
	RSVP(ctx context.Context, eventID uuid.UUID, in RSVPInput) (*models.Registration, error)
	List(ctx context.Context, actor *models.Actor, eventID uuid.UUID, f repository.RegistrationFilter) (*RegistrationPage, error)
	BulkUpdateStatus(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ids []uuid.UUID, status models.RegistrationStatus) (int64, error)
	ExportCSV(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*CSVExport, error)
}

type registrationService struct {
	regRepo    repository.RegistrationRepository
	ticketRepo repository.TicketRepository
	eventRepo  repository.EventRepository
	publisher  Publisher
	cache      CacheInvalidator
	now        func() time.Time
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	publisher Publisher,
	cache CacheInvalidator,
) RegistrationService {
	return &registrationService{
		regRepo:    regRepo,
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		publisher:  publisher,
		cache:      cache,
		now:        time.Now,
	}
}

func (s *registrationService) RSVP(ctx context.Context, eventID uuid.UUID, in RSVPInput) (*models.Registration, error) {
	name, email, err := validateContact(in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished {
		return nil, ErrEventNotFound
	}
	if event.IsTicketed {
		return nil, ErrTicketRequired
	}

	reg := &models.Registration{
		EventID:  eventID,
		Name:     name,
		Email:    email,
		Quantity: max(1, in.Quantity),
		Type:     models.RegistrationRSVP,
		Status:   models.RegistrationConfirmed,
	}
	if err := s.regRepo.Create(ctx, s.eventRepo.GetDB(), reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	monitoring.TrackRegistration(string(models.RegistrationRSVP))
	publish(s.publisher, "registration.created", reg)
	return reg, nil
}

func (s *registrationService) List(ctx context.Context, actor *models.Actor, eventID uuid.UUID, f repository.RegistrationFilter) (*RegistrationPage, error) {
	if _, err := s.managedEvent(ctx, actor, eventID); err != nil {
		return nil, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	f.PageSize = min(f.PageSize, MaxPageSize)

	regs, total, err := s.regRepo.FindByEvent(ctx, eventID, f)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return &RegistrationPage{Registrations: regs, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

func (s *registrationService) BulkUpdateStatus(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ids []uuid.UUID, status models.RegistrationStatus) (int64, error) {
	if status != models.RegistrationConfirmed && status != models.RegistrationCancelled {
		return 0, invalid("status must be confirmed or cancelled")
	}
	if len(ids) == 0 {
		return 0, invalid("no registrations selected")
	}
	if _, err := s.managedEvent(ctx, actor, eventID); err != nil {
		return 0, err
	}

	var changed int64
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		regs, err := s.regRepo.FindForUpdate(ctx, tx, eventID, ids)
		if err != nil {
			return fmt.Errorf("lock registrations: %w", err)
		}
		for i := range regs {
			if regs[i].Status == status {
				continue
			}
			if err := s.moveTo(ctx, tx, &regs[i], status); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if changed > 0 && s.cache != nil {
		s.cache.PurgeEvent(ctx, eventID)
	}
	return changed, nil
}

// moveTo applies one status change. Ticket registrations give their seats
// back when cancelled and must win them again to be confirmed. Pending
// ticket registrations are confirmed by the payment flow only.
func (s *registrationService) moveTo(ctx context.Context, tx *gorm.DB, reg *models.Registration, status models.RegistrationStatus) error {
	if reg.Type != models.RegistrationTicket {
		return s.regRepo.UpdateStatus(ctx, tx, reg.ID, status)
	}

	switch {
	case status == models.RegistrationCancelled:
		return releaseTickets(ctx, tx, s.regRepo, s.ticketRepo, s.eventRepo, reg)
	case reg.Status == models.RegistrationPending:
		return fmt.Errorf("%w: %s", ErrAwaitingPayment, reg.ID)
	}

	if reg.TicketID != nil {
		ticket, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, reg.EventID, *reg.TicketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("lock ticket: %w", err)
		}
		if !ticket.CanSell(reg.Quantity) {
			return fmt.Errorf("%w: registration %s", ErrInsufficientTickets, reg.ID)
		}
		if err := s.ticketRepo.AddSold(ctx, tx, ticket.ID, reg.Quantity); err != nil {
			return err
		}
	}
	if err := s.eventRepo.AddTicketsSold(ctx, tx, reg.EventID, reg.Quantity); err != nil {
		return err
	}
	if err := s.regRepo.UpdateStatus(ctx, tx, reg.ID, status); err != nil {
		return err
	}
	reg.Status = status
	return nil
}

var csvHeader = []string{"ID", "Name", "Email", "Type", "Status", "Quantity", "Created At"}

func (s *registrationService) ExportCSV(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*CSVExport, error) {
	event, err := s.managedEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	regs, err := s.regRepo.FindAllByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range regs {
		row := []string{
			r.ID.String(),
			r.Name,
			r.Email,
			string(r.Type),
			string(r.Status),
			strconv.Itoa(r.Quantity),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &CSVExport{
		Filename: fundraising.RegistrationsCSVFilename(event.Title, s.now()),
		Data:     buf.Bytes(),
	}, nil
}

func (s *registrationService) managedEvent(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*models.Event, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, event); err != nil {
		return nil, err
	}
	return event, nil
}

func findEvent(ctx context.Context, repo repository.EventRepository, id uuid.UUID) (*models.Event, error) {
	event, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

// validateContact applies the same rules to every public form.
func validateContact(name, email string) (string, string, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return "", "", invalid("Please enter your name")
	}
	if !fundraising.ValidEmail(email) {
		return "", "", invalid("Please enter your email")
	}
	return name, email, nil
}

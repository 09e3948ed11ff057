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
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"gorm.io/gorm"
)

// EventPatch holds the owner-editable fields; nil means unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type EventService interface {
	CreateEvent(ctx context.Context, actor *models.Actor, event *models.Event) error
	GetEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, actor *models.Actor, id uuid.UUID, patch EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) error
	SetPublished(ctx context.Context, actor *models.Actor, id uuid.UUID, publish bool) (*models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher Publisher
	cache     CacheInvalidator
}

func NewEventService(repo repository.EventRepository, publisher Publisher, cache CacheInvalidator) EventService {
	return &eventService{repo: repo, publisher: publisher, cache: cache}
}

func (s *eventService) CreateEvent(ctx context.Context, actor *models.Actor, event *models.Event) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return invalid("title is required")
	}
	if event.EventType == "" {
		event.EventType = models.EventDirectDonation
	}
	if !event.EventType.Valid() {
		return invalid("unknown event type")
	}
	if err := validateDates(event.StartDate, event.EndDate); err != nil {
		return err
	}
	if event.TicketCurrency == "" {
		event.TicketCurrency = "usd"
	}

	owner := actor.UserID
	event.OrganizerID = &owner
	event.CreatedBy = &owner
	event.TicketsSold = 0

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetEvent hides unpublished events from everyone but their managers.
func (s *eventService) GetEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished && !actor.CanManage(event) {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindPublished(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, actor *models.Actor, id uuid.UUID, patch EventPatch) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, event); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("title is required")
		}
		event.Title = title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.StartDate != nil {
		event.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = patch.EndDate
	}
	if err := validateDates(event.StartDate, event.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.purge(ctx, id)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	event, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, event); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.purge(ctx, id)

	// Other services drop their copies of the event on event.deleted.
	publish(s.publisher, "event.deleted", map[string]any{"event_id": id})
	return nil
}

func (s *eventService) SetPublished(ctx context.Context, actor *models.Actor, id uuid.UUID, publish bool) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, event); err != nil {
		return nil, err
	}

	event.IsPublished = publish
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("publish event: %w", err)
	}
	s.purge(ctx, id)
	return event, nil
}

func (s *eventService) find(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return findEvent(ctx, s.repo, id)
}

func (s *eventService) purge(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.PurgeEvent(ctx, id)
	}
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalid("end_date must not be before start_date")
	}
	return nil
}

// publish is best effort: a broker outage must not fail the request that
// already committed.
func publish(p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("[Publisher] %s: %v", routingKey, err)
	}
}

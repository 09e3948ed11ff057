package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"gorm.io/gorm"
)

// DefaultShiftCapacity applies to quick-ask shifts created without a limit.
const DefaultShiftCapacity = 10

type SignupInput struct {
	ShiftID               uuid.UUID
	Name                  string
	Email                 string
	Phone                 string
	Skills                []string
	Experience            string
	Availability          string
	EmergencyContactName  string
	EmergencyContactPhone string
}

type VolunteerService interface {
	ListShifts(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error)
	CreateShift(ctx context.Context, actor *models.Actor, eventID uuid.UUID, shift *models.VolunteerShift) error
	Signup(ctx context.Context, in SignupInput) (*models.VolunteerSignup, error)
}

type volunteerService struct {
	repo      repository.VolunteerRepository
	eventRepo repository.EventRepository
	publisher Publisher
	cache     CacheInvalidator
}

func NewVolunteerService(repo repository.VolunteerRepository, eventRepo repository.EventRepository, publisher Publisher, cache CacheInvalidator) VolunteerService {
	return &volunteerService{repo: repo, eventRepo: eventRepo, publisher: publisher, cache: cache}
}

func (s *volunteerService) ListShifts(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error) {
	shifts, err := s.repo.FindShiftsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

func (s *volunteerService) CreateShift(ctx context.Context, actor *models.Actor, eventID uuid.UUID, shift *models.VolunteerShift) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, event); err != nil {
		return err
	}

	shift.Title = strings.TrimSpace(shift.Title)
	if shift.Title == "" {
		return invalid("shift title is required")
	}
	if shift.StartTime != nil && shift.EndTime != nil && !shift.EndTime.After(*shift.StartTime) {
		return invalid("end_time must be after start_time")
	}
	if shift.MaxVolunteers <= 0 {
		shift.MaxVolunteers = DefaultShiftCapacity
	}
	shift.EventID = eventID
	shift.CurrentVolunteers = 0

	if err := s.repo.CreateShift(ctx, shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	s.purge(ctx, eventID)
	return nil
}

func (s *volunteerService) Signup(ctx context.Context, in SignupInput) (*models.VolunteerSignup, error) {
	name, email, err := validateContact(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	if in.ShiftID == uuid.Nil {
		return nil, invalid("shift_id is required")
	}

	signup := &models.VolunteerSignup{
		ShiftID:               in.ShiftID,
		VolunteerName:         name,
		VolunteerEmail:        email,
		VolunteerPhone:        strings.TrimSpace(in.Phone),
		Skills:                in.Skills,
		Experience:            in.Experience,
		Availability:          in.Availability,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
	}

	var eventID uuid.UUID
	err = s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shift, err := s.repo.FindShiftByIDForUpdate(ctx, tx, in.ShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}
			return err
		}
		if !shift.IsActive {
			return ErrShiftInactive
		}
		if shift.SpotsLeft() == 0 {
			return ErrShiftFull
		}
		eventID = shift.EventID

		if err := s.repo.CreateSignup(ctx, tx, signup); err != nil {
			return err
		}
		return s.repo.IncrementVolunteers(ctx, tx, shift.ID)
	})
	if err != nil {
		return nil, err
	}

	monitoring.TrackVolunteerSignup()
	s.purge(ctx, eventID)
	publish(s.publisher, "volunteer.signup", signup)
	return signup, nil
}

func (s *volunteerService) purge(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.PurgeEvent(ctx, id)
	}
}

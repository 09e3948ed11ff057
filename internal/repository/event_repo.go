package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error)
	FindPublished(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddRaised(ctx context.Context, tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error
	AddTicketsSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate locks the event row (SELECT ... FOR UPDATE) for the
// lifetime of tx.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindPublished(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("is_published = ? AND is_public = ?", true, true).
		Order("start_date ASC NULLS LAST, created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes the event with its registrations, tickets, shifts and
// signups. Donations are financial records and stay for payouts.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		shifts := tx.Model(&models.VolunteerShift{}).Select("id").Where("event_id = ?", id)
		if err := tx.Where("shift_id IN (?)", shifts).Delete(&models.VolunteerSignup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.VolunteerShift{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *eventRepository) AddRaised(ctx context.Context, tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("total_raised", gorm.Expr("total_raised + ?", amount)).Error
}

func (r *eventRepository) AddTicketsSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("tickets_sold", gorm.Expr("GREATEST(tickets_sold + ?, 0)", quantity)).Error
}

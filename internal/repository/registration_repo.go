package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationFilter struct {
	Type     *models.RegistrationType
	From     *time.Time
	// Before is exclusive.
	Before   *time.Time
	Page     int
	PageSize int
}

type RegistrationStats struct {
	Total     int64
	RSVP      int64
	Ticket    int64
	Confirmed int64
	Pending   int64
	Cancelled int64
	Attendees int64
}

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, f RegistrationFilter) ([]models.Registration, int64, error)
	FindAllByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error)
	FindByProviderRef(ctx context.Context, tx *gorm.DB, ref string) (*models.Registration, error)
	SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.RegistrationStatus) error
	FindForUpdate(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, ids []uuid.UUID) ([]models.Registration, error)
	Stats(ctx context.Context, eventID uuid.UUID) (RegistrationStats, error)
	TicketRevenueCents(ctx context.Context, eventID uuid.UUID, status models.RegistrationStatus) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) filtered(ctx context.Context, eventID uuid.UUID, f RegistrationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Registration{}).Where("event_id = ?", eventID)
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.Before != nil {
		q = q.Where("created_at < ?", *f.Before)
	}
	return q
}

func (r *registrationRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, f RegistrationFilter) ([]models.Registration, int64, error) {
	var total int64
	if err := r.filtered(ctx, eventID, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var regs []models.Registration
	err := r.filtered(ctx, eventID, f).
		Order("created_at DESC, id ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&regs).Error
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *registrationRepository) FindAllByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindByProviderRef(ctx context.Context, tx *gorm.DB, ref string) (*models.Registration, error) {
	var reg models.Registration
	if err := tx.WithContext(ctx).Where("provider_ref = ?", ref).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("provider_ref", ref).Error
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.RegistrationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// FindForUpdate locks the registrations of eventID among ids. Rows are
// ordered by ticket so concurrent callers lock ticket rows in the same order.
func (r *registrationRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, ids []uuid.UUID) ([]models.Registration, error) {
	var regs []models.Registration
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND id IN ?", eventID, ids).
		Order("ticket_id ASC, id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) Stats(ctx context.Context, eventID uuid.UUID) (RegistrationStats, error) {
	var rows []struct {
		Type     models.RegistrationType
		Status   models.RegistrationStatus
		Count    int64
		Quantity int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Select("type, status, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS quantity").
		Where("event_id = ?", eventID).
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		return RegistrationStats{}, err
	}

	var s RegistrationStats
	for _, row := range rows {
		s.Total += row.Count
		switch row.Type {
		case models.RegistrationRSVP:
			s.RSVP += row.Count
		case models.RegistrationTicket:
			s.Ticket += row.Count
		}
		switch row.Status {
		case models.RegistrationConfirmed:
			s.Confirmed += row.Count
		case models.RegistrationPending:
			s.Pending += row.Count
		case models.RegistrationCancelled:
			s.Cancelled += row.Count
		}
		if row.Status != models.RegistrationCancelled {
			s.Attendees += row.Quantity
		}
	}
	return s, nil
}

func (r *registrationRepository) TicketRevenueCents(ctx context.Context, eventID uuid.UUID, status models.RegistrationStatus) (int64, error) {
	var cents int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(t.price_cents * r.quantity), 0)
		FROM registrations r
		JOIN tickets t ON t.id = r.ticket_id
		WHERE r.event_id = ? AND r.type = ? AND r.status = ?`,
		eventID, models.RegistrationTicket, status,
	).Row().Scan(&cents)
	return cents, err
}

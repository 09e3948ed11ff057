package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VolunteerRepository interface {
	CreateShift(ctx context.Context, shift *models.VolunteerShift) error
	FindShiftsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error)
	FindShiftByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.VolunteerShift, error)
	CreateSignup(ctx context.Context, tx *gorm.DB, signup *models.VolunteerSignup) error
	IncrementVolunteers(ctx context.Context, tx *gorm.DB, shiftID uuid.UUID) error
	GetDB() *gorm.DB
}

type volunteerRepository struct {
	db *gorm.DB
}

func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *volunteerRepository) CreateShift(ctx context.Context, shift *models.VolunteerShift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *volunteerRepository) FindShiftsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error) {
	var shifts []models.VolunteerShift
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("start_time ASC NULLS LAST, created_at ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *volunteerRepository) FindShiftByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.VolunteerShift, error) {
	var shift models.VolunteerShift
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&shift, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *volunteerRepository) CreateSignup(ctx context.Context, tx *gorm.DB, signup *models.VolunteerSignup) error {
	return tx.WithContext(ctx).Create(signup).Error
}

func (r *volunteerRepository) IncrementVolunteers(ctx context.Context, tx *gorm.DB, shiftID uuid.UUID) error {
	return tx.WithContext(ctx).
		Model(&models.VolunteerShift{}).
		Where("id = ?", shiftID).
		Update("current_volunteers", gorm.Expr("current_volunteers + 1")).Error
}

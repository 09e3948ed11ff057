package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayoutRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payout *models.Payout) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Payout, error)
	List(ctx context.Context, status *models.PayoutStatus) ([]models.Payout, error)
	Save(ctx context.Context, tx *gorm.DB, payout *models.Payout) error
}

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) Create(ctx context.Context, tx *gorm.DB, payout *models.Payout) error {
	return tx.WithContext(ctx).Create(payout).Error
}

func (r *payoutRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Payout, error) {
	var p models.Payout
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payoutRepository) List(ctx context.Context, status *models.PayoutStatus) ([]models.Payout, error) {
	var payouts []models.Payout
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC").Find(&payouts).Error; err != nil {
		return nil, err
	}
	return payouts, nil
}

func (r *payoutRepository) Save(ctx context.Context, tx *gorm.DB, payout *models.Payout) error {
	return tx.WithContext(ctx).Save(payout).Error
}

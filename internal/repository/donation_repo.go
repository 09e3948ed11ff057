package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonationTotals struct {
	Succeeded decimal.Decimal
	Pending   decimal.Decimal
	Fees      decimal.Decimal
	Count     int64
}

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error
	FindByProviderRef(ctx context.Context, tx *gorm.DB, provider models.PaymentProvider, ref string) (*models.Donation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.DonationStatus) error
	Totals(ctx context.Context, eventID uuid.UUID) (DonationTotals, error)
	FindUnpaidSucceeded(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Donation, error)
	AssignPayout(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, payoutID uuid.UUID) (int64, error)
	GetDB() *gorm.DB
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error {
	return r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ?", id).
		Update("provider_ref", ref).Error
}

func (r *donationRepository) FindByProviderRef(ctx context.Context, tx *gorm.DB, provider models.PaymentProvider, ref string) (*models.Donation, error) {
	var d models.Donation
	err := tx.WithContext(ctx).
		Where("provider = ? AND provider_ref = ?", provider, ref).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.DonationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *donationRepository) Totals(ctx context.Context, eventID uuid.UUID) (DonationTotals, error) {
	var t DonationTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = ?), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = ?), 0),
			COALESCE(SUM(platform_fee) FILTER (WHERE status = ?), 0),
			COUNT(*) FILTER (WHERE status = ?)
		FROM donations
		WHERE event_id = ?`,
		models.DonationSucceeded, models.DonationPending, models.DonationSucceeded, models.DonationSucceeded, eventID,
	).Row().Scan(&t.Succeeded, &t.Pending, &t.Fees, &t.Count)
	return t, err
}

// FindUnpaidSucceeded locks the rows it returns. A concurrent caller waits
// and then skips rows that were assigned in the meantime.
func (r *donationRepository) FindUnpaidSucceeded(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Donation, error) {
	var donations []models.Donation
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND status = ? AND payout_id IS NULL", eventID, models.DonationSucceeded).
		Order("created_at ASC").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// AssignPayout claims the unassigned donations among ids and reports how
// many it claimed.
func (r *donationRepository) AssignPayout(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, payoutID uuid.UUID) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id IN ? AND payout_id IS NULL", ids).
		Update("payout_id", payoutID)
	return res.RowsAffected, res.Error
}

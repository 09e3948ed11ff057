package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationSucceeded DonationStatus = "succeeded"
	DonationFailed    DonationStatus = "failed"
)

type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
	ProviderPayPal PaymentProvider = "paypal"
)

type Donation struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"event_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);not null" json:"currency"`
	DonorName   string          `json:"donor_name"`
	DonorEmail  string          `json:"donor_email"`
	Message     string          `gorm:"type:text" json:"message"`
	Provider    PaymentProvider `gorm:"type:varchar(16);not null" json:"provider"`
	ProviderRef string          `gorm:"index" json:"provider_ref"`
	Status      DonationStatus  `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	PlatformFee decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"platform_fee"`
	NetAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"net_amount"`
	PayoutID    *uuid.UUID      `gorm:"type:uuid;index" json:"payout_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

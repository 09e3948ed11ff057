package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
	PayoutFailed     PayoutStatus = "failed"
)

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:    {PayoutProcessing, PayoutFailed},
	PayoutProcessing: {PayoutPaid, PayoutFailed},
	PayoutFailed:     {PayoutPending},
}

// CanTransitionTo reports whether a payout may move from s to next. Paid is
// terminal.
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payout settles the succeeded donations of one event to its organizer.
type Payout struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"event_id"`
	OrganizerID   *uuid.UUID      `gorm:"type:uuid;index" json:"organizer_id,omitempty"`
	Gross         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"gross"`
	Fees          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"fees"`
	Net           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"net"`
	DonationCount int             `gorm:"not null" json:"donation_count"`
	Status        PayoutStatus    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"gorm.io/gorm"
)

type Ticket struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Name          string     `gorm:"not null" json:"name"`
	PriceCents    int64      `gorm:"not null;default:0" json:"price_cents"`
	Currency      string     `gorm:"type:varchar(3);not null" json:"currency"`
	QuantityTotal *int       `json:"quantity_total"`
	QuantitySold  int        `gorm:"not null;default:0" json:"quantity_sold"`
	SalesStartAt  *time.Time `json:"sales_start_at,omitempty"`
	SalesEndAt    *time.Time `json:"sales_end_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Ticket) Availability(now time.Time) fundraising.Availability {
	return fundraising.TicketAvailability(now, t.SalesStartAt, t.SalesEndAt, t.QuantityTotal, t.QuantitySold)
}

// CanSell reports whether quantity more tickets fit in the remaining inventory.
func (t *Ticket) CanSell(quantity int) bool {
	remaining := fundraising.Remaining(t.QuantityTotal, t.QuantitySold)
	return remaining < 0 || quantity <= remaining
}

func (t *Ticket) IsFree() bool {
	return t.PriceCents == 0
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type EventType string

const (
	EventWalkathon      EventType = "walkathon"
	EventAuction        EventType = "auction"
	EventProductSale    EventType = "product_sale"
	EventDirectDonation EventType = "direct_donation"
	EventRaffle         EventType = "raffle"
)

func (t EventType) Valid() bool {
	switch t {
	case EventWalkathon, EventAuction, EventProductSale, EventDirectDonation, EventRaffle:
		return true
	}
	return false
}

type Event struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string              `gorm:"not null" json:"title"`
	Description    string              `gorm:"type:text" json:"description"`
	EventType      EventType           `gorm:"type:varchar(32);not null" json:"event_type"`
	StartDate      *time.Time          `json:"start_date,omitempty"`
	EndDate        *time.Time          `json:"end_date,omitempty"`
	Location       string              `json:"location"`
	GoalAmount     decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"goal_amount"`
	IsPublic       bool                `gorm:"not null" json:"is_public"`
	OrganizerID    *uuid.UUID          `gorm:"type:uuid;index" json:"organizer_id,omitempty"`
	CreatedBy      *uuid.UUID          `gorm:"type:uuid;index" json:"created_by,omitempty"`
	IsTicketed     bool                `gorm:"not null" json:"is_ticketed"`
	TicketPrice    decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"ticket_price"`
	TicketCurrency string              `gorm:"type:varchar(3)" json:"ticket_currency"`
	TicketQuantity *int                `json:"ticket_quantity,omitempty"`
	TicketsSold    int                 `gorm:"not null;default:0" json:"tickets_sold"`
	IsPublished    bool                `gorm:"not null" json:"is_published"`
	TotalRaised    decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0" json:"total_raised"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// OwnerID resolves the owner from organizer_id, falling back to the legacy
// created_by column.
func (e *Event) OwnerID() *uuid.UUID {
	if e.OrganizerID != nil {
		return e.OrganizerID
	}
	return e.CreatedBy
}

func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	owner := e.OwnerID()
	return owner != nil && userID != uuid.Nil && *owner == userID
}

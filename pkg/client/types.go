package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
)

// Event mirrors the server's event payload. The raised-amount fields are
// all optional; older payloads carry one of the legacy names.
type Event struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	EventType      string              `json:"event_type"`
	StartDate      *time.Time          `json:"start_date,omitempty"`
	EndDate        *time.Time          `json:"end_date,omitempty"`
	Location       string              `json:"location"`
	GoalAmount     decimal.NullDecimal `json:"goal_amount"`
	IsPublic       bool                `json:"is_public"`
	OrganizerID    *uuid.UUID          `json:"organizer_id,omitempty"`
	CreatedBy      *uuid.UUID          `json:"created_by,omitempty"`
	IsTicketed     bool                `json:"is_ticketed"`
	TicketPrice    decimal.NullDecimal `json:"ticket_price"`
	TicketCurrency string              `json:"ticket_currency"`
	TicketQuantity *int                `json:"ticket_quantity,omitempty"`
	TicketsSold    int                 `json:"tickets_sold"`
	IsPublished    bool                `json:"is_published"`

	TotalRaised    decimal.NullDecimal `json:"total_raised"`
	AmountRaised   decimal.NullDecimal `json:"amount_raised"`
	Raised         decimal.NullDecimal `json:"raised"`
	DonationsTotal decimal.NullDecimal `json:"donations_total"`
}

type Ticket struct {
	ID            uuid.UUID                `json:"id"`
	EventID       uuid.UUID                `json:"event_id"`
	Name          string                   `json:"name"`
	PriceCents    int64                    `json:"price_cents"`
	Currency      string                   `json:"currency"`
	QuantityTotal *int                     `json:"quantity_total"`
	QuantitySold  int                      `json:"quantity_sold"`
	SalesStartAt  *time.Time               `json:"sales_start_at,omitempty"`
	SalesEndAt    *time.Time               `json:"sales_end_at,omitempty"`
	Availability  fundraising.Availability `json:"availability"`
	Remaining     *int                     `json:"remaining,omitempty"`
}

// AvailabilityAt derives the sales state from the raw window and stock
// fields. The stamped Availability may be stale when the list was cached.
func (t Ticket) AvailabilityAt(now time.Time) fundraising.Availability {
	return fundraising.TicketAvailability(now, t.SalesStartAt, t.SalesEndAt, t.QuantityTotal, t.QuantitySold)
}

type Shift struct {
	ID                uuid.UUID  `json:"id"`
	EventID           uuid.UUID  `json:"event_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	MaxVolunteers     int        `json:"max_volunteers"`
	CurrentVolunteers int        `json:"current_volunteers"`
	Requirements      string     `json:"requirements"`
	SkillsNeeded      []string   `json:"skills_needed"`
	Location          string     `json:"location"`
	IsActive          bool       `json:"is_active"`
	SpotsLeft         int        `json:"spots_left"`
}

type Registration struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	TicketID  *uuid.UUID `json:"ticket_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Quantity  int        `json:"quantity"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type Donation struct {
	ID          uuid.UUID       `json:"id"`
	EventID     uuid.UUID       `json:"event_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Provider    string          `json:"provider"`
	ProviderRef string          `json:"provider_ref"`
	Status      string          `json:"status"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

type Signup struct {
	ID             uuid.UUID `json:"id"`
	ShiftID        uuid.UUID `json:"shift_id"`
	VolunteerName  string    `json:"volunteer_name"`
	VolunteerEmail string    `json:"volunteer_email"`
	CreatedAt      time.Time `json:"created_at"`
}

type Analytics struct {
	Registrations struct {
		Total     int64 `json:"total"`
		RSVP      int64 `json:"rsvp"`
		Ticket    int64 `json:"ticket"`
		Confirmed int64 `json:"confirmed"`
		Pending   int64 `json:"pending"`
		Cancelled int64 `json:"cancelled"`
		Attendees int64 `json:"attendees"`
	} `json:"registrations"`
	Revenue struct {
		Total       decimal.Decimal `json:"total"`
		Gross       decimal.Decimal `json:"gross"`
		Fees        decimal.Decimal `json:"fees"`
		Net         decimal.Decimal `json:"net"`
		Pending     decimal.Decimal `json:"pending"`
		Donations   decimal.Decimal `json:"donations"`
		TicketSales decimal.Decimal `json:"ticket_sales"`
	} `json:"revenue"`
}

type RegistrationPage struct {
	Registrations []Registration `json:"registrations"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
}

type PlatformFees struct {
	FeePercent decimal.Decimal `json:"fee_percent"`
	Disclosure string          `json:"disclosure"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	EventType      string           `json:"event_type"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	Location       string           `json:"location"`
	GoalAmount     *decimal.Decimal `json:"goal_amount"`
	IsPublic       bool             `json:"is_public"`
	IsPublished    bool             `json:"is_published"`
	TicketPrice    *decimal.Decimal `json:"ticket_price"`
	TicketCurrency string           `json:"ticket_currency"`
	TicketQuantity *int             `json:"ticket_quantity"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type PublishRequest struct {
	Publish bool `json:"publish"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

type BulkRegistrationsRequest struct {
	Action          string      `json:"action"`
	RegistrationIDs []uuid.UUID `json:"registration_ids"`
	Status          string      `json:"status"`
}

type CreateTicketRequest struct {
	Name          string     `json:"name"`
	PriceCents    int64      `json:"price_cents"`
	Currency      string     `json:"currency"`
	QuantityTotal *int       `json:"quantity_total"`
	SalesStartAt  *time.Time `json:"sales_start_at"`
	SalesEndAt    *time.Time `json:"sales_end_at"`
}

type PurchaseTicketRequest struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Quantity int       `json:"quantity"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

type CreateShiftRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	MaxVolunteers int        `json:"max_volunteers"`
	Requirements  string     `json:"requirements"`
	SkillsNeeded  []string   `json:"skills_needed"`
	Location      string     `json:"location"`
	IsActive      *bool      `json:"is_active"`
}

type VolunteerSignupRequest struct {
	ShiftID               uuid.UUID `json:"shift_id"`
	VolunteerName         string    `json:"volunteer_name"`
	VolunteerEmail        string    `json:"volunteer_email"`
	VolunteerPhone        string    `json:"volunteer_phone"`
	Skills                []string  `json:"skills"`
	Experience            string    `json:"experience"`
	Availability          string    `json:"availability"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
}

// DonationRequest keeps the camelCase eventId the web client sends.
type DonationRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	EventID    uuid.UUID       `json:"eventId"`
	DonorName  string          `json:"donor_name"`
	DonorEmail string          `json:"donor_email"`
	Message    string          `json:"message"`
}

type PayPalDonationRequest struct {
	DonationRequest
	OrderID string `json:"order_id"`
}

type ShareRequest struct {
	To      string    `json:"to"`
	EventID uuid.UUID `json:"eventId"`
	Message string    `json:"message"`
}

type CreatePayoutRequest struct {
	EventID uuid.UUID `json:"event_id"`
}

type PayoutStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

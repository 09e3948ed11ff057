package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
)

type EventResponse struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	EventType      models.EventType    `json:"event_type"`
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
	TotalRaised    decimal.Decimal     `json:"total_raised"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		EventType:      e.EventType,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Location:       e.Location,
		GoalAmount:     e.GoalAmount,
		IsPublic:       e.IsPublic,
		OrganizerID:    e.OrganizerID,
		CreatedBy:      e.CreatedBy,
		IsTicketed:     e.IsTicketed,
		TicketPrice:    e.TicketPrice,
		TicketCurrency: e.TicketCurrency,
		TicketQuantity: e.TicketQuantity,
		TicketsSold:    e.TicketsSold,
		IsPublished:    e.IsPublished,
		TotalRaised:    e.TotalRaised,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type EventEnvelope struct {
	Event EventResponse `json:"event"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

type DeleteEventResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

type TicketResponse struct {
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
	// Remaining is omitted for unlimited tickets.
	Remaining *int `json:"remaining,omitempty"`
}

func ToTicketResponse(t *models.Ticket, now time.Time) TicketResponse {
	resp := TicketResponse{
		ID:            t.ID,
		EventID:       t.EventID,
		Name:          t.Name,
		PriceCents:    t.PriceCents,
		Currency:      t.Currency,
		QuantityTotal: t.QuantityTotal,
		QuantitySold:  t.QuantitySold,
		SalesStartAt:  t.SalesStartAt,
		SalesEndAt:    t.SalesEndAt,
		Availability:  t.Availability(now),
	}
	if r := fundraising.Remaining(t.QuantityTotal, t.QuantitySold); r >= 0 {
		resp.Remaining = &r
	}
	return resp
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

type TicketEnvelope struct {
	Ticket TicketResponse `json:"ticket"`
}

type ShiftResponse struct {
	models.VolunteerShift
	SpotsLeft int `json:"spots_left"`
}

func ToShiftResponse(s *models.VolunteerShift) ShiftResponse {
	return ShiftResponse{VolunteerShift: *s, SpotsLeft: s.SpotsLeft()}
}

type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

type ShiftEnvelope struct {
	Shift ShiftResponse `json:"shift"`
}

type SignupEnvelope struct {
	Signup *models.VolunteerSignup `json:"signup"`
}

type RegistrationEnvelope struct {
	Registration *models.Registration `json:"registration"`
}

type PurchaseResponse struct {
	Registration *models.Registration `json:"registration"`
	URL          string               `json:"url,omitempty"`
}

type RegistrationPageResponse struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"pageSize"`
}

type BulkUpdateResponse struct {
	Updated int64 `json:"updated"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type DonationEnvelope struct {
	Donation *models.Donation `json:"donation"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type FeesResponse struct {
	FeePercent decimal.Decimal `json:"fee_percent"`
	Disclosure string          `json:"disclosure"`
}

type PayoutListResponse struct {
	Payouts []models.Payout `json:"payouts"`
}

type PayoutEnvelope struct {
	Payout *models.Payout `json:"payout"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payout struct {
	ID            uuid.UUID       `json:"id"`
	EventID       uuid.UUID       `json:"event_id"`
	OrganizerID   *uuid.UUID      `json:"organizer_id,omitempty"`
	Gross         decimal.Decimal `json:"gross"`
	Fees          decimal.Decimal `json:"fees"`
	Net           decimal.Decimal `json:"net"`
	DonationCount int             `json:"donation_count"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateEventRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	EventType   string           `json:"event_type,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Location    string           `json:"location,omitempty"`
	GoalAmount  *decimal.Decimal `json:"goal_amount,omitempty"`
	IsPublic    bool             `json:"is_public"`
	IsPublished bool             `json:"is_published"`
}

func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) PublishEvent(ctx context.Context, id uuid.UUID, publish bool) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	body := map[string]bool{"publish": publish}
	if err := c.do(ctx, http.MethodPost, eventPath(id, "/publish"), nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, eventPath(id, ""), nil, nil, nil)
}

func (c *Client) ListPayouts(ctx context.Context, status string) ([]Payout, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var resp struct {
		Payouts []Payout `json:"payouts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/payouts", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payouts, nil
}

func (c *Client) CreatePayout(ctx context.Context, eventID uuid.UUID) (*Payout, error) {
	var resp struct {
		Payout Payout `json:"payout"`
	}
	body := map[string]uuid.UUID{"event_id": eventID}
	if err := c.do(ctx, http.MethodPost, "/api/admin/payouts", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Payout, nil
}

func (c *Client) UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status, notes string) (*Payout, error) {
	var resp struct {
		Payout Payout `json:"payout"`
	}
	body := map[string]string{"status": status, "notes": notes}
	if err := c.do(ctx, http.MethodPost, "/api/admin/payouts/"+id.String()+"/status", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Payout, nil
}

// UpdateEventRequest patches only the non-nil fields.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (c *Client) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPatch, eventPath(id, ""), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

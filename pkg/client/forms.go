package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RSVPRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

type PurchaseRequest struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Quantity int       `json:"quantity"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

// PurchaseResult carries a checkout URL for priced tickets only.
type PurchaseResult struct {
	Registration Registration `json:"registration"`
	URL          string       `json:"url"`
}

type ShiftRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	MaxVolunteers int      `json:"max_volunteers,omitempty"`
	Requirements  string   `json:"requirements,omitempty"`
	SkillsNeeded  []string `json:"skills_needed,omitempty"`
	Location      string   `json:"location,omitempty"`
	IsActive      bool     `json:"is_active"`
}

type SignupRequest struct {
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

type DonationRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	EventID    uuid.UUID       `json:"eventId"`
	DonorName  string          `json:"donor_name"`
	DonorEmail string          `json:"donor_email"`
	Message    string          `json:"message,omitempty"`
}

type PayPalRequest struct {
	DonationRequest
	OrderID string `json:"order_id"`
}

type ShareRequest struct {
	To      string    `json:"to"`
	EventID uuid.UUID `json:"eventId"`
	Message string    `json:"message,omitempty"`
}

func (c *Client) Register(ctx context.Context, eventID uuid.UUID, req RSVPRequest) (*Registration, error) {
	var resp struct {
		Registration Registration `json:"registration"`
	}
	if err := c.do(ctx, http.MethodPost, eventPath(eventID, "/register"), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Registration, nil
}

func (c *Client) PurchaseTicket(ctx context.Context, eventID uuid.UUID, req PurchaseRequest) (*PurchaseResult, error) {
	var resp PurchaseResult
	if err := c.do(ctx, http.MethodPost, eventPath(eventID, "/tickets/purchase"), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateShift(ctx context.Context, eventID uuid.UUID, req ShiftRequest) (*Shift, error) {
	var resp struct {
		Shift Shift `json:"shift"`
	}
	if err := c.do(ctx, http.MethodPost, eventPath(eventID, "/volunteer-shifts"), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Shift, nil
}

func (c *Client) VolunteerSignup(ctx context.Context, req SignupRequest) (*Signup, error) {
	var resp struct {
		Signup Signup `json:"signup"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events/volunteer-signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Signup, nil
}

// DonationCheckout starts a Stripe hosted checkout and returns its URL.
func (c *Client) DonationCheckout(ctx context.Context, req DonationRequest) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/donations/checkout", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) RecordPayPal(ctx context.Context, req PayPalRequest) (*Donation, error) {
	var resp struct {
		Donation Donation `json:"donation"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/donations/paypal", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Donation, nil
}

func (c *Client) ShareDonation(ctx context.Context, req ShareRequest) error {
	return c.do(ctx, http.MethodPost, "/api/donations/share", nil, req, nil)
}

package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

func eventPath(id uuid.UUID, suffix string) string {
	return "/api/events/" + id.String() + suffix
}

func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, eventPath(id, ""), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var resp struct {
		Events []Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) EventAnalytics(ctx context.Context, id uuid.UUID) (*Analytics, error) {
	var resp Analytics
	if err := c.do(ctx, http.MethodGet, eventPath(id, "/analytics"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListTickets(ctx context.Context, id uuid.UUID) ([]Ticket, error) {
	var resp struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, eventPath(id, "/tickets"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

func (c *Client) ListShifts(ctx context.Context, id uuid.UUID) ([]Shift, error) {
	var resp struct {
		Shifts []Shift `json:"shifts"`
	}
	if err := c.do(ctx, http.MethodGet, eventPath(id, "/volunteer-shifts"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Shifts, nil
}

func (c *Client) PlatformFees(ctx context.Context) (*PlatformFees, error) {
	var resp PlatformFees
	if err := c.do(ctx, http.MethodGet, "/api/platform/fees", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RegistrationQuery filters the owner registrations list. Zero values are
// left to the server defaults.
type RegistrationQuery struct {
	Type     string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

func (q RegistrationQuery) values() url.Values {
	v := url.Values{}
	if q.Type != "" && q.Type != "all" {
		v.Set("type", q.Type)
	}
	if q.From != nil {
		v.Set("from", q.From.Format(time.DateOnly))
	}
	if q.To != nil {
		v.Set("to", q.To.Format(time.DateOnly))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

func (c *Client) ListRegistrations(ctx context.Context, eventID uuid.UUID, q RegistrationQuery) (*RegistrationPage, error) {
	var resp RegistrationPage
	if err := c.do(ctx, http.MethodGet, eventPath(eventID, "/registrations"), q.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkUpdateRegistrations sets status on every id in one request and
// returns the number of rows changed.
func (c *Client) BulkUpdateRegistrations(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	body := map[string]any{
		"action":           "update_status",
		"registration_ids": ids,
		"status":           status,
	}
	var resp struct {
		Updated int64 `json:"updated"`
	}
	if err := c.do(ctx, http.MethodPost, eventPath(eventID, "/registrations/bulk"), nil, body, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// ExportRegistrationsCSV returns the raw CSV body and the filename the
// server suggested, if any.
func (c *Client) ExportRegistrationsCSV(ctx context.Context, eventID uuid.UUID) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, eventPath(eventID, "/registrations/csv"), nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/csv")

	data, header, err := c.send(req)
	if err != nil {
		return nil, "", err
	}
	return data, attachmentName(header.Get("Content-Disposition")), nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

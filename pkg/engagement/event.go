package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
)

// Event is the page's view of an event with the owner resolved once.
type Event struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Type           string
	Location       string
	StartDate      *time.Time
	EndDate        *time.Time
	Goal           float64
	HasGoal        bool
	IsPublic       bool
	IsPublished    bool
	IsTicketed     bool
	TicketQuantity *int
	TicketsSold    int
	OwnerID        *uuid.UUID
}

// Draft is the owner-editable copy seeded from the loaded event.
type Draft struct {
	Title       string
	Description string
	Location    string
	StartDate   *time.Time
	EndDate     *time.Time
}

type Progress struct {
	Percent int
	Visible bool
	Label   string
}

func normalizeEvent(raw *client.Event) Event {
	e := Event{
		ID:             raw.ID,
		Title:          raw.Title,
		Description:    raw.Description,
		Type:           raw.EventType,
		Location:       raw.Location,
		StartDate:      raw.StartDate,
		EndDate:        raw.EndDate,
		IsPublic:       raw.IsPublic,
		IsPublished:    raw.IsPublished,
		IsTicketed:     raw.IsTicketed,
		TicketQuantity: raw.TicketQuantity,
		TicketsSold:    raw.TicketsSold,
		OwnerID:        raw.OrganizerID,
	}
	if e.OwnerID == nil {
		e.OwnerID = raw.CreatedBy
	}
	if raw.GoalAmount.Valid {
		e.Goal = raw.GoalAmount.Decimal.InexactFloat64()
		e.HasGoal = true
	}
	return e
}

func (e Event) Draft() Draft {
	return Draft{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

// raisedFallbacks lists the stored raised figures in precedence order.
func raisedFallbacks(raw *client.Event) []*float64 {
	fields := []decimal.NullDecimal{raw.TotalRaised, raw.AmountRaised, raw.Raised, raw.DonationsTotal}
	out := make([]*float64, len(fields))
	for i, f := range fields {
		if f.Valid {
			v := f.Decimal.InexactFloat64()
			out[i] = &v
		}
	}
	return out
}

// ComputeProgress renders the goal indicator. No indicator is shown
// without a positive goal.
func ComputeProgress(raised float64, e Event) Progress {
	if !e.HasGoal {
		return Progress{}
	}
	pct, ok := fundraising.ProgressPercent(raised, e.Goal)
	if !ok {
		return Progress{}
	}
	return Progress{Percent: pct, Visible: true, Label: fundraising.ProgressLabel(raised, pct)}
}

// Patch returns the fields of d that differ from e.
func (d Draft) Patch(e Event) client.UpdateEventRequest {
	var req client.UpdateEventRequest
	if t := strings.TrimSpace(d.Title); t != e.Title {
		req.Title = &t
	}
	if d.Description != e.Description {
		req.Description = &d.Description
	}
	if d.Location != e.Location {
		req.Location = &d.Location
	}
	if !sameTime(d.StartDate, e.StartDate) {
		req.StartDate = d.StartDate
	}
	if !sameTime(d.EndDate, e.EndDate) {
		req.EndDate = d.EndDate
	}
	return req
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

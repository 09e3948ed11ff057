package engagement

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
)

// IsOwner reports whether userID owns the event.
func IsOwner(userID uuid.UUID, e Event) bool {
	return userID != uuid.Nil && e.OwnerID != nil && *e.OwnerID == userID
}

// LoadAnalytics fetches the owner analytics snapshot, turning 401 and 403
// into ErrLoginRequired and ErrOwnerRequired.
func LoadAnalytics(ctx context.Context, api API, eventID uuid.UUID) (*client.Analytics, error) {
	a, err := api.EventAnalytics(ctx, eventID)
	if err != nil {
		log.Printf("[engagement] analytics %s: %v", eventID, err)
		return nil, authError(err)
	}
	return a, nil
}

// RegistrationsPanel pages through an event's registrations and tracks the
// rows selected for bulk updates.
type RegistrationsPanel struct {
	api     API
	eventID uuid.UUID

	Filter   client.RegistrationQuery
	Rows     []client.Registration
	Total    int64
	selected map[uuid.UUID]bool
}

func NewRegistrationsPanel(api API, eventID uuid.UUID) *RegistrationsPanel {
	return &RegistrationsPanel{
		api:      api,
		eventID:  eventID,
		Filter:   client.RegistrationQuery{Page: 1, PageSize: 20},
		selected: map[uuid.UUID]bool{},
	}
}

func (p *RegistrationsPanel) Load(ctx context.Context) error {
	p.Filter.Page = max(1, p.Filter.Page)
	page, err := p.api.ListRegistrations(ctx, p.eventID, p.Filter)
	if err != nil {
		log.Printf("[engagement] registrations %s: %v", p.eventID, err)
		return authError(err)
	}
	p.Rows = page.Registrations
	p.Total = page.Total
	if page.Page > 0 {
		p.Filter.Page = page.Page
	}
	if page.PageSize > 0 {
		p.Filter.PageSize = page.PageSize
	}
	p.selected = map[uuid.UUID]bool{}
	return nil
}

// SetFilter replaces the type and date filters and returns to page one.
func (p *RegistrationsPanel) SetFilter(kind string, from, to *time.Time) {
	p.Filter.Type = kind
	p.Filter.From = from
	p.Filter.To = to
	p.Filter.Page = 1
}

func (p *RegistrationsPanel) Pages() int {
	if p.Filter.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Filter.PageSize) - 1) / int64(p.Filter.PageSize))
}

func (p *RegistrationsPanel) GoTo(ctx context.Context, page int) error {
	p.Filter.Page = min(max(1, page), p.Pages())
	return p.Load(ctx)
}

func (p *RegistrationsPanel) Toggle(id uuid.UUID) {
	if p.selected[id] {
		delete(p.selected, id)
		return
	}
	p.selected[id] = true
}

// SelectAll selects or clears every row on the current page.
func (p *RegistrationsPanel) SelectAll(on bool) {
	p.selected = map[uuid.UUID]bool{}
	if !on {
		return
	}
	for _, r := range p.Rows {
		p.selected[r.ID] = true
	}
}

func (p *RegistrationsPanel) AllSelected() bool {
	return len(p.Rows) > 0 && len(p.selected) == len(p.Rows)
}

// Selected returns the selected ids in row order.
func (p *RegistrationsPanel) Selected() []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range p.Rows {
		if p.selected[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// BulkUpdate sets status on the selection in one request, then reloads.
func (p *RegistrationsPanel) BulkUpdate(ctx context.Context, status string) (int64, error) {
	if status != "confirmed" && status != "cancelled" {
		return 0, &ValidationError{Msg: "Status must be confirmed or cancelled"}
	}
	ids := p.Selected()
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}
	n, err := p.api.BulkUpdateRegistrations(ctx, p.eventID, ids, status)
	if err != nil {
		log.Printf("[engagement] bulk update %s: %v", p.eventID, err)
		return 0, authError(err)
	}
	return n, p.Load(ctx)
}

// ExportCSV downloads the registrations CSV into dir and returns the file
// path. Nothing is written when the export fails or is empty.
func ExportCSV(ctx context.Context, api API, e Event, dir string, now time.Time) (string, error) {
	data, _, err := api.ExportRegistrationsCSV(ctx, e.ID)
	if err != nil {
		log.Printf("[engagement] export %s: %v", e.ID, err)
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if len(data) == 0 {
		return "", ErrEmptyExport
	}

	path := filepath.Join(dir, fundraising.RegistrationsCSVFilename(e.Title, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return path, nil
}

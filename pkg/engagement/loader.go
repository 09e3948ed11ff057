package engagement

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"golang.org/x/sync/errgroup"
)

const DefaultSettleDelay = 100 * time.Millisecond

// Page is everything the event page renders.
type Page struct {
	Event    Event
	Draft    Draft
	Raised   float64
	Progress Progress
	Tickets  []client.Ticket
	Shifts   []client.Shift

	mu sync.RWMutex
}

// Current returns the event as last loaded or saved.
func (p *Page) Current() Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Event
}

func (p *Page) TicketList() []client.Ticket {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Tickets
}

func (p *Page) ShiftList() []client.Shift {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Shifts
}

func (p *Page) setTickets(t []client.Ticket) {
	p.mu.Lock()
	p.Tickets = t
	p.mu.Unlock()
}

func (p *Page) setShifts(s []client.Shift) {
	p.mu.Lock()
	p.Shifts = s
	p.mu.Unlock()
}

type Loader struct {
	api    API
	settle time.Duration
	gen    atomic.Uint64
}

type LoaderOption func(*Loader)

func WithSettleDelay(d time.Duration) LoaderOption {
	return func(l *Loader) { l.settle = d }
}

func NewLoader(api API, opts ...LoaderOption) *Loader {
	l := &Loader{api: api, settle: DefaultSettleDelay}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the event, then its donation total, tickets and shifts.
// Follow-up failures are logged and leave empty values. A Load that is
// overtaken by a newer one returns ErrSuperseded.
func (l *Loader) Load(ctx context.Context, id uuid.UUID) (*Page, error) {
	gen := l.gen.Add(1)

	raw, err := l.api.GetEvent(ctx, id)
	if err != nil {
		log.Printf("[engagement] load event %s: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrEventNotFound, err)
	}
	if l.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	event := normalizeEvent(raw)
	page := &Page{Event: event, Draft: event.Draft()}

	if l.settle > 0 {
		t := time.NewTimer(l.settle)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		}
	}

	var live float64
	var g errgroup.Group
	g.Go(func() error {
		a, err := l.api.EventAnalytics(ctx, id)
		if err != nil {
			log.Printf("[engagement] load donation total %s: %v", id, err)
			return nil
		}
		live = a.Revenue.Total.InexactFloat64()
		return nil
	})
	g.Go(func() error {
		tickets, err := l.api.ListTickets(ctx, id)
		if err != nil {
			log.Printf("[engagement] load tickets %s: %v", id, err)
			tickets = []client.Ticket{}
		}
		page.setTickets(tickets)
		return nil
	})
	g.Go(func() error {
		shifts, err := l.api.ListShifts(ctx, id)
		if err != nil {
			log.Printf("[engagement] load volunteer shifts %s: %v", id, err)
			shifts = []client.Shift{}
		}
		page.setShifts(shifts)
		return nil
	})
	_ = g.Wait()

	if l.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	page.Raised = fundraising.RaisedAmount(live, raisedFallbacks(raw)...)
	page.Progress = ComputeProgress(page.Raised, event)
	return page, nil
}

// SaveDraft sends the owner's edits and reseeds the page from the reply.
func SaveDraft(ctx context.Context, api API, page *Page) error {
	page.mu.RLock()
	id := page.Event.ID
	patch := page.Draft.Patch(page.Event)
	page.mu.RUnlock()

	raw, err := api.UpdateEvent(ctx, id, patch)
	if err != nil {
		return err
	}
	event := normalizeEvent(raw)

	page.mu.Lock()
	defer page.mu.Unlock()
	page.Event = event
	page.Draft = event.Draft()
	page.Progress = ComputeProgress(page.Raised, event)
	return nil
}

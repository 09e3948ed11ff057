package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(owner *uuid.UUID) *Page {
	return &Page{Event: Event{ID: uuid.New(), Title: "Spring Walkathon", OwnerID: owner}}
}

func fillContact(c *Controller) {
	c.Set(FieldName, " Ada ")
	c.Set(FieldEmail, "ada@example.com")
}

func TestSubmitRSVP_Success(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle("POST /api/events/{id}/register", func(w http.ResponseWriter, r *http.Request) {
		var req client.RSVPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, client.RSVPRequest{Name: "Ada", Email: "ada@example.com", Quantity: 1, Type: "rsvp"}, req)
		writeJSON(w, http.StatusCreated, map[string]any{"registration": map[string]any{"id": uuid.New(), "status": "confirmed"}})
	})
	notes := &recorder{}
	c := NewController(fs.client(), testPage(nil), notes)

	c.Open(ModalRSVP)
	fillContact(c)
	c.Set(FieldQuantity, "0")
	reg, err := c.SubmitRSVP(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "confirmed", reg.Status)
	assert.False(t, c.State().Open())
	assert.Equal(t, []string{"You're registered!"}, notes.success)
}

func TestSubmitRSVP_ServerErrorKeepsModalOpen(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle("POST /api/events/{id}/register", apiError(http.StatusConflict, "You are already registered"))
	notes := &recorder{}
	c := NewController(fs.client(), testPage(nil), notes)

	c.Open(ModalRSVP)
	fillContact(c)
	_, err := c.SubmitRSVP(context.Background())

	require.Error(t, err)
	s := c.State()
	assert.Equal(t, ModalRSVP, s.Modal)
	assert.False(t, s.Submitting)
	assert.Equal(t, "You are already registered", s.Error)
	assert.Equal(t, " Ada ", s.Form.(RSVPForm).Name, "inputs retained")
	assert.Equal(t, []string{"You are already registered"}, notes.failures)
}

func TestSubmitRSVP_RequiresOpenModal(t *testing.T) {
	c := NewController(newFakeServer(t).client(), testPage(nil), &recorder{})

	_, err := c.SubmitRSVP(context.Background())

	assert.ErrorIs(t, err, ErrNoModal)
}

func TestSubmit_SecondSubmitRejectedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fs := newFakeServer(t)
	fs.handle("POST /api/events/{id}/register", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeJSON(w, http.StatusCreated, map[string]any{"registration": map[string]any{"id": uuid.New()}})
	})
	c := NewController(fs.client(), testPage(nil), &recorder{})
	c.Open(ModalRSVP)
	fillContact(c)

	errc := make(chan error, 1)
	go func() {
		_, err := c.SubmitRSVP(context.Background())
		errc <- err
	}()
	<-started

	assert.True(t, c.State().Submitting)
	_, err := c.SubmitRSVP(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)

	close(release)
	require.NoError(t, <-errc)
	assert.Equal(t, 1, fs.count("POST /api/events/{id}/register"))
}

func TestSubmitDonation_ValidationSendsNothing(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle("POST /api/donations/checkout", respond(http.StatusOK, map[string]string{"url": "https://checkout.example/x"}))
	notes := &recorder{}
	c := NewController(fs.client(), testPage(nil), notes)

	c.Open(ModalDonation)
	fillContact(c)
	c.Set(FieldCustomAmount, "abc")
	_, err := c.SubmitDonation(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgAmount, c.State().Error)
	assert.Zero(t, fs.count("POST /api/donations/checkout"))
}

func TestSubmitDonation_Success(t *testing.T) {
	page := testPage(nil)
	fs := newFakeServer(t)
	fs.handle("POST /api/donations/checkout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "50", body["amount"])
		assert.Equal(t, page.Event.ID.String(), body["eventId"])
		assert.Equal(t, "Ada", body["donor_name"])
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://checkout.example/x"})
	})
	c := NewController(fs.client(), page, &recorder{})

	c.Open(ModalDonation)
	c.Set(FieldPreset, "50")
	fillContact(c)
	url, err := c.SubmitDonation(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/x", url)
	assert.False(t, c.State().Open())
}

func TestSubmitDonation_TransportFailureUsesGenericMessage(t *testing.T) {
	fs := newFakeServer(t)
	api := fs.client()
	fs.Close()
	notes := &recorder{}
	c := NewController(api, testPage(nil), notes)

	c.Open(ModalDonation)
	c.Set(FieldPreset, "25")
	fillContact(c)
	_, err := c.SubmitDonation(context.Background())

	require.Error(t, err)
	assert.Equal(t, ErrDonationFailed.Error(), c.State().Error)
	assert.Equal(t, []string{ErrDonationFailed.Error()}, notes.failures)
}

func TestCompletePayPal(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle("POST /api/donations/paypal", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORDER-1", body["order_id"])
		writeJSON(w, http.StatusCreated, map[string]any{"donation": map[string]any{"id": uuid.New(), "status": "pending"}})
	})
	c := NewController(fs.client(), testPage(nil), &recorder{})

	c.Open(ModalDonation)
	c.Set(FieldPreset, "25")
	fillContact(c)
	d, err := c.CompletePayPal(context.Background(), "ORDER-1")

	require.NoError(t, err)
	assert.Equal(t, "pending", d.Status)
}

func TestSubmitTicketPurchase_ClosedTicketNotSent(t *testing.T) {
	ticket := uuid.New()
	page := testPage(nil)
	total := 10
	page.Tickets = []client.Ticket{{ID: ticket, QuantityTotal: &total, QuantitySold: 10, Availability: fundraising.AvailabilityAvailable}}
	fs := newFakeServer(t)
	notes := &recorder{}
	c := NewController(fs.client(), page, notes)

	c.Open(ModalTicket)
	c.Set(FieldTicket, ticket.String())
	fillContact(c)
	_, err := c.SubmitTicketPurchase(context.Background())

	assert.ErrorIs(t, err, ErrTicketClosed)
	assert.Equal(t, ErrTicketClosed.Error(), c.State().Error)
	assert.Zero(t, fs.count("POST /api/events/{id}/tickets/purchase"))
}

func TestSubmitTicketPurchase_DerivesAvailabilityFromRawFields(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	opened := now.Add(-time.Hour)
	unstamped := uuid.New()

	for name, ticket := range map[string]client.Ticket{
		"window opened since fetch": {ID: uuid.New(), SalesStartAt: &opened, Availability: fundraising.AvailabilityUpcoming},
		"no stamp":                  {ID: unstamped},
	} {
		t.Run(name, func(t *testing.T) {
			page := testPage(nil)
			page.Tickets = []client.Ticket{ticket}
			fs := newFakeServer(t)
			fs.handle("POST /api/events/{id}/tickets/purchase", respond(http.StatusCreated, map[string]any{
				"registration": map[string]any{"id": uuid.New()},
			}))
			fs.handle(routeTickets, respond(http.StatusOK, map[string]any{"tickets": []map[string]any{}}))
			c := NewController(fs.client(), page, &recorder{})
			c.now = func() time.Time { return now }

			c.Open(ModalTicket)
			c.Set(FieldTicket, ticket.ID.String())
			fillContact(c)
			_, err := c.SubmitTicketPurchase(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 1, fs.count("POST /api/events/{id}/tickets/purchase"))
		})
	}
}

func TestSubmitTicketPurchase_RefetchesTickets(t *testing.T) {
	ticket := uuid.New()
	page := testPage(nil)
	page.Tickets = []client.Ticket{{ID: ticket, Availability: fundraising.AvailabilityAvailable}}
	fs := newFakeServer(t)
	fs.handle("POST /api/events/{id}/tickets/purchase", func(w http.ResponseWriter, r *http.Request) {
		var req client.PurchaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.Quantity)
		writeJSON(w, http.StatusCreated, map[string]any{"registration": map[string]any{"id": uuid.New()}, "url": "https://checkout.example/t"})
	})
	fs.handle(routeTickets, respond(http.StatusOK, map[string]any{"tickets": []map[string]any{
		{"id": ticket, "availability": "sold-out", "quantity_sold": 2},
	}}))
	c := NewController(fs.client(), page, &recorder{})

	c.Open(ModalTicket)
	c.Set(FieldTicket, ticket.String())
	c.Set(FieldQuantity, "2")
	fillContact(c)
	res, err := c.SubmitTicketPurchase(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/t", res.URL)
	assert.Equal(t, 1, fs.count(routeTickets))
	assert.Equal(t, fundraising.AvailabilitySoldOut, page.TicketList()[0].Availability)
}

func TestSubmitVolunteerSignup(t *testing.T) {
	open, full := uuid.New(), uuid.New()
	page := testPage(nil)
	page.Shifts = []client.Shift{
		{ID: open, MaxVolunteers: 5, CurrentVolunteers: 4},
		{ID: full, MaxVolunteers: 2, CurrentVolunteers: 2},
	}
	fs := newFakeServer(t)
	fs.handle("POST /api/events/volunteer-signup", func(w http.ResponseWriter, r *http.Request) {
		var req client.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, open, req.ShiftID)
		assert.Equal(t, []string{"first aid"}, req.Skills)
		writeJSON(w, http.StatusCreated, map[string]any{"signup": map[string]any{"id": uuid.New(), "shift_id": open}})
	})
	fs.handle(routeShifts, respond(http.StatusOK, map[string]any{"shifts": []map[string]any{}}))
	c := NewController(fs.client(), page, &recorder{})

	t.Run("full shift", func(t *testing.T) {
		c.Open(ModalVolunteer)
		c.Set(FieldShift, full.String())
		fillContact(c)
		_, err := c.SubmitVolunteerSignup(context.Background())
		assert.ErrorIs(t, err, ErrShiftFull)
	})

	t.Run("open shift", func(t *testing.T) {
		c.Open(ModalVolunteer)
		c.Set(FieldShift, open.String())
		c.Set(FieldSkills, "first aid")
		fillContact(c)
		signup, err := c.SubmitVolunteerSignup(context.Background())
		require.NoError(t, err)
		assert.Equal(t, open, signup.ShiftID)
		assert.Equal(t, 1, fs.count(routeShifts))
		assert.Empty(t, page.ShiftList())
	})
}

func TestQuickAsk(t *testing.T) {
	owner := uuid.New()
	fs := newFakeServer(t)
	fs.handle("POST /api/events/{id}/volunteer-shifts", func(w http.ResponseWriter, r *http.Request) {
		var req client.ShiftRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, client.ShiftRequest{Title: "Setup crew", IsActive: true}, req)
		writeJSON(w, http.StatusCreated, map[string]any{"shift": map[string]any{"id": uuid.New(), "title": req.Title}})
	})
	fs.handle(routeShifts, respond(http.StatusOK, map[string]any{"shifts": []map[string]any{{"id": uuid.New(), "title": "Setup crew"}}}))

	t.Run("anonymous", func(t *testing.T) {
		c := NewController(fs.client(), testPage(&owner), &recorder{})
		_, err := c.QuickAsk(context.Background(), owner, "Setup crew")
		assert.ErrorIs(t, err, ErrLoginRequired)
	})

	t.Run("not the owner", func(t *testing.T) {
		c := NewController(fs.client(client.WithToken("tok")), testPage(&owner), &recorder{})
		_, err := c.QuickAsk(context.Background(), uuid.New(), "Setup crew")
		assert.ErrorIs(t, err, ErrOwnerOnly)
	})

	t.Run("blank title", func(t *testing.T) {
		c := NewController(fs.client(client.WithToken("tok")), testPage(&owner), &recorder{})
		_, err := c.QuickAsk(context.Background(), owner, "  ")
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("owner", func(t *testing.T) {
		page := testPage(&owner)
		notes := &recorder{}
		c := NewController(fs.client(client.WithToken("tok")), page, notes)
		shift, err := c.QuickAsk(context.Background(), owner, " Setup crew ")
		require.NoError(t, err)
		assert.Equal(t, "Setup crew", shift.Title)
		assert.Len(t, page.ShiftList(), 1)
		assert.Equal(t, []string{"Volunteer shift created"}, notes.success)
	})

	assert.Equal(t, 1, fs.count("POST /api/events/{id}/volunteer-shifts"))
}

func TestOpenTickets_Preselects(t *testing.T) {
	ticket := uuid.New()
	c := NewController(newFakeServer(t).client(), testPage(nil), &recorder{})

	s := c.OpenTickets(ticket)

	assert.Equal(t, ModalTicket, s.Modal)
	assert.Equal(t, TicketForm{TicketID: ticket, Quantity: 1}, s.Form)
}

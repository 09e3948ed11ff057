package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var purchaseNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

type ticketFixture struct {
	event      *models.Event
	ticket     *models.Ticket
	eventRepo  *mockEventRepo
	ticketRepo *mockTicketRepo
	regRepo    *mockRegRepo
	checkout   *mockCheckout
	cache      *mockCache
	mock       sqlmock.Sqlmock
	svc        *ticketService
	sold       int
	eventSold  int
	statuses   []models.RegistrationStatus
}

func newTicketFixture(t *testing.T, ticket *models.Ticket) *ticketFixture {
	db, mock := newMockDB(t)
	f := &ticketFixture{
		event:    sampleEvent(uuid.New()),
		ticket:   ticket,
		checkout: &mockCheckout{session: &payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}},
		cache:    &mockCache{},
		mock:     mock,
	}
	f.event.IsTicketed = true
	ticket.EventID = f.event.ID
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	if ticket.Currency == "" {
		ticket.Currency = "usd"
	}

	f.eventRepo = &mockEventRepo{
		db: db,
		findByIDForUpdateFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error) {
			if id != f.event.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return f.event, nil
		},
		addTicketsSoldFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
			f.eventSold += quantity
			return nil
		},
	}
	f.ticketRepo = &mockTicketRepo{
		findByIDForUpdateFn: func(ctx context.Context, tx *gorm.DB, eventID, id uuid.UUID) (*models.Ticket, error) {
			if id != f.ticket.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return f.ticket, nil
		},
		addSoldFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
			f.sold += quantity
			return nil
		},
	}
	f.regRepo = &mockRegRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
			reg.ID = uuid.New()
			return nil
		},
		updateStatusFn: func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.RegistrationStatus) error {
			f.statuses = append(f.statuses, status)
			return nil
		},
	}
	f.svc = NewTicketService(f.ticketRepo, f.eventRepo, f.regRepo, f.checkout, f.cache, "https://eventraise.test/").(*ticketService)
	f.svc.now = func() time.Time { return purchaseNow }
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return f
}

func (f *ticketFixture) purchase(quantity int) (*PurchaseResult, error) {
	return f.svc.Purchase(context.Background(), f.event.ID, PurchaseInput{
		TicketID: f.ticket.ID,
		Quantity: quantity,
		Name:     "Ada Lovelace",
		Email:    "ada@example.org",
	})
}

func intPtr(n int) *int { return &n }

func TestPurchase_FreeTicketConfirmed(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General", QuantityTotal: intPtr(100), QuantitySold: 10})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.purchase(2)

	require.NoError(t, err)
	assert.Empty(t, res.CheckoutURL)
	assert.Equal(t, models.RegistrationConfirmed, res.Registration.Status)
	assert.Equal(t, models.RegistrationTicket, res.Registration.Type)
	assert.Equal(t, 2, f.sold)
	assert.Equal(t, 2, f.eventSold)
	assert.Empty(t, f.checkout.requests)
	assert.Equal(t, []uuid.UUID{f.event.ID}, f.cache.purged)
}

func TestPurchase_PaidTicketStartsCheckout(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "VIP", PriceCents: 4500})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	var storedRef string
	f.regRepo.setProviderRefFn = func(ctx context.Context, id uuid.UUID, ref string) error {
		storedRef = ref
		return nil
	}

	res, err := f.purchase(3)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", res.CheckoutURL)
	assert.Equal(t, models.RegistrationPending, res.Registration.Status)
	assert.Equal(t, "cs_test_1", storedRef)

	require.Len(t, f.checkout.requests, 1)
	req := f.checkout.requests[0]
	assert.Equal(t, int64(4500), req.AmountCents)
	assert.Equal(t, int64(3), req.Quantity)
	assert.Equal(t, "ada@example.org", req.CustomerEmail)
	assert.Equal(t, res.Registration.ID.String(), req.Metadata["registration_id"])
	assert.Contains(t, req.SuccessURL, "https://eventraise.test/events/")
}

func TestPurchase_CheckoutFailureReleasesInventory(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "VIP", PriceCents: 4500, QuantityTotal: intPtr(10)})
	f.checkout.err = errors.New("stripe unavailable")
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.purchase(2)

	assert.ErrorIs(t, err, ErrCheckoutUnavailable)
	assert.Nil(t, res)
	assert.Equal(t, 0, f.sold)
	assert.Equal(t, 0, f.eventSold)
	assert.Equal(t, []models.RegistrationStatus{models.RegistrationCancelled}, f.statuses)
}

func TestPurchase_SoldOut(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General", QuantityTotal: intPtr(50), QuantitySold: 50})
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.purchase(1)

	assert.ErrorIs(t, err, ErrTicketUnavailable)
	assert.Contains(t, err.Error(), "sold-out")
	assert.Equal(t, 0, f.sold)
}

func TestPurchase_InsufficientRemaining(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General", QuantityTotal: intPtr(50), QuantitySold: 48})
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.purchase(3)

	assert.ErrorIs(t, err, ErrInsufficientTickets)
	assert.Equal(t, 0, f.sold)
}

func TestPurchase_SalesWindow(t *testing.T) {
	later := purchaseNow.Add(24 * time.Hour)
	earlier := purchaseNow.Add(-24 * time.Hour)

	cases := []struct {
		name   string
		ticket *models.Ticket
		state  string
	}{
		{"not started", &models.Ticket{Name: "Early", SalesStartAt: &later}, "upcoming"},
		{"ended", &models.Ticket{Name: "Late", SalesEndAt: &earlier}, "ended"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTicketFixture(t, tc.ticket)
			f.mock.ExpectBegin()
			f.mock.ExpectRollback()

			_, err := f.purchase(1)

			assert.ErrorIs(t, err, ErrTicketUnavailable)
			assert.Contains(t, err.Error(), tc.state)
		})
	}
}

func TestPurchase_UnknownTicket(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General"})
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Purchase(context.Background(), f.event.ID, PurchaseInput{TicketID: uuid.New(), Quantity: 1, Name: "Ada", Email: "ada@example.org"})

	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestPurchase_UnpublishedEvent(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General"})
	f.event.IsPublished = false
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.purchase(1)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestPurchase_EventLockFailureIsNotNotFound(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General"})
	f.eventRepo.findByIDForUpdateFn = func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error) {
		return nil, errors.New("lock timeout")
	}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.purchase(1)

	assert.ErrorContains(t, err, "lock timeout")
	assert.NotErrorIs(t, err, ErrEventNotFound)
	assert.Zero(t, f.sold)
}

func TestPurchase_ValidationBeforeTransaction(t *testing.T) {
	f := newTicketFixture(t, &models.Ticket{Name: "General"})

	_, err := f.svc.Purchase(context.Background(), f.event.ID, PurchaseInput{TicketID: f.ticket.ID, Quantity: 0, Name: "Ada", Email: "ada@example.org"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.Purchase(context.Background(), f.event.ID, PurchaseInput{TicketID: f.ticket.ID, Quantity: 1, Name: "Ada", Email: "not-an-email"})
	assert.EqualError(t, err, "Please enter your email")
}

func TestCreateTicket_MarksEventTicketed(t *testing.T) {
	actor, ownerID := ownerActor()
	event := sampleEvent(ownerID)
	var updated *models.Event
	eventRepo := &mockEventRepo{
		findByIDFn: eventLookup(event),
		updateFn: func(ctx context.Context, e *models.Event) error {
			updated = e
			return nil
		},
	}
	ticketRepo := &mockTicketRepo{
		createFn: func(ctx context.Context, ticket *models.Ticket) error { return nil },
	}
	cache := &mockCache{}
	svc := NewTicketService(ticketRepo, eventRepo, &mockRegRepo{}, &mockCheckout{}, cache, "")

	ticket := &models.Ticket{Name: "General", PriceCents: 2000, QuantitySold: 7}
	err := svc.CreateTicket(context.Background(), actor, event.ID, ticket)

	require.NoError(t, err)
	assert.Equal(t, event.ID, ticket.EventID)
	assert.Equal(t, 0, ticket.QuantitySold)
	assert.Equal(t, "usd", ticket.Currency)
	require.NotNil(t, updated)
	assert.True(t, updated.IsTicketed)
	assert.Equal(t, []uuid.UUID{event.ID}, cache.purged)
}

func TestCreateTicket_Validation(t *testing.T) {
	actor, ownerID := ownerActor()
	event := sampleEvent(ownerID)
	svc := NewTicketService(&mockTicketRepo{}, &mockEventRepo{findByIDFn: eventLookup(event)}, &mockRegRepo{}, &mockCheckout{}, nil, "")
	start := purchaseNow
	end := purchaseNow.Add(-time.Minute)

	for _, ticket := range []*models.Ticket{
		{Name: ""},
		{Name: "Neg", PriceCents: -1},
		{Name: "Zero", QuantityTotal: intPtr(0)},
		{Name: "Window", SalesStartAt: &start, SalesEndAt: &end},
	} {
		err := svc.CreateTicket(context.Background(), actor, event.ID, ticket)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, ticket.Name)
	}
}

func TestCreateTicket_Forbidden(t *testing.T) {
	event := sampleEvent(uuid.New())
	svc := NewTicketService(&mockTicketRepo{}, &mockEventRepo{findByIDFn: eventLookup(event)}, &mockRegRepo{}, &mockCheckout{}, nil, "")

	err := svc.CreateTicket(context.Background(), &models.Actor{UserID: uuid.New()}, event.ID, &models.Ticket{Name: "General"})

	assert.ErrorIs(t, err, ErrForbidden)
}

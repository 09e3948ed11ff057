package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/internal/service"
	"github.com/shopspring/decimal"
)

// newContext builds an echo context for a handler call, with path params
// given as name/value pairs.
func newContext(method, target, body string, actor *models.Actor, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if actor != nil {
		middleware.SetActor(c, actor)
	}
	return c, rec
}

// --- Mock EventService ---

type mockEventService struct {
	createFn  func(ctx context.Context, actor *models.Actor, event *models.Event) error
	getFn     func(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Event, error)
	listFn    func(ctx context.Context) ([]models.Event, error)
	updateFn  func(ctx context.Context, actor *models.Actor, id uuid.UUID, patch service.EventPatch) (*models.Event, error)
	deleteFn  func(ctx context.Context, actor *models.Actor, id uuid.UUID) error
	publishFn func(ctx context.Context, actor *models.Actor, id uuid.UUID, publish bool) (*models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, actor *models.Actor, event *models.Event) error {
	return m.createFn(ctx, actor, event)
}
func (m *mockEventService) GetEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Event, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, actor *models.Actor, id uuid.UUID, patch service.EventPatch) (*models.Event, error) {
	return m.updateFn(ctx, actor, id, patch)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	return m.deleteFn(ctx, actor, id)
}
func (m *mockEventService) SetPublished(ctx context.Context, actor *models.Actor, id uuid.UUID, publish bool) (*models.Event, error) {
	return m.publishFn(ctx, actor, id, publish)
}

// --- Mock RegistrationService ---

type mockRegistrationService struct {
	rsvpFn   func(ctx context.Context, eventID uuid.UUID, in service.RSVPInput) (*models.Registration, error)
	listFn   func(ctx context.Context, actor *models.Actor, eventID uuid.UUID, f repository.RegistrationFilter) (*service.RegistrationPage, error)
	bulkFn   func(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ids []uuid.UUID, status models.RegistrationStatus) (int64, error)
	exportFn func(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.CSVExport, error)
}

func (m *mockRegistrationService) RSVP(ctx context.Context, eventID uuid.UUID, in service.RSVPInput) (*models.Registration, error) {
	return m.rsvpFn(ctx, eventID, in)
}
func (m *mockRegistrationService) List(ctx context.Context, actor *models.Actor, eventID uuid.UUID, f repository.RegistrationFilter) (*service.RegistrationPage, error) {
	return m.listFn(ctx, actor, eventID, f)
}
func (m *mockRegistrationService) BulkUpdateStatus(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ids []uuid.UUID, status models.RegistrationStatus) (int64, error) {
	return m.bulkFn(ctx, actor, eventID, ids, status)
}
func (m *mockRegistrationService) ExportCSV(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.CSVExport, error) {
	return m.exportFn(ctx, actor, eventID)
}

// --- Mock TicketService ---

type mockTicketService struct {
	listFn     func(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error)
	createFn   func(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ticket *models.Ticket) error
	purchaseFn func(ctx context.Context, eventID uuid.UUID, in service.PurchaseInput) (*service.PurchaseResult, error)
}

func (m *mockTicketService) ListTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	return m.listFn(ctx, eventID)
}
func (m *mockTicketService) CreateTicket(ctx context.Context, actor *models.Actor, eventID uuid.UUID, ticket *models.Ticket) error {
	return m.createFn(ctx, actor, eventID, ticket)
}
func (m *mockTicketService) Purchase(ctx context.Context, eventID uuid.UUID, in service.PurchaseInput) (*service.PurchaseResult, error) {
	return m.purchaseFn(ctx, eventID, in)
}

// --- Mock VolunteerService ---

type mockVolunteerService struct {
	listFn   func(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error)
	createFn func(ctx context.Context, actor *models.Actor, eventID uuid.UUID, shift *models.VolunteerShift) error
	signupFn func(ctx context.Context, in service.SignupInput) (*models.VolunteerSignup, error)
}

func (m *mockVolunteerService) ListShifts(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error) {
	return m.listFn(ctx, eventID)
}
func (m *mockVolunteerService) CreateShift(ctx context.Context, actor *models.Actor, eventID uuid.UUID, shift *models.VolunteerShift) error {
	return m.createFn(ctx, actor, eventID, shift)
}
func (m *mockVolunteerService) Signup(ctx context.Context, in service.SignupInput) (*models.VolunteerSignup, error) {
	return m.signupFn(ctx, in)
}

// --- Mock DonationService ---

type mockDonationService struct {
	fee        decimal.Decimal
	checkoutFn func(ctx context.Context, in service.DonationInput) (string, error)
	paypalFn   func(ctx context.Context, in service.PayPalInput) (*models.Donation, error)
	shareFn    func(ctx context.Context, in service.ShareInput) error
}

func (m *mockDonationService) FeePercent() decimal.Decimal { return m.fee }
func (m *mockDonationService) Checkout(ctx context.Context, in service.DonationInput) (string, error) {
	return m.checkoutFn(ctx, in)
}
func (m *mockDonationService) RecordPayPal(ctx context.Context, in service.PayPalInput) (*models.Donation, error) {
	return m.paypalFn(ctx, in)
}
func (m *mockDonationService) Share(ctx context.Context, in service.ShareInput) error {
	return m.shareFn(ctx, in)
}

// --- Mock AnalyticsService ---

type mockAnalyticsService struct {
	fn func(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.Analytics, error)
}

func (m *mockAnalyticsService) EventAnalytics(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.Analytics, error) {
	return m.fn(ctx, actor, eventID)
}

// --- Mock PayoutService ---

type mockPayoutService struct {
	listFn   func(ctx context.Context, actor *models.Actor, status *models.PayoutStatus) ([]models.Payout, error)
	createFn func(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*models.Payout, error)
	updateFn func(ctx context.Context, actor *models.Actor, id uuid.UUID, status models.PayoutStatus, notes string) (*models.Payout, error)
}

func (m *mockPayoutService) List(ctx context.Context, actor *models.Actor, status *models.PayoutStatus) ([]models.Payout, error) {
	return m.listFn(ctx, actor, status)
}
func (m *mockPayoutService) Create(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*models.Payout, error) {
	return m.createFn(ctx, actor, eventID)
}
func (m *mockPayoutService) UpdateStatus(ctx context.Context, actor *models.Actor, id uuid.UUID, status models.PayoutStatus, notes string) (*models.Payout, error) {
	return m.updateFn(ctx, actor, id, status, notes)
}

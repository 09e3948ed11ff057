package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/payment"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a gorm handle whose transactions are recorded by sqlmock.
// Repositories are mocked, so only BEGIN/COMMIT/ROLLBACK reach the driver.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	db                  *gorm.DB
	createFn            func(ctx context.Context, event *models.Event) error
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*models.Event, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error)
	findPublishedFn     func(ctx context.Context) ([]models.Event, error)
	updateFn            func(ctx context.Context, event *models.Event) error
	deleteFn            func(ctx context.Context, id uuid.UUID) error
	addRaisedFn         func(ctx context.Context, tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error
	addTicketsSoldFn    func(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockEventRepo) FindPublished(ctx context.Context) ([]models.Event, error) {
	return m.findPublishedFn(ctx)
}
func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEventRepo) AddRaised(ctx context.Context, tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	if m.addRaisedFn == nil {
		return nil
	}
	return m.addRaisedFn(ctx, tx, id, amount)
}
func (m *mockEventRepo) AddTicketsSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	if m.addTicketsSoldFn == nil {
		return nil
	}
	return m.addTicketsSoldFn(ctx, tx, id, quantity)
}
func (m *mockEventRepo) GetDB() *gorm.DB { return m.db }

// --- Mock RegistrationRepository ---

type mockRegRepo struct {
	createFn             func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	findByEventFn        func(ctx context.Context, eventID uuid.UUID, f repository.RegistrationFilter) ([]models.Registration, int64, error)
	findAllByEventFn     func(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error)
	findByProviderRefFn  func(ctx context.Context, tx *gorm.DB, ref string) (*models.Registration, error)
	setProviderRefFn     func(ctx context.Context, id uuid.UUID, ref string) error
	updateStatusFn       func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.RegistrationStatus) error
	findForUpdateFn      func(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, ids []uuid.UUID) ([]models.Registration, error)
	statsFn              func(ctx context.Context, eventID uuid.UUID) (repository.RegistrationStats, error)
	ticketRevenueCentsFn func(ctx context.Context, eventID uuid.UUID, status models.RegistrationStatus) (int64, error)
}

func (m *mockRegRepo) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, tx, reg)
}
func (m *mockRegRepo) FindByEvent(ctx context.Context, eventID uuid.UUID, f repository.RegistrationFilter) ([]models.Registration, int64, error) {
	return m.findByEventFn(ctx, eventID, f)
}
func (m *mockRegRepo) FindAllByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	return m.findAllByEventFn(ctx, eventID)
}
func (m *mockRegRepo) FindByProviderRef(ctx context.Context, tx *gorm.DB, ref string) (*models.Registration, error) {
	return m.findByProviderRefFn(ctx, tx, ref)
}
func (m *mockRegRepo) SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error {
	if m.setProviderRefFn == nil {
		return nil
	}
	return m.setProviderRefFn(ctx, id, ref)
}
func (m *mockRegRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.RegistrationStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, tx, id, status)
}
func (m *mockRegRepo) FindForUpdate(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, ids []uuid.UUID) ([]models.Registration, error) {
	return m.findForUpdateFn(ctx, tx, eventID, ids)
}
func (m *mockRegRepo) Stats(ctx context.Context, eventID uuid.UUID) (repository.RegistrationStats, error) {
	return m.statsFn(ctx, eventID)
}
func (m *mockRegRepo) TicketRevenueCents(ctx context.Context, eventID uuid.UUID, status models.RegistrationStatus) (int64, error) {
	return m.ticketRevenueCentsFn(ctx, eventID, status)
}

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn            func(ctx context.Context, ticket *models.Ticket) error
	findByEventFn       func(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, eventID, id uuid.UUID) (*models.Ticket, error)
	addSoldFn           func(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	return m.createFn(ctx, ticket)
}
func (m *mockTicketRepo) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	return m.findByEventFn(ctx, eventID)
}
func (m *mockTicketRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, eventID, id uuid.UUID) (*models.Ticket, error) {
	return m.findByIDForUpdateFn(ctx, tx, eventID, id)
}
func (m *mockTicketRepo) AddSold(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	if m.addSoldFn == nil {
		return nil
	}
	return m.addSoldFn(ctx, tx, id, quantity)
}

// --- Mock VolunteerRepository ---

type mockVolunteerRepo struct {
	db                       *gorm.DB
	createShiftFn            func(ctx context.Context, shift *models.VolunteerShift) error
	findShiftsByEventFn      func(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error)
	findShiftByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.VolunteerShift, error)
	createSignupFn           func(ctx context.Context, tx *gorm.DB, signup *models.VolunteerSignup) error
	incrementVolunteersFn    func(ctx context.Context, tx *gorm.DB, shiftID uuid.UUID) error
}

func (m *mockVolunteerRepo) CreateShift(ctx context.Context, shift *models.VolunteerShift) error {
	return m.createShiftFn(ctx, shift)
}
func (m *mockVolunteerRepo) FindShiftsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.VolunteerShift, error) {
	return m.findShiftsByEventFn(ctx, eventID)
}
func (m *mockVolunteerRepo) FindShiftByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.VolunteerShift, error) {
	return m.findShiftByIDForUpdateFn(ctx, tx, id)
}
func (m *mockVolunteerRepo) CreateSignup(ctx context.Context, tx *gorm.DB, signup *models.VolunteerSignup) error {
	if m.createSignupFn == nil {
		return nil
	}
	return m.createSignupFn(ctx, tx, signup)
}
func (m *mockVolunteerRepo) IncrementVolunteers(ctx context.Context, tx *gorm.DB, shiftID uuid.UUID) error {
	if m.incrementVolunteersFn == nil {
		return nil
	}
	return m.incrementVolunteersFn(ctx, tx, shiftID)
}
func (m *mockVolunteerRepo) GetDB() *gorm.DB { return m.db }

// --- Mock DonationRepository ---

type mockDonationRepo struct {
	db                    *gorm.DB
	createFn              func(ctx context.Context, d *models.Donation) error
	setProviderRefFn      func(ctx context.Context, id uuid.UUID, ref string) error
	findByProviderRefFn   func(ctx context.Context, tx *gorm.DB, provider models.PaymentProvider, ref string) (*models.Donation, error)
	updateStatusFn        func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.DonationStatus) error
	totalsFn              func(ctx context.Context, eventID uuid.UUID) (repository.DonationTotals, error)
	findUnpaidSucceededFn func(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Donation, error)
	assignPayoutFn        func(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, payoutID uuid.UUID) (int64, error)
}

func (m *mockDonationRepo) Create(ctx context.Context, d *models.Donation) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, d)
}
func (m *mockDonationRepo) SetProviderRef(ctx context.Context, id uuid.UUID, ref string) error {
	if m.setProviderRefFn == nil {
		return nil
	}
	return m.setProviderRefFn(ctx, id, ref)
}
func (m *mockDonationRepo) FindByProviderRef(ctx context.Context, tx *gorm.DB, provider models.PaymentProvider, ref string) (*models.Donation, error) {
	if m.findByProviderRefFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByProviderRefFn(ctx, tx, provider, ref)
}
func (m *mockDonationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.DonationStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, tx, id, status)
}
func (m *mockDonationRepo) Totals(ctx context.Context, eventID uuid.UUID) (repository.DonationTotals, error) {
	return m.totalsFn(ctx, eventID)
}
func (m *mockDonationRepo) FindUnpaidSucceeded(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Donation, error) {
	return m.findUnpaidSucceededFn(ctx, tx, eventID)
}
func (m *mockDonationRepo) AssignPayout(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, payoutID uuid.UUID) (int64, error) {
	if m.assignPayoutFn == nil {
		return int64(len(ids)), nil
	}
	return m.assignPayoutFn(ctx, tx, ids, payoutID)
}
func (m *mockDonationRepo) GetDB() *gorm.DB { return m.db }

// --- Mock PayoutRepository ---

type mockPayoutRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, p *models.Payout) error
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Payout, error)
	listFn              func(ctx context.Context, status *models.PayoutStatus) ([]models.Payout, error)
	saveFn              func(ctx context.Context, tx *gorm.DB, p *models.Payout) error
}

func (m *mockPayoutRepo) Create(ctx context.Context, tx *gorm.DB, p *models.Payout) error {
	if m.createFn == nil {
		p.ID = uuid.New()
		return nil
	}
	return m.createFn(ctx, tx, p)
}
func (m *mockPayoutRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Payout, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockPayoutRepo) List(ctx context.Context, status *models.PayoutStatus) ([]models.Payout, error) {
	return m.listFn(ctx, status)
}
func (m *mockPayoutRepo) Save(ctx context.Context, tx *gorm.DB, p *models.Payout) error {
	if m.saveFn == nil {
		return nil
	}
	return m.saveFn(ctx, tx, p)
}

// --- Collaborators ---

type publishedMessage struct {
	key     string
	payload any
}

type mockPublisher struct {
	messages []publishedMessage
	err      error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.messages = append(m.messages, publishedMessage{key: routingKey, payload: payload})
	return m.err
}

type mockCache struct {
	purged []uuid.UUID
}

func (m *mockCache) PurgeEvent(ctx context.Context, eventID uuid.UUID) {
	m.purged = append(m.purged, eventID)
}

type mockCheckout struct {
	requests []payment.CheckoutRequest
	session  *payment.CheckoutSession
	err      error
}

func (m *mockCheckout) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// --- Fixtures ---

func ownerActor() (*models.Actor, uuid.UUID) {
	id := uuid.New()
	return &models.Actor{UserID: id, Email: "owner@example.org"}, id
}

func sampleEvent(owner uuid.UUID) *models.Event {
	return &models.Event{
		ID:          uuid.New(),
		Title:       "Spring Walkathon",
		EventType:   models.EventWalkathon,
		IsPublic:    true,
		IsPublished: true,
		OrganizerID: &owner,
		GoalAmount:  decimal.NewNullDecimal(decimal.NewFromInt(10000)),
	}
}

func eventLookup(e *models.Event) func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
		if id != e.ID {
			return nil, gorm.ErrRecordNotFound
		}
		return e, nil
	}
}

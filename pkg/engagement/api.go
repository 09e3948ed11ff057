package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
)

// API is the slice of the REST client the workflow needs. *client.Client
// satisfies it.
type API interface {
	Authenticated() bool
	GetEvent(ctx context.Context, id uuid.UUID) (*client.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req client.UpdateEventRequest) (*client.Event, error)
	EventAnalytics(ctx context.Context, id uuid.UUID) (*client.Analytics, error)
	ListTickets(ctx context.Context, id uuid.UUID) ([]client.Ticket, error)
	ListShifts(ctx context.Context, id uuid.UUID) ([]client.Shift, error)
	PlatformFees(ctx context.Context) (*client.PlatformFees, error)

	Register(ctx context.Context, eventID uuid.UUID, req client.RSVPRequest) (*client.Registration, error)
	PurchaseTicket(ctx context.Context, eventID uuid.UUID, req client.PurchaseRequest) (*client.PurchaseResult, error)
	CreateShift(ctx context.Context, eventID uuid.UUID, req client.ShiftRequest) (*client.Shift, error)
	VolunteerSignup(ctx context.Context, req client.SignupRequest) (*client.Signup, error)
	DonationCheckout(ctx context.Context, req client.DonationRequest) (string, error)
	RecordPayPal(ctx context.Context, req client.PayPalRequest) (*client.Donation, error)

	ListRegistrations(ctx context.Context, eventID uuid.UUID, q client.RegistrationQuery) (*client.RegistrationPage, error)
	BulkUpdateRegistrations(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID, status string) (int64, error)
	ExportRegistrationsCSV(ctx context.Context, eventID uuid.UUID) ([]byte, string, error)
}

var _ API = (*client.Client)(nil)

package engagement

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
)

// Controller owns the modal slot for one event page and runs the
// sub-form submissions against the API.
type Controller struct {
	api    API
	page   *Page
	notify Notifier
	now    func() time.Time

	mu    sync.Mutex
	state State
}

func NewController(api API, page *Page, notify Notifier) *Controller {
	if notify == nil {
		notify = LogNotifier{}
	}
	return &Controller{api: api, page: page, notify: notify, now: time.Now}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, a)
	return c.state
}

func (c *Controller) Open(kind ModalKind) State { return c.Dispatch(OpenModal{Kind: kind}) }

// OpenTickets opens the ticket purchase form, preselecting ticketID when it
// is not nil.
func (c *Controller) OpenTickets(ticketID uuid.UUID) State {
	s := c.Open(ModalTicket)
	if ticketID != uuid.Nil {
		s = c.Set(FieldTicket, ticketID.String())
	}
	return s
}

func (c *Controller) Set(field Field, value string) State {
	return c.Dispatch(Edit{Field: field, Value: value})
}

// begin marks the open form of kind as submitting and returns it.
func (c *Controller) begin(kind ModalKind) (Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Modal != kind {
		return nil, ErrNoModal
	}
	if c.state.Submitting {
		return nil, ErrSubmitting
	}
	c.state = Reduce(c.state, SubmitStarted{})
	return c.state.Form, nil
}

// finish closes the modal on success, or keeps it open with the message
// the user should see.
func (c *Controller) finish(kind ModalKind, err error, success, fallback string) error {
	msg := ""
	if err != nil {
		msg = UserMessage(err, fallback)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			log.Printf("[engagement] %s submit: %v", kind, err)
		}
	}
	c.Dispatch(SubmitFinished{Kind: kind, Err: msg})
	if err != nil {
		c.notify.Error(msg)
		return err
	}
	c.notify.Success(success)
	return nil
}

func (c *Controller) SubmitRSVP(ctx context.Context) (*client.Registration, error) {
	f, err := c.begin(ModalRSVP)
	if err != nil {
		return nil, err
	}
	form := f.(RSVPForm)

	var reg *client.Registration
	if err = form.Validate(); err == nil {
		reg, err = c.api.Register(ctx, c.page.Current().ID, client.RSVPRequest{
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.TrimSpace(form.Email),
			Quantity: ClampQuantity(form.Quantity),
			Type:     "rsvp",
		})
	}
	return reg, c.finish(ModalRSVP, err, "You're registered!", "Failed to register")
}

// SubmitTicketPurchase reserves tickets. The returned URL is non-empty for
// priced tickets and points at the hosted checkout.
func (c *Controller) SubmitTicketPurchase(ctx context.Context) (*client.PurchaseResult, error) {
	f, err := c.begin(ModalTicket)
	if err != nil {
		return nil, err
	}
	form := f.(TicketForm)

	var res *client.PurchaseResult
	if err = form.Validate(); err == nil {
		err = c.checkTicket(form.TicketID)
	}
	if err == nil {
		res, err = c.api.PurchaseTicket(ctx, c.page.Current().ID, client.PurchaseRequest{
			TicketID: form.TicketID,
			Quantity: ClampQuantity(form.Quantity),
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.TrimSpace(form.Email),
		})
	}
	if err == nil {
		c.refreshTickets(ctx)
	}
	return res, c.finish(ModalTicket, err, "Tickets reserved!", "Failed to purchase tickets")
}

func (c *Controller) checkTicket(id uuid.UUID) error {
	for _, t := range c.page.TicketList() {
		if t.ID != id {
			continue
		}
		if t.AvailabilityAt(c.now()) != fundraising.AvailabilityAvailable {
			return ErrTicketClosed
		}
		return nil
	}
	return ErrUnknownTicket
}

func (c *Controller) SubmitVolunteerSignup(ctx context.Context) (*client.Signup, error) {
	f, err := c.begin(ModalVolunteer)
	if err != nil {
		return nil, err
	}
	form := f.(VolunteerForm)

	var signup *client.Signup
	if err = form.Validate(); err == nil {
		err = c.checkShift(form.ShiftID)
	}
	if err == nil {
		signup, err = c.api.VolunteerSignup(ctx, client.SignupRequest{
			ShiftID:               form.ShiftID,
			VolunteerName:         strings.TrimSpace(form.Name),
			VolunteerEmail:        strings.TrimSpace(form.Email),
			VolunteerPhone:        form.Phone,
			Skills:                form.Skills,
			Experience:            form.Experience,
			Availability:          form.Availability,
			EmergencyContactName:  form.EmergencyContactName,
			EmergencyContactPhone: form.EmergencyContactPhone,
		})
	}
	if err == nil {
		c.refreshShifts(ctx)
	}
	return signup, c.finish(ModalVolunteer, err, "Thanks for volunteering!", "Failed to sign up")
}

func (c *Controller) checkShift(id uuid.UUID) error {
	for _, s := range c.page.ShiftList() {
		if s.ID != id {
			continue
		}
		if fundraising.SpotsLeft(s.MaxVolunteers, s.CurrentVolunteers) == 0 {
			return ErrShiftFull
		}
		return nil
	}
	return ErrUnknownShift
}

// QuickAsk lets the owner open a volunteer shift with just a title.
func (c *Controller) QuickAsk(ctx context.Context, userID uuid.UUID, title string) (*client.Shift, error) {
	if !c.api.Authenticated() {
		return nil, ErrLoginRequired
	}
	if !IsOwner(userID, c.page.Current()) {
		return nil, ErrOwnerOnly
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Msg: "Please enter a shift title"}
	}

	shift, err := c.api.CreateShift(ctx, c.page.Current().ID, client.ShiftRequest{Title: title, IsActive: true})
	if err != nil {
		msg := UserMessage(err, "Failed to create volunteer shift")
		log.Printf("[engagement] quick ask: %v", err)
		c.notify.Error(msg)
		return nil, err
	}
	c.refreshShifts(ctx)
	c.notify.Success("Volunteer shift created")
	return shift, nil
}

// SubmitDonation starts a hosted checkout and returns its URL.
func (c *Controller) SubmitDonation(ctx context.Context) (string, error) {
	f, err := c.begin(ModalDonation)
	if err != nil {
		return "", err
	}
	form := f.(DonationForm)

	var url string
	if err = form.Validate(); err == nil {
		url, err = c.api.DonationCheckout(ctx, donationRequest(c.page.Current().ID, form))
	}
	return url, c.finish(ModalDonation, err, "Redirecting to checkout...", ErrDonationFailed.Error())
}

// CompletePayPal records a donation the PayPal button already captured.
func (c *Controller) CompletePayPal(ctx context.Context, orderID string) (*client.Donation, error) {
	f, err := c.begin(ModalDonation)
	if err != nil {
		return nil, err
	}
	form := f.(DonationForm)

	var d *client.Donation
	if err = form.Validate(); err == nil {
		d, err = c.api.RecordPayPal(ctx, client.PayPalRequest{
			DonationRequest: donationRequest(c.page.Current().ID, form),
			OrderID:         orderID,
		})
	}
	return d, c.finish(ModalDonation, err, "Thank you for your donation!", ErrDonationFailed.Error())
}

func donationRequest(eventID uuid.UUID, f DonationForm) client.DonationRequest {
	return client.DonationRequest{
		Amount:     f.Amount(),
		EventID:    eventID,
		DonorName:  strings.TrimSpace(f.Name),
		DonorEmail: strings.TrimSpace(f.Email),
		Message:    f.Message,
	}
}

// Counters change only on the server, so they are refetched rather than
// adjusted locally.
func (c *Controller) refreshTickets(ctx context.Context) {
	tickets, err := c.api.ListTickets(ctx, c.page.Current().ID)
	if err != nil {
		log.Printf("[engagement] refresh tickets: %v", err)
		return
	}
	c.page.setTickets(tickets)
}

func (c *Controller) refreshShifts(ctx context.Context) {
	shifts, err := c.api.ListShifts(ctx, c.page.Current().ID)
	if err != nil {
		log.Printf("[engagement] refresh volunteer shifts: %v", err)
		return
	}
	c.page.setShifts(shifts)
}

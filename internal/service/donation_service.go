package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/payment"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationInput struct {
	EventID    uuid.UUID
	Amount     decimal.Decimal
	DonorName  string
	DonorEmail string
	Message    string
}

type PayPalInput struct {
	DonationInput
	OrderID string
}

type ShareInput struct {
	To      string
	EventID uuid.UUID
	Message string
}

// ShareMessage is published for the mailer on donation.share.
type ShareMessage struct {
	To         string    `json:"to"`
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title"`
	Message    string    `json:"message"`
}

type DonationService interface {
	FeePercent() decimal.Decimal
	Checkout(ctx context.Context, in DonationInput) (string, error)
	RecordPayPal(ctx context.Context, in PayPalInput) (*models.Donation, error)
	Share(ctx context.Context, in ShareInput) error
}

type donationService struct {
	repo       repository.DonationRepository
	eventRepo  repository.EventRepository
	checkout   payment.CheckoutProvider
	publisher  Publisher
	feePercent decimal.Decimal
	baseURL    string
}

func NewDonationService(
	repo repository.DonationRepository,
	eventRepo repository.EventRepository,
	checkout payment.CheckoutProvider,
	publisher Publisher,
	feePercent float64,
	baseURL string,
) DonationService {
	return &donationService{
		repo:       repo,
		eventRepo:  eventRepo,
		checkout:   checkout,
		publisher:  publisher,
		feePercent: decimal.NewFromFloat(feePercent),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *donationService) FeePercent() decimal.Decimal {
	return s.feePercent
}

// Checkout records a pending donation and returns the hosted checkout URL.
func (s *donationService) Checkout(ctx context.Context, in DonationInput) (string, error) {
	event, err := s.prepare(ctx, in)
	if err != nil {
		return "", err
	}

	donation := s.newDonation(in, models.ProviderStripe)
	if err := s.repo.Create(ctx, donation); err != nil {
		return "", fmt.Errorf("create donation: %w", err)
	}

	sess, err := s.checkout.CreateCheckout(ctx, payment.CheckoutRequest{
		Description:   fmt.Sprintf("Donation to %s", event.Title),
		AmountCents:   donation.Amount.Shift(2).IntPart(),
		Currency:      donation.Currency,
		Quantity:      1,
		CustomerEmail: donation.DonorEmail,
		SuccessURL:    fmt.Sprintf("%s/events/%s?donation=success", s.baseURL, event.ID),
		CancelURL:     fmt.Sprintf("%s/events/%s?donation=cancelled", s.baseURL, event.ID),
		Metadata: map[string]string{
			"donation_id": donation.ID.String(),
			"event_id":    event.ID.String(),
		},
	})
	if err != nil {
		log.Printf("[DonationService] checkout for donation %s: %v", donation.ID, err)
		if uerr := s.repo.UpdateStatus(ctx, s.repo.GetDB(), donation.ID, models.DonationFailed); uerr != nil {
			log.Printf("[DonationService] mark donation %s failed: %v", donation.ID, uerr)
		}
		monitoring.TrackDonation(string(models.ProviderStripe), string(models.DonationFailed))
		return "", ErrCheckoutUnavailable
	}

	if err := s.repo.SetProviderRef(ctx, donation.ID, sess.ID); err != nil {
		return "", fmt.Errorf("store checkout reference: %w", err)
	}
	monitoring.TrackDonation(string(models.ProviderStripe), string(models.DonationPending))
	return sess.URL, nil
}

// RecordPayPal stores a captured PayPal order as a pending donation. The
// payment consumer settles it once the capture is confirmed.
func (s *donationService) RecordPayPal(ctx context.Context, in PayPalInput) (*models.Donation, error) {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return nil, invalid("order_id is required")
	}
	if _, err := s.prepare(ctx, in.DonationInput); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByProviderRef(ctx, s.repo.GetDB(), models.ProviderPayPal, orderID)
	switch {
	case err == nil:
		return nil, ErrDuplicatePayment
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup paypal order: %w", err)
	}

	donation := s.newDonation(in.DonationInput, models.ProviderPayPal)
	donation.ProviderRef = orderID
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	monitoring.TrackDonation(string(models.ProviderPayPal), string(models.DonationPending))
	return donation, nil
}

func (s *donationService) Share(ctx context.Context, in ShareInput) error {
	to := strings.TrimSpace(in.To)
	if !fundraising.ValidEmail(to) {
		return invalid("Please enter a valid email address")
	}
	event, err := findEvent(ctx, s.eventRepo, in.EventID)
	if err != nil {
		return err
	}
	if !event.IsPublished {
		return ErrEventNotFound
	}
	if s.publisher == nil {
		return nil
	}
	msg := ShareMessage{To: to, EventID: event.ID, EventTitle: event.Title, Message: in.Message}
	if err := s.publisher.Publish("donation.share", msg); err != nil {
		return fmt.Errorf("publish share: %w", err)
	}
	return nil
}

func (s *donationService) prepare(ctx context.Context, in DonationInput) (*models.Event, error) {
	if !in.Amount.IsPositive() {
		return nil, invalid("Please enter a valid donation amount")
	}
	if _, _, err := validateContact(in.DonorName, in.DonorEmail); err != nil {
		return nil, err
	}
	event, err := findEvent(ctx, s.eventRepo, in.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *donationService) newDonation(in DonationInput, provider models.PaymentProvider) *models.Donation {
	amount := in.Amount.Round(2)
	fee, net := fundraising.PlatformFee(amount, s.feePercent)
	return &models.Donation{
		EventID:     in.EventID,
		Amount:      amount,
		Currency:    "usd",
		DonorName:   strings.TrimSpace(in.DonorName),
		DonorEmail:  strings.TrimSpace(in.DonorEmail),
		Message:     in.Message,
		Provider:    provider,
		Status:      models.DonationPending,
		PlatformFee: fee,
		NetAmount:   net,
	}
}

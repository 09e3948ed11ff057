package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"gorm.io/gorm"
)

// PaymentResult is the outcome carried by a payment.succeeded or
// payment.failed message.
type PaymentResult struct {
	Provider    models.PaymentProvider `json:"provider"`
	ProviderRef string                 `json:"provider_ref"`
	Succeeded   bool                   `json:"-"`
}

type PaymentService interface {
	ConfirmPayment(ctx context.Context, result PaymentResult) error
}

type paymentService struct {
	donationRepo repository.DonationRepository
	regRepo      repository.RegistrationRepository
	ticketRepo   repository.TicketRepository
	eventRepo    repository.EventRepository
	cache        CacheInvalidator
}

func NewPaymentService(
	donationRepo repository.DonationRepository,
	regRepo repository.RegistrationRepository,
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	cache CacheInvalidator,
) PaymentService {
	return &paymentService{
		donationRepo: donationRepo,
		regRepo:      regRepo,
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		cache:        cache,
	}
}

// ConfirmPayment settles the donation or ticket registration behind a
// provider reference. Redelivered messages for an already settled record are
// no-ops.
func (s *paymentService) ConfirmPayment(ctx context.Context, result PaymentResult) error {
	if result.ProviderRef == "" {
		return invalid("provider_ref is required")
	}
	if result.Provider == "" {
		result.Provider = models.ProviderStripe
	}

	var eventID uuid.UUID
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		donation, err := s.donationRepo.FindByProviderRef(ctx, tx, result.Provider, result.ProviderRef)
		if err == nil {
			eventID = donation.EventID
			return s.settleDonation(ctx, tx, donation, result.Succeeded)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find donation: %w", err)
		}

		reg, err := s.regRepo.FindByProviderRef(ctx, tx, result.ProviderRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("find registration: %w", err)
		}
		eventID = reg.EventID
		return s.settleRegistration(ctx, tx, reg, result.Succeeded)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.PurgeEvent(ctx, eventID)
	}
	return nil
}

func (s *paymentService) settleDonation(ctx context.Context, tx *gorm.DB, d *models.Donation, succeeded bool) error {
	if d.Status != models.DonationPending {
		return nil
	}
	status := models.DonationFailed
	if succeeded {
		status = models.DonationSucceeded
	}
	if err := s.donationRepo.UpdateStatus(ctx, tx, d.ID, status); err != nil {
		return err
	}
	if succeeded {
		if err := s.eventRepo.AddRaised(ctx, tx, d.EventID, d.Amount); err != nil {
			return err
		}
	}
	monitoring.TrackDonation(string(d.Provider), string(status))
	return nil
}

func (s *paymentService) settleRegistration(ctx context.Context, tx *gorm.DB, reg *models.Registration, succeeded bool) error {
	if reg.Status != models.RegistrationPending {
		return nil
	}
	if succeeded {
		return s.regRepo.UpdateStatus(ctx, tx, reg.ID, models.RegistrationConfirmed)
	}
	return releaseTickets(ctx, tx, s.regRepo, s.ticketRepo, s.eventRepo, reg)
}

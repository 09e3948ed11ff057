package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutService interface {
	List(ctx context.Context, actor *models.Actor, status *models.PayoutStatus) ([]models.Payout, error)
	Create(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*models.Payout, error)
	UpdateStatus(ctx context.Context, actor *models.Actor, id uuid.UUID, status models.PayoutStatus, notes string) (*models.Payout, error)
}

type payoutService struct {
	repo         repository.PayoutRepository
	donationRepo repository.DonationRepository
	eventRepo    repository.EventRepository
	now          func() time.Time
}

func NewPayoutService(repo repository.PayoutRepository, donationRepo repository.DonationRepository, eventRepo repository.EventRepository) PayoutService {
	return &payoutService{repo: repo, donationRepo: donationRepo, eventRepo: eventRepo, now: time.Now}
}

func requireAdmin(actor *models.Actor) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return ErrAdminOnly
	}
	return nil
}

func (s *payoutService) List(ctx context.Context, actor *models.Actor, status *models.PayoutStatus) ([]models.Payout, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	payouts, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return payouts, nil
}

// Create settles every succeeded donation of the event that is not yet part
// of a payout into a new pending payout.
func (s *payoutService) Create(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*models.Payout, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}

	var payout *models.Payout
	err = s.donationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		donations, err := s.donationRepo.FindUnpaidSucceeded(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if len(donations) == 0 {
			return ErrNothingToPayout
		}

		gross, fees := decimal.Zero, decimal.Zero
		ids := make([]uuid.UUID, 0, len(donations))
		for _, d := range donations {
			gross = gross.Add(d.Amount)
			fees = fees.Add(d.PlatformFee)
			ids = append(ids, d.ID)
		}

		payout = &models.Payout{
			EventID:       eventID,
			OrganizerID:   event.OwnerID(),
			Gross:         gross,
			Fees:          fees,
			Net:           gross.Sub(fees),
			DonationCount: len(donations),
			Status:        models.PayoutPending,
		}
		if err := s.repo.Create(ctx, tx, payout); err != nil {
			return err
		}
		n, err := s.donationRepo.AssignPayout(ctx, tx, ids, payout.ID)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d donations already assigned", ErrNothingToPayout, int64(len(ids))-n, len(ids))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

func (s *payoutService) UpdateStatus(ctx context.Context, actor *models.Actor, id uuid.UUID, status models.PayoutStatus, notes string) (*models.Payout, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var payout *models.Payout
	err := s.donationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		payout, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPayoutNotFound
			}
			return err
		}
		if !payout.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, payout.Status, status)
		}

		payout.Status = status
		if n := strings.TrimSpace(notes); n != "" {
			payout.Notes = n
		}
		if status == models.PayoutPaid {
			now := s.now()
			payout.PaidAt = &now
		}
		return s.repo.Save(ctx, tx, payout)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

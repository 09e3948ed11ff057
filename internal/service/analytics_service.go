package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
)

type RevenueSummary struct {
	// Total equals Gross; the client progress bar reads it.
	Total       decimal.Decimal `json:"total"`
	Gross       decimal.Decimal `json:"gross"`
	Fees        decimal.Decimal `json:"fees"`
	Net         decimal.Decimal `json:"net"`
	Pending     decimal.Decimal `json:"pending"`
	Donations   decimal.Decimal `json:"donations"`
	TicketSales decimal.Decimal `json:"ticket_sales"`
}

type RegistrationSummary struct {
	Total     int64 `json:"total"`
	RSVP      int64 `json:"rsvp"`
	Ticket    int64 `json:"ticket"`
	Confirmed int64 `json:"confirmed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Attendees int64 `json:"attendees"`
}

type Analytics struct {
	Registrations RegistrationSummary `json:"registrations"`
	Revenue       RevenueSummary      `json:"revenue"`
}

type AnalyticsService interface {
	EventAnalytics(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*Analytics, error)
}

type analyticsService struct {
	eventRepo    repository.EventRepository
	regRepo      repository.RegistrationRepository
	donationRepo repository.DonationRepository
	feePercent   decimal.Decimal
}

func NewAnalyticsService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository, donationRepo repository.DonationRepository, feePercent float64) AnalyticsService {
	return &analyticsService{
		eventRepo:    eventRepo,
		regRepo:      regRepo,
		donationRepo: donationRepo,
		feePercent:   decimal.NewFromFloat(feePercent),
	}
}

// EventAnalytics aggregates registrations and revenue for the event's owner
// or an admin. Nothing is persisted.
func (s *analyticsService) EventAnalytics(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*Analytics, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	event, err := findEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if err := authorizeManage(actor, event); err != nil {
		return nil, err
	}

	stats, err := s.regRepo.Stats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("registration stats: %w", err)
	}
	donations, err := s.donationRepo.Totals(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("donation totals: %w", err)
	}
	confirmedCents, err := s.regRepo.TicketRevenueCents(ctx, eventID, models.RegistrationConfirmed)
	if err != nil {
		return nil, fmt.Errorf("ticket revenue: %w", err)
	}
	pendingCents, err := s.regRepo.TicketRevenueCents(ctx, eventID, models.RegistrationPending)
	if err != nil {
		return nil, fmt.Errorf("pending ticket revenue: %w", err)
	}

	ticketSales := decimal.New(confirmedCents, -2)
	ticketFees, _ := fundraising.PlatformFee(ticketSales, s.feePercent)
	gross := donations.Succeeded.Add(ticketSales)
	fees := donations.Fees.Add(ticketFees)

	return &Analytics{
		Registrations: RegistrationSummary(stats),
		Revenue: RevenueSummary{
			Total:       gross,
			Gross:       gross,
			Fees:        fees,
			Net:         gross.Sub(fees),
			Pending:     donations.Pending.Add(decimal.New(pendingCents, -2)),
			Donations:   donations.Succeeded,
			TicketSales: ticketSales,
		},
	}, nil
}

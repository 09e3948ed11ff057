package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

var ErrNotConfigured = errors.New("payment provider is not configured")

type CheckoutRequest struct {
	Description   string
	AmountCents   int64
	Currency      string
	Quantity      int64
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutProvider creates hosted checkout pages. The browser is redirected
// to CheckoutSession.URL; completion arrives later as a payment message.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type StripeCheckout struct {
	client *session.Client
}

func NewStripeCheckout(secretKey string) *StripeCheckout {
	if secretKey == "" {
		return &StripeCheckout{}
	}
	return &StripeCheckout{
		client: &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (s *StripeCheckout) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(max(1, req.Quantity)),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := s.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

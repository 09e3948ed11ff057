package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripeCheckout_NotConfigured(t *testing.T) {
	s := NewStripeCheckout("")

	sess, err := s.CreateCheckout(context.Background(), CheckoutRequest{AmountCents: 2500, Currency: "usd"})

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, sess)
}

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/raoc-coder/eventraisehub/internal/monitoring"
	"github.com/raoc-coder/eventraisehub/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	KeyPaymentSucceeded = "payment.succeeded"
	KeyPaymentFailed    = "payment.failed"
)

type PaymentConsumer struct {
	svc     service.PaymentService
	timeout time.Duration
}

func NewPaymentConsumer(svc service.PaymentService) *PaymentConsumer {
	return &PaymentConsumer{svc: svc, timeout: 10 * time.Second}
}

// Start settles donations and ticket registrations as payment outcomes
// arrive. It returns once msgs is closed.
func (pc *PaymentConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			pc.handleMessage(ctx, msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
	return done
}

func (pc *PaymentConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	outcome := pc.process(ctx, msg)
	monitoring.TrackPaymentMessage(outcome)
}

func (pc *PaymentConsumer) process(ctx context.Context, msg amqp.Delivery) string {
	var result service.PaymentResult
	switch msg.RoutingKey {
	case KeyPaymentSucceeded:
		result.Succeeded = true
	case KeyPaymentFailed:
	default:
		log.Printf("[PaymentConsumer] unexpected routing key %q", msg.RoutingKey)
		_ = msg.Nack(false, false)
		return "rejected"
	}

	if err := json.Unmarshal(msg.Body, &result); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		_ = msg.Nack(false, false)
		return "rejected"
	}

	ctx, cancel := context.WithTimeout(ctx, pc.timeout)
	defer cancel()

	if err := pc.svc.ConfirmPayment(ctx, result); err != nil {
		var verr *service.ValidationError
		if errors.Is(err, service.ErrPaymentNotFound) || errors.As(err, &verr) {
			log.Printf("[PaymentConsumer] dropping %s %s: %v", result.Provider, result.ProviderRef, err)
			_ = msg.Nack(false, false)
			return "rejected"
		}
		log.Printf("[PaymentConsumer] failed to settle %s %s: %v", result.Provider, result.ProviderRef, err)
		_ = msg.Nack(false, true) // requeue
		return "requeued"
	}

	log.Printf("[PaymentConsumer] settled %s %s (%s)", result.Provider, result.ProviderRef, msg.RoutingKey)
	_ = msg.Ack(false)
	return "acked"
}

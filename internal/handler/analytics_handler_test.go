package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/internal/models"
	"github.com/raoc-coder/eventraisehub/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAnalytics_Handler_Success(t *testing.T) {
	id := uuid.New()
	svc := &mockAnalyticsService{
		fn: func(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.Analytics, error) {
			return &service.Analytics{
				Registrations: service.RegistrationSummary{Total: 4, RSVP: 3, Ticket: 1, Confirmed: 4, Attendees: 6},
				Revenue:       service.RevenueSummary{Total: decimal.NewFromInt(125), Gross: decimal.NewFromInt(125)},
			}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/", "", owner(), "id", id.String())

	require.NoError(t, NewAnalyticsHandler(svc).EventAnalytics(c))

	var resp service.Analytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(6), resp.Registrations.Attendees)
	assert.Equal(t, "125", resp.Revenue.Total.String())
}

func TestEventAnalytics_Handler_Anonymous(t *testing.T) {
	svc := &mockAnalyticsService{
		fn: func(ctx context.Context, actor *models.Actor, eventID uuid.UUID) (*service.Analytics, error) {
			assert.Nil(t, actor)
			return nil, service.ErrUnauthenticated
		},
	}
	id := uuid.New()
	c, _ := newContext(http.MethodGet, "/", "", nil, "id", id.String())

	err := NewAnalyticsHandler(svc).EventAnalytics(c)

	assertHTTPError(t, err, http.StatusUnauthorized, "authentication required")
}

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventraise_registrations_total",
			Help: "Registrations created, by type",
		},
		[]string{"type"},
	)

	ticketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventraise_tickets_sold_total",
			Help: "Tickets reserved through purchases",
		},
	)

	volunteerSignups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventraise_volunteer_signups_total",
			Help: "Volunteer shift signups",
		},
	)

	donations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventraise_donations_total",
			Help: "Donation state changes, by provider and status",
		},
		[]string{"provider", "status"},
	)

	paymentMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventraise_payment_messages_total",
			Help: "Payment confirmation messages consumed, by outcome",
		},
		[]string{"outcome"},
	)
)

func TrackRegistration(kind string) {
	registrations.WithLabelValues(kind).Inc()
}

func TrackTicketsSold(quantity int) {
	ticketsSold.Add(float64(quantity))
}

func TrackVolunteerSignup() {
	volunteerSignups.Inc()
}

func TrackDonation(provider, status string) {
	donations.WithLabelValues(provider, status).Inc()
}

func TrackPaymentMessage(outcome string) {
	paymentMessages.WithLabelValues(outcome).Inc()
}

// Package fundraising holds the pure rules shared by the server and the
// engagement client: ticket availability, volunteer capacity, goal progress,
// email validation, platform fees and export file naming.
package fundraising

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultPlatformFeePercent is used when no fee configuration is available.
const DefaultPlatformFeePercent = 8.99

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Availability is the derived sales state of a ticket type.
type Availability string

const (
	AvailabilityUpcoming  Availability = "upcoming"
	AvailabilityEnded     Availability = "ended"
	AvailabilitySoldOut   Availability = "sold-out"
	AvailabilityAvailable Availability = "available"
)

// TicketAvailability derives the sales state at now. A nil quantityTotal
// means unlimited inventory; nil sales bounds are open.
func TicketAvailability(now time.Time, salesStart, salesEnd *time.Time, quantityTotal *int, quantitySold int) Availability {
	switch {
	case salesStart != nil && now.Before(*salesStart):
		return AvailabilityUpcoming
	case salesEnd != nil && now.After(*salesEnd):
		return AvailabilityEnded
	case quantityTotal != nil && quantitySold >= *quantityTotal:
		return AvailabilitySoldOut
	default:
		return AvailabilityAvailable
	}
}

// Remaining returns how many tickets can still be sold, or -1 for unlimited.
func Remaining(quantityTotal *int, quantitySold int) int {
	if quantityTotal == nil {
		return -1
	}
	return max(0, *quantityTotal-quantitySold)
}

// SpotsLeft is the number of free volunteer places on a shift.
func SpotsLeft(maxVolunteers, currentVolunteers int) int {
	return max(0, maxVolunteers-currentVolunteers)
}

// RaisedAmount prefers a strictly positive live figure. Otherwise the first
// present fallback wins, in the order given, defaulting to zero.
func RaisedAmount(live float64, fallbacks ...*float64) float64 {
	if live > 0 {
		return live
	}
	for _, f := range fallbacks {
		if f != nil {
			return *f
		}
	}
	return 0
}

// ProgressPercent returns round(raised/goal*100) clamped to [0,100]. The
// second result is false when goal is not positive and no indicator should
// be shown.
func ProgressPercent(raised, goal float64) (int, bool) {
	if goal <= 0 {
		return 0, false
	}
	pct := int(math.Floor(raised/goal*100 + 0.5))
	return min(100, max(0, pct)), true
}

// ProgressLabel renders e.g. "Raised $5,000 • 50%".
func ProgressLabel(raised float64, percent int) string {
	return fmt.Sprintf("Raised %s • %d%%", FormatUSD(raised), percent)
}

// FormatUSD formats a dollar amount with thousands separators. Whole
// amounts are printed without cents.
func FormatUSD(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	cents := int64(math.Floor(amount*100 + 0.5))
	whole, frac := cents/100, cents%100

	out := "$" + humanize.Comma(whole)
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of other characters into a
// single dash.
func Slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "event"
	}
	return slug
}

// RegistrationsCSVFilename names a registrations export taken at t.
func RegistrationsCSVFilename(title string, t time.Time) string {
	return fmt.Sprintf("registrations_%s_%s.csv", Slugify(title), t.UTC().Format("2006-01-02"))
}

// PlatformFee splits amount into the platform fee (rounded to cents) and
// the net amount the organizer receives.
func PlatformFee(amount, percent decimal.Decimal) (fee, net decimal.Decimal) {
	fee = amount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	return fee, amount.Sub(fee)
}

// FeeDisclosure is the copy shown next to the donation form.
func FeeDisclosure(percent float64) string {
	return fmt.Sprintf("A %s%% platform fee is deducted from your donation; the organizer receives the net amount.",
		decimal.NewFromFloat(percent).String())
}

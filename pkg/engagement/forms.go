package engagement

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/shopspring/decimal"
)

var (
	// EventPagePresets are the quick amounts on the event page.
	EventPagePresets = []int{1, 10, 25, 50, 100}
	// DonationPresets are the quick amounts on the standalone donation form.
	DonationPresets = []int{25, 50, 100, 250, 500}
)

const (
	msgAmount = "Please enter a valid donation amount"
	msgName   = "Please enter your name"
	msgEmail  = "Please enter your email"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nameRules = []validation.Rule{validation.Required.Error(msgName)}

var emailRules = []validation.Rule{
	validation.Required.Error(msgEmail),
	validation.Match(emailPattern).Error(msgEmail),
}

// validateContact checks name then email, stopping at the first failure.
func validateContact(name, email string) error {
	if err := validation.Validate(strings.TrimSpace(name), nameRules...); err != nil {
		return asValidation(err)
	}
	if err := validation.Validate(strings.TrimSpace(email), emailRules...); err != nil {
		return asValidation(err)
	}
	return nil
}

func asValidation(err error) error {
	var verr validation.Error
	if errors.As(err, &verr) {
		return &ValidationError{Msg: verr.Message()}
	}
	return &ValidationError{Msg: err.Error()}
}

// NormalizeAmountInput keeps only the digits of a custom amount entry.
func NormalizeAmountInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ClampQuantity enforces the one-attendee minimum.
func ClampQuantity(q int) int {
	return max(1, q)
}

// CanSignup gates the volunteer signup button.
func CanSignup(spotsLeft int, name, email string) bool {
	return spotsLeft > 0 && strings.TrimSpace(name) != "" && strings.TrimSpace(email) != ""
}

type RSVPForm struct {
	Name     string
	Email    string
	Quantity int
}

func (f RSVPForm) Validate() error {
	return validateContact(f.Name, f.Email)
}

type TicketForm struct {
	TicketID uuid.UUID
	Quantity int
	Name     string
	Email    string
}

func (f TicketForm) Validate() error {
	if f.TicketID == uuid.Nil {
		return ErrUnknownTicket
	}
	return validateContact(f.Name, f.Email)
}

type VolunteerForm struct {
	ShiftID               uuid.UUID
	Name                  string
	Email                 string
	Phone                 string
	Skills                []string
	Experience            string
	Availability          string
	EmergencyContactName  string
	EmergencyContactPhone string
}

func (f VolunteerForm) Validate() error {
	if f.ShiftID == uuid.Nil {
		return ErrUnknownShift
	}
	return validateContact(f.Name, f.Email)
}

// DonationForm holds either a preset or a custom amount; setting one
// clears the other.
type DonationForm struct {
	Preset  int
	Custom  string
	Name    string
	Email   string
	Message string
}

func (f DonationForm) Amount() decimal.Decimal {
	if f.Custom != "" {
		d, err := decimal.NewFromString(f.Custom)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.NewFromInt(int64(f.Preset))
}

func (f DonationForm) Validate() error {
	if err := validation.Validate(f.Amount(), validation.By(positiveAmount)); err != nil {
		return asValidation(err)
	}
	return validateContact(f.Name, f.Email)
}

func positiveAmount(v any) error {
	if d, ok := v.(decimal.Decimal); !ok || !d.IsPositive() {
		return errors.New(msgAmount)
	}
	return nil
}

// FeeDisclosure renders the fee copy, falling back to the default rate
// when the server figure is unavailable.
func FeeDisclosure(percent *decimal.Decimal) string {
	if percent == nil {
		return fundraising.FeeDisclosure(fundraising.DefaultPlatformFeePercent)
	}
	return fundraising.FeeDisclosure(percent.InexactFloat64())
}

func parseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return ClampQuantity(n)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

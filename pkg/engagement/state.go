package engagement

import (
	"strconv"

	"github.com/google/uuid"
)

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalRSVP
	ModalTicket
	ModalVolunteer
	ModalDonation
)

func (k ModalKind) String() string {
	switch k {
	case ModalRSVP:
		return "rsvp"
	case ModalTicket:
		return "ticket"
	case ModalVolunteer:
		return "volunteer"
	case ModalDonation:
		return "donation"
	}
	return "none"
}

// Form is one of RSVPForm, TicketForm, VolunteerForm or DonationForm.
type Form interface {
	Kind() ModalKind
	with(field Field, value string) Form
}

func (RSVPForm) Kind() ModalKind      { return ModalRSVP }
func (TicketForm) Kind() ModalKind    { return ModalTicket }
func (VolunteerForm) Kind() ModalKind { return ModalVolunteer }
func (DonationForm) Kind() ModalKind  { return ModalDonation }

func newForm(k ModalKind) Form {
	switch k {
	case ModalRSVP:
		return RSVPForm{Quantity: 1}
	case ModalTicket:
		return TicketForm{Quantity: 1}
	case ModalVolunteer:
		return VolunteerForm{}
	case ModalDonation:
		return DonationForm{}
	}
	return nil
}

type Field string

const (
	FieldName                  Field = "name"
	FieldEmail                 Field = "email"
	FieldQuantity              Field = "quantity"
	FieldTicket                Field = "ticket_id"
	FieldShift                 Field = "shift_id"
	FieldPhone                 Field = "phone"
	FieldSkills                Field = "skills"
	FieldExperience            Field = "experience"
	FieldAvailability          Field = "availability"
	FieldEmergencyContactName  Field = "emergency_contact_name"
	FieldEmergencyContactPhone Field = "emergency_contact_phone"
	FieldPreset                Field = "preset"
	FieldCustomAmount          Field = "custom_amount"
	FieldMessage               Field = "message"
)

func (f RSVPForm) with(field Field, v string) Form {
	switch field {
	case FieldName:
		f.Name = v
	case FieldEmail:
		f.Email = v
	case FieldQuantity:
		f.Quantity = parseQuantity(v)
	}
	return f
}

func (f TicketForm) with(field Field, v string) Form {
	switch field {
	case FieldTicket:
		f.TicketID, _ = uuid.Parse(v)
	case FieldQuantity:
		f.Quantity = parseQuantity(v)
	case FieldName:
		f.Name = v
	case FieldEmail:
		f.Email = v
	}
	return f
}

func (f VolunteerForm) with(field Field, v string) Form {
	switch field {
	case FieldShift:
		f.ShiftID, _ = uuid.Parse(v)
	case FieldName:
		f.Name = v
	case FieldEmail:
		f.Email = v
	case FieldPhone:
		f.Phone = v
	case FieldSkills:
		f.Skills = splitList(v)
	case FieldExperience:
		f.Experience = v
	case FieldAvailability:
		f.Availability = v
	case FieldEmergencyContactName:
		f.EmergencyContactName = v
	case FieldEmergencyContactPhone:
		f.EmergencyContactPhone = v
	}
	return f
}

func (f DonationForm) with(field Field, v string) Form {
	switch field {
	case FieldPreset:
		n, _ := strconv.Atoi(v)
		f.Preset, f.Custom = n, ""
	case FieldCustomAmount:
		f.Custom, f.Preset = NormalizeAmountInput(v), 0
	case FieldName:
		f.Name = v
	case FieldEmail:
		f.Email = v
	case FieldMessage:
		f.Message = v
	}
	return f
}

// State is the single modal slot and the form it shows.
type State struct {
	Modal      ModalKind
	Form       Form
	Submitting bool
	// Error is the message left by the last failed submit.
	Error string
}

func (s State) Open() bool { return s.Modal != ModalNone }

// SubmitLabel is the submit button copy for the current form.
func (s State) SubmitLabel() string {
	if s.Submitting {
		return "Processing..."
	}
	if f, ok := s.Form.(DonationForm); ok {
		if a := f.Amount(); a.IsPositive() {
			return "Donate $" + a.String()
		}
		return "Donate"
	}
	return "Submit"
}

type Action interface{ isAction() }

type OpenModal struct{ Kind ModalKind }

type CloseModal struct{}

type KeyPress struct{ Key string }

type Click struct{ Target ClickTarget }

type Edit struct {
	Field Field
	Value string
}

type SubmitStarted struct{}

// SubmitFinished ends a submission; an empty Err closes the modal.
type SubmitFinished struct {
	Kind ModalKind
	Err  string
}

type ClickTarget int

const (
	TargetBackdrop ClickTarget = iota
	TargetPanel
)

func (OpenModal) isAction()      {}
func (CloseModal) isAction()     {}
func (KeyPress) isAction()       {}
func (Click) isAction()          {}
func (Edit) isAction()           {}
func (SubmitStarted) isAction()  {}
func (SubmitFinished) isAction() {}

// Reduce is the modal state machine. Opening always replaces the current
// modal with a fresh form of the new kind.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case OpenModal:
		if a.Kind == ModalNone {
			return State{}
		}
		return State{Modal: a.Kind, Form: newForm(a.Kind)}
	case CloseModal:
		return State{}
	case KeyPress:
		if a.Key == "Escape" {
			return State{}
		}
	case Click:
		if a.Target == TargetBackdrop {
			return State{}
		}
	case Edit:
		if s.Form != nil && !s.Submitting {
			s.Form = s.Form.with(a.Field, a.Value)
		}
	case SubmitStarted:
		if s.Open() {
			s.Submitting = true
			s.Error = ""
		}
	case SubmitFinished:
		if s.Modal != a.Kind || !s.Submitting {
			return s
		}
		if a.Err == "" {
			return State{}
		}
		s.Submitting = false
		s.Error = a.Err
	}
	return s
}

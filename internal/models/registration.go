package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationType string

const (
	RegistrationRSVP   RegistrationType = "rsvp"
	RegistrationTicket RegistrationType = "ticket"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return true
	}
	return false
}

type Registration struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"event_id"`
	TicketID    *uuid.UUID         `gorm:"type:uuid" json:"ticket_id,omitempty"`
	Name        string             `gorm:"not null" json:"name"`
	Email       string             `gorm:"not null" json:"email"`
	Quantity    int                `gorm:"not null;default:1" json:"quantity"`
	Type        RegistrationType   `gorm:"type:varchar(16);not null" json:"type"`
	Status      RegistrationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	ProviderRef string             `gorm:"index" json:"-"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

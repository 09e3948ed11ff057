package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"gorm.io/gorm"
)

type VolunteerShift struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"event_id"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	StartTime         *time.Time     `json:"start_time,omitempty"`
	EndTime           *time.Time     `json:"end_time,omitempty"`
	MaxVolunteers     int            `gorm:"not null" json:"max_volunteers"`
	CurrentVolunteers int            `gorm:"not null;default:0" json:"current_volunteers"`
	Requirements      string         `gorm:"type:text" json:"requirements"`
	SkillsNeeded      pq.StringArray `gorm:"type:text[]" json:"skills_needed"`
	Location          string         `json:"location"`
	IsActive          bool           `gorm:"not null" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (s *VolunteerShift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *VolunteerShift) SpotsLeft() int {
	return fundraising.SpotsLeft(s.MaxVolunteers, s.CurrentVolunteers)
}

type VolunteerSignup struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShiftID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"shift_id"`
	VolunteerName         string         `gorm:"not null" json:"volunteer_name"`
	VolunteerEmail        string         `gorm:"not null" json:"volunteer_email"`
	VolunteerPhone        string         `json:"volunteer_phone"`
	Skills                pq.StringArray `gorm:"type:text[]" json:"skills"`
	Experience            string         `gorm:"type:text" json:"experience"`
	Availability          string         `json:"availability"`
	EmergencyContactName  string         `json:"emergency_contact_name"`
	EmergencyContactPhone string         `json:"emergency_contact_phone"`
	CreatedAt             time.Time      `json:"created_at"`
}

func (s *VolunteerSignup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

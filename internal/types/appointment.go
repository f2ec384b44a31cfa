package types

import (
	"time"

	"github.com/google/uuid"
)

type SocialCareAppointment struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID              uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date                   time.Time `gorm:"not null" json:"date"`
	ProfessionalInChargeID uuid.UUID `gorm:"type:uuid;not null" json:"professional_in_charge_id"`
	Type                   string    `gorm:"not null" json:"type"`
	Summary                string    `gorm:"not null" json:"summary"`
	ActionPlan             string    `gorm:"column:action_plan;not null" json:"action_plan"`
}

func (SocialCareAppointment) TableName() string { return "social_care_appointments" }

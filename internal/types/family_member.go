package types

import (
	"github.com/google/uuid"
)

type FamilyMember struct {
	PatientID          uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	PersonID           uuid.UUID `gorm:"type:uuid;not null" json:"person_id"`
	Relationship       string    `gorm:"not null" json:"relationship"`
	IsPrimaryCaregiver bool      `gorm:"not null" json:"is_primary_caregiver"`
	ResidesWithPatient bool      `gorm:"not null" json:"resides_with_patient"`
}

func (FamilyMember) TableName() string { return "family_members" }

package types

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID                uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date                     time.Time `gorm:"not null" json:"date"`
	RequestingProfessionalID uuid.UUID `gorm:"type:uuid;not null" json:"requesting_professional_id"`
	ReferredPersonID         uuid.UUID `gorm:"type:uuid;not null" json:"referred_person_id"`
	DestinationService       string    `gorm:"not null" json:"destination_service"`
	Reason                   string    `gorm:"not null" json:"reason"`
	Status                   string    `gorm:"not null" json:"status"`
}

func (Referral) TableName() string { return "referrals" }

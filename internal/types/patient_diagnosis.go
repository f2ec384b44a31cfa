package types

import (
	"time"

	"github.com/google/uuid"
)

type PatientDiagnosis struct {
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	ICDCode     string    `gorm:"column:icd_code;not null" json:"icd_code"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `gorm:"not null" json:"description"`
}

func (PatientDiagnosis) TableName() string { return "patient_diagnoses" }

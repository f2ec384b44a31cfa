package types

import (
	"time"

	"github.com/google/uuid"
)

type RightsViolationReport struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ReportDate        time.Time  `gorm:"not null" json:"report_date"`
	IncidentDate      *time.Time `json:"incident_date,omitempty"`
	VictimID          uuid.UUID  `gorm:"type:uuid;not null" json:"victim_id"`
	ViolationType     string     `gorm:"not null" json:"violation_type"`
	DescriptionOfFact string     `gorm:"column:description_of_fact;not null" json:"description_of_fact"`
	ActionsTaken      string     `gorm:"column:actions_taken;not null" json:"actions_taken"`
}

func (RightsViolationReport) TableName() string { return "rights_violation_reports" }

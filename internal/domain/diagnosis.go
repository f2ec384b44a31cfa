package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrDiagnosisDateInFuture     = errors.New("diagnosis date must not be in the future")
	ErrDiagnosisDescriptionEmpty = errors.New("diagnosis description must not be empty")
)

// Diagnosis is a clinical diagnosis attached to the patient record.
type Diagnosis struct {
	Code        ICDCode
	Date        time.Time
	Description string
}

func NewDiagnosis(code ICDCode, date time.Time, description string, now time.Time) (Diagnosis, error) {
	if date.After(now) {
		return Diagnosis{}, ErrDiagnosisDateInFuture
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return Diagnosis{}, ErrDiagnosisDescriptionEmpty
	}
	return Diagnosis{Code: code, Date: date, Description: trimmed}, nil
}

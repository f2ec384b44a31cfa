package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	appointmentSummaryLimit    = 500
	appointmentActionPlanLimit = 2000
)

var (
	ErrAppointmentDateInFuture     = errors.New("appointment date must not be in the future")
	ErrAppointmentNarrativeMissing = errors.New("appointment needs a summary or an action plan")
)

type NarrativeTooLongError struct {
	Field string
	Limit int
}

func (e *NarrativeTooLongError) Error() string {
	return fmt.Sprintf("appointment %s exceeds %d characters", e.Field, e.Limit)
}

type AppointmentType string

const (
	AppointmentHomeVisit         AppointmentType = "HOME_VISIT"
	AppointmentOffice            AppointmentType = "OFFICE_APPOINTMENT"
	AppointmentPhoneCall         AppointmentType = "PHONE_CALL"
	AppointmentMultidisciplinary AppointmentType = "MULTIDISCIPLINARY"
	AppointmentOther             AppointmentType = "OTHER"
)

func ParseAppointmentType(raw string) (AppointmentType, error) {
	return parseEnum("appointment type", raw,
		AppointmentHomeVisit, AppointmentOffice, AppointmentPhoneCall,
		AppointmentMultidisciplinary, AppointmentOther)
}

// SocialCareAppointment is one clinical contact with the patient.
type SocialCareAppointment struct {
	ID                     AppointmentID
	Date                   time.Time
	ProfessionalInChargeID ProfessionalID
	Type                   AppointmentType
	Summary                string
	ActionPlan             string
}

func NewSocialCareAppointment(id AppointmentID, date time.Time, professionalInChargeID ProfessionalID, appointmentType AppointmentType, summary, actionPlan string, now time.Time) (SocialCareAppointment, error) {
	if date.After(now) {
		return SocialCareAppointment{}, ErrAppointmentDateInFuture
	}
	trimmedSummary := strings.TrimSpace(summary)
	trimmedActionPlan := strings.TrimSpace(actionPlan)
	if trimmedSummary == "" && trimmedActionPlan == "" {
		return SocialCareAppointment{}, ErrAppointmentNarrativeMissing
	}
	if len([]rune(trimmedSummary)) > appointmentSummaryLimit {
		return SocialCareAppointment{}, &NarrativeTooLongError{Field: "summary", Limit: appointmentSummaryLimit}
	}
	if len([]rune(trimmedActionPlan)) > appointmentActionPlanLimit {
		return SocialCareAppointment{}, &NarrativeTooLongError{Field: "action plan", Limit: appointmentActionPlanLimit}
	}
	return SocialCareAppointment{
		ID:                     id,
		Date:                   date,
		ProfessionalInChargeID: professionalInChargeID,
		Type:                   appointmentType,
		Summary:                trimmedSummary,
		ActionPlan:             trimmedActionPlan,
	}, nil
}

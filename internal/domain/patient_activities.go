package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BoundaryError struct {
	Kind     string
	TargetID PersonID
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s target %s is outside the aggregate boundary", e.Kind, e.TargetID)
}

// ReferralInput carries the raw fields for a new referral. Validation
// happens inside AddReferral via the Referral constructor.
type ReferralInput struct {
	ID                       ReferralID
	Date                     time.Time
	RequestingProfessionalID ProfessionalID
	ReferredPersonID         PersonID
	DestinationService       DestinationService
	Reason                   string
	Status                   ReferralStatus
}

// AddReferral appends a referral for a person inside the aggregate
// boundary. The boundary is checked before the entity is constructed so
// an out-of-boundary target always fails with a BoundaryError, no
// matter how the other fields look.
func (p *Patient) AddReferral(in ReferralInput, now time.Time) error {
	if !p.belongsToBoundary(in.ReferredPersonID) {
		return &BoundaryError{Kind: "referral", TargetID: in.ReferredPersonID}
	}
	referral, err := NewReferral(in.ID, in.Date, in.RequestingProfessionalID, in.ReferredPersonID, in.DestinationService, in.Reason, in.Status, now)
	if err != nil {
		return err
	}
	p.referrals = append(p.referrals, referral)
	p.recordEvent(ReferralCreatedEvent{
		ID:                 uuid.New(),
		PatientID:          p.id.String(),
		ReferralID:         referral.ID.String(),
		ReferredPersonID:   referral.ReferredPersonID.String(),
		DestinationService: string(referral.DestinationService),
		Status:             string(referral.Status),
		OccurredAt:         now,
	})
	return nil
}

type ViolationReportInput struct {
	ID                ViolationReportID
	ReportDate        time.Time
	IncidentDate      *time.Time
	VictimID          PersonID
	ViolationType     ViolationType
	DescriptionOfFact string
	ActionsTaken      string
}

// AddRightsViolationReport appends a violation report whose victim is
// inside the aggregate boundary.
func (p *Patient) AddRightsViolationReport(in ViolationReportInput, now time.Time) error {
	if !p.belongsToBoundary(in.VictimID) {
		return &BoundaryError{Kind: "violation report", TargetID: in.VictimID}
	}
	report, err := NewRightsViolationReport(in.ID, in.ReportDate, in.IncidentDate, in.VictimID, in.ViolationType, in.DescriptionOfFact, in.ActionsTaken, now)
	if err != nil {
		return err
	}
	p.violationReports = append(p.violationReports, report)
	p.recordEvent(RightsViolationReportedEvent{
		ID:            uuid.New(),
		PatientID:     p.id.String(),
		ReportID:      report.ID.String(),
		VictimID:      report.VictimID.String(),
		ViolationType: string(report.ViolationType),
		OccurredAt:    now,
	})
	return nil
}

type AppointmentInput struct {
	ID                     AppointmentID
	Date                   time.Time
	ProfessionalInChargeID ProfessionalID
	Type                   AppointmentType
	Summary                string
	ActionPlan             string
}

// AddAppointment appends a clinical appointment for the patient.
func (p *Patient) AddAppointment(in AppointmentInput, now time.Time) error {
	appointment, err := NewSocialCareAppointment(in.ID, in.Date, in.ProfessionalInChargeID, in.Type, in.Summary, in.ActionPlan, now)
	if err != nil {
		return err
	}
	p.appointments = append(p.appointments, appointment)
	p.recordEvent(SocialCareAppointmentRegisteredEvent{
		ID:                     uuid.New(),
		PatientID:              p.id.String(),
		AppointmentID:          appointment.ID.String(),
		ProfessionalInChargeID: appointment.ProfessionalInChargeID.String(),
		Type:                   string(appointment.Type),
		OccurredAt:             now,
	})
	return nil
}

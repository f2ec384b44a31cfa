package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event recorded by the Patient aggregate. Events are
// created inside the mutation that caused them and never stand alone.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	EventOccurredAt() time.Time
}

// Wire names for every event kind. These are the keys the decode
// registry is bootstrapped with and the event_type column of outbox rows.
const (
	EventTypePatientCreated           = "PatientCreated"
	EventTypeFamilyMemberAdded        = "FamilyMemberAdded"
	EventTypeFamilyMemberRemoved      = "FamilyMemberRemoved"
	EventTypePrimaryCaregiverAssigned = "PrimaryCaregiverAssigned"
	EventTypeReferralCreated          = "ReferralCreated"
	EventTypeRightsViolationReported  = "RightsViolationReported"
	EventTypeAppointmentRegistered    = "SocialCareAppointmentRegistered"
)

type PatientCreatedEvent struct {
	ID         uuid.UUID `json:"id"`
	PatientID  string    `json:"patientId"`
	PersonID   string    `json:"personId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e PatientCreatedEvent) EventID() uuid.UUID         { return e.ID }
func (e PatientCreatedEvent) EventType() string          { return EventTypePatientCreated }
func (e PatientCreatedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type FamilyMemberAddedEvent struct {
	ID           uuid.UUID `json:"id"`
	MemberID     string    `json:"memberId"`
	PatientID    string    `json:"patientId"`
	Relationship string    `json:"relationship"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func (e FamilyMemberAddedEvent) EventID() uuid.UUID         { return e.ID }
func (e FamilyMemberAddedEvent) EventType() string          { return EventTypeFamilyMemberAdded }
func (e FamilyMemberAddedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type FamilyMemberRemovedEvent struct {
	ID         uuid.UUID `json:"id"`
	MemberID   string    `json:"memberId"`
	PatientID  string    `json:"patientId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e FamilyMemberRemovedEvent) EventID() uuid.UUID         { return e.ID }
func (e FamilyMemberRemovedEvent) EventType() string          { return EventTypeFamilyMemberRemoved }
func (e FamilyMemberRemovedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type PrimaryCaregiverAssignedEvent struct {
	ID          uuid.UUID `json:"id"`
	PatientID   string    `json:"patientId"`
	CaregiverID string    `json:"caregiverId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (e PrimaryCaregiverAssignedEvent) EventID() uuid.UUID { return e.ID }
func (e PrimaryCaregiverAssignedEvent) EventType() string {
	return EventTypePrimaryCaregiverAssigned
}
func (e PrimaryCaregiverAssignedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type ReferralCreatedEvent struct {
	ID                 uuid.UUID `json:"id"`
	PatientID          string    `json:"patientId"`
	ReferralID         string    `json:"referralId"`
	ReferredPersonID   string    `json:"referredPersonId"`
	DestinationService string    `json:"destinationService"`
	Status             string    `json:"status"`
	OccurredAt         time.Time `json:"occurredAt"`
}

func (e ReferralCreatedEvent) EventID() uuid.UUID         { return e.ID }
func (e ReferralCreatedEvent) EventType() string          { return EventTypeReferralCreated }
func (e ReferralCreatedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type RightsViolationReportedEvent struct {
	ID            uuid.UUID `json:"id"`
	PatientID     string    `json:"patientId"`
	ReportID      string    `json:"reportId"`
	VictimID      string    `json:"victimId"`
	ViolationType string    `json:"violationType"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (e RightsViolationReportedEvent) EventID() uuid.UUID { return e.ID }
func (e RightsViolationReportedEvent) EventType() string {
	return EventTypeRightsViolationReported
}
func (e RightsViolationReportedEvent) EventOccurredAt() time.Time { return e.OccurredAt }

type SocialCareAppointmentRegisteredEvent struct {
	ID                     uuid.UUID `json:"id"`
	PatientID              string    `json:"patientId"`
	AppointmentID          string    `json:"appointmentId"`
	ProfessionalInChargeID string    `json:"professionalInChargeId"`
	Type                   string    `json:"type"`
	OccurredAt             time.Time `json:"occurredAt"`
}

func (e SocialCareAppointmentRegisteredEvent) EventID() uuid.UUID { return e.ID }
func (e SocialCareAppointmentRegisteredEvent) EventType() string {
	return EventTypeAppointmentRegistered
}
func (e SocialCareAppointmentRegisteredEvent) EventOccurredAt() time.Time { return e.OccurredAt }

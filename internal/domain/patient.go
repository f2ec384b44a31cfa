package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInitialDiagnosesEmpty = errors.New("a patient needs at least one diagnosis at creation")

// Patient is the aggregate root for one citizen's social-care record.
// Every mutation validates first, then changes exactly one collection
// or field, records exactly one event and bumps the version by one. A
// failed validation leaves the aggregate untouched.
//
// pendingEvents is transient: the repository drains it after a
// successful save. It is never persisted as aggregate state.
type Patient struct {
	id       PatientID
	personID PersonID
	version  int

	diagnoses        []Diagnosis
	familyMembers    []FamilyMember
	appointments     []SocialCareAppointment
	referrals        []Referral
	violationReports []RightsViolationReport

	housingCondition        *HousingCondition
	socioEconomicSituation  *SocioEconomicSituation
	communitySupportNetwork *CommunitySupportNetwork
	socialHealthSummary     *SocialHealthSummary

	pendingEvents []Event
}

// NewPatient creates a fresh aggregate at version 1 with a single
// PatientCreated event pending.
func NewPatient(id PatientID, personID PersonID, diagnoses []Diagnosis, now time.Time) (*Patient, error) {
	if len(diagnoses) == 0 {
		return nil, ErrInitialDiagnosesEmpty
	}
	p := &Patient{
		id:        id,
		personID:  personID,
		diagnoses: append([]Diagnosis(nil), diagnoses...),
	}
	p.recordEvent(PatientCreatedEvent{
		ID:         uuid.New(),
		PatientID:  id.String(),
		PersonID:   personID.String(),
		OccurredAt: now,
	})
	return p, nil
}

// ReconstitutePatientInput is the full snapshot a stored aggregate is
// rebuilt from.
type ReconstitutePatientInput struct {
	ID               PatientID
	PersonID         PersonID
	Version          int
	Diagnoses        []Diagnosis
	FamilyMembers    []FamilyMember
	Appointments     []SocialCareAppointment
	Referrals        []Referral
	ViolationReports []RightsViolationReport

	HousingCondition        *HousingCondition
	SocioEconomicSituation  *SocioEconomicSituation
	CommunitySupportNetwork *CommunitySupportNetwork
	SocialHealthSummary     *SocialHealthSummary
}

// ReconstitutePatient rebuilds an aggregate from a persisted snapshot
// with an empty pending-event list. This is a current-state load, not
// event-sourcing replay: the stored event log is a side channel for
// downstream consumers and is never folded back into state.
func ReconstitutePatient(in ReconstitutePatientInput) *Patient {
	return &Patient{
		id:                      in.ID,
		personID:                in.PersonID,
		version:                 in.Version,
		diagnoses:               in.Diagnoses,
		familyMembers:           in.FamilyMembers,
		appointments:            in.Appointments,
		referrals:               in.Referrals,
		violationReports:        in.ViolationReports,
		housingCondition:        in.HousingCondition,
		socioEconomicSituation:  in.SocioEconomicSituation,
		communitySupportNetwork: in.CommunitySupportNetwork,
		socialHealthSummary:     in.SocialHealthSummary,
	}
}

func (p *Patient) ID() PatientID { return p.id }

func (p *Patient) PersonID() PersonID { return p.personID }

func (p *Patient) Version() int { return p.version }

func (p *Patient) Diagnoses() []Diagnosis {
	return append([]Diagnosis(nil), p.diagnoses...)
}

func (p *Patient) FamilyMembers() []FamilyMember {
	return append([]FamilyMember(nil), p.familyMembers...)
}

func (p *Patient) Appointments() []SocialCareAppointment {
	return append([]SocialCareAppointment(nil), p.appointments...)
}

func (p *Patient) Referrals() []Referral {
	return append([]Referral(nil), p.referrals...)
}

func (p *Patient) ViolationReports() []RightsViolationReport {
	return append([]RightsViolationReport(nil), p.violationReports...)
}

func (p *Patient) HousingCondition() *HousingCondition { return p.housingCondition }
func (p *Patient) SocioEconomicSituation() *SocioEconomicSituation {
	return p.socioEconomicSituation
}
func (p *Patient) CommunitySupportNetwork() *CommunitySupportNetwork {
	return p.communitySupportNetwork
}
func (p *Patient) SocialHealthSummary() *SocialHealthSummary { return p.socialHealthSummary }

// PendingEvents returns the events recorded since the last save.
func (p *Patient) PendingEvents() []Event {
	return append([]Event(nil), p.pendingEvents...)
}

// ClearEvents drops the pending events. Called by the persistence
// boundary after a successful save; idempotent, does not touch version.
func (p *Patient) ClearEvents() {
	p.pendingEvents = nil
}

func (p *Patient) recordEvent(e Event) {
	p.pendingEvents = append(p.pendingEvents, e)
	p.version++
}

// belongsToBoundary reports whether a person is inside the aggregate
// boundary: the patient themselves or a current family member.
func (p *Patient) belongsToBoundary(target PersonID) bool {
	if p.personID == target {
		return true
	}
	for _, m := range p.familyMembers {
		if m.PersonID == target {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"testing"
	"time"
)

func mustDiagnosis(t *testing.T, now time.Time) Diagnosis {
	t.Helper()
	code, err := NewICDCode("F84.0")
	if err != nil {
		t.Fatalf("failed to build icd code: %v", err)
	}
	d, err := NewDiagnosis(code, now.Add(-24*time.Hour), "autism spectrum disorder", now)
	if err != nil {
		t.Fatalf("failed to build diagnosis: %v", err)
	}
	return d
}

func newTestPatient(t *testing.T, now time.Time) *Patient {
	t.Helper()
	p, err := NewPatient(GeneratePatientID(), GeneratePersonID(), []Diagnosis{mustDiagnosis(t, now)}, now)
	if err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}
	return p
}

func TestNewPatient_StartsAtVersionOneWithCreatedEvent(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	if p.Version() != 1 {
		t.Fatalf("expected version=1 got %d", p.Version())
	}
	events := p.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 pending event got %d", len(events))
	}
	if events[0].EventType() != EventTypePatientCreated {
		t.Fatalf("expected %s got %s", EventTypePatientCreated, events[0].EventType())
	}
}

func TestNewPatient_RejectsEmptyDiagnoses(t *testing.T) {
	_, err := NewPatient(GeneratePatientID(), GeneratePersonID(), nil, time.Now())
	if !errors.Is(err, ErrInitialDiagnosesEmpty) {
		t.Fatalf("expected ErrInitialDiagnosesEmpty got %v", err)
	}
}

func TestPatient_FamilyLifecycleScenario(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	m1ID := GeneratePersonID()
	member, err := NewFamilyMember(m1ID, "mother", false, true)
	if err != nil {
		t.Fatalf("failed to build family member: %v", err)
	}
	if err := p.AddFamilyMember(member, now); err != nil {
		t.Fatalf("add family member failed: %v", err)
	}
	if p.Version() != 2 {
		t.Fatalf("expected version=2 got %d", p.Version())
	}
	if got := len(p.FamilyMembers()); got != 1 {
		t.Fatalf("expected 1 family member got %d", got)
	}

	if err := p.AssignPrimaryCaregiver(m1ID, now); err != nil {
		t.Fatalf("assign caregiver failed: %v", err)
	}
	if p.Version() != 3 {
		t.Fatalf("expected version=3 got %d", p.Version())
	}
	if !p.FamilyMembers()[0].IsPrimaryCaregiver {
		t.Fatalf("expected member to be primary caregiver")
	}

	if err := p.RemoveFamilyMember(m1ID, now); err != nil {
		t.Fatalf("remove family member failed: %v", err)
	}
	if p.Version() != 4 {
		t.Fatalf("expected version=4 got %d", p.Version())
	}
	if got := len(p.FamilyMembers()); got != 0 {
		t.Fatalf("expected no family members got %d", got)
	}

	events := p.PendingEvents()
	if len(events) != 4 {
		t.Fatalf("expected 4 pending events got %d", len(events))
	}
	wantTypes := []string{
		EventTypePatientCreated,
		EventTypeFamilyMemberAdded,
		EventTypePrimaryCaregiverAssigned,
		EventTypeFamilyMemberRemoved,
	}
	for i, want := range wantTypes {
		if events[i].EventType() != want {
			t.Fatalf("event %d: expected %s got %s", i, want, events[i].EventType())
		}
	}

	// The removed member is no longer a valid referral target.
	err = p.AddReferral(ReferralInput{
		ID:                       GenerateReferralID(),
		Date:                     now,
		RequestingProfessionalID: ProfessionalID(GeneratePersonID().String()),
		ReferredPersonID:         m1ID,
		DestinationService:       DestinationCRAS,
		Reason:                   "follow-up",
	}, now)
	var boundaryErr *BoundaryError
	if !errors.As(err, &boundaryErr) {
		t.Fatalf("expected BoundaryError got %v", err)
	}
	if p.Version() != 4 {
		t.Fatalf("failed mutation must not bump version, got %d", p.Version())
	}
}

func TestPatient_AddFamilyMemberRejectsDuplicatePerson(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	id := GeneratePersonID()
	m1, _ := NewFamilyMember(id, "brother", false, false)
	m2, _ := NewFamilyMember(id, "cousin", false, false)
	if err := p.AddFamilyMember(m1, now); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := p.AddFamilyMember(m2, now)
	var exists *FamilyMemberExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected FamilyMemberExistsError got %v", err)
	}
	if p.Version() != 2 {
		t.Fatalf("duplicate add must not bump version, got %d", p.Version())
	}
}

func TestPatient_AssignPrimaryCaregiverIsExclusive(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	first := GeneratePersonID()
	second := GeneratePersonID()
	m1, _ := NewFamilyMember(first, "mother", true, true)
	m2, _ := NewFamilyMember(second, "father", false, true)
	if err := p.AddFamilyMember(m1, now); err != nil {
		t.Fatalf("add m1 failed: %v", err)
	}
	if err := p.AddFamilyMember(m2, now); err != nil {
		t.Fatalf("add m2 failed: %v", err)
	}

	if err := p.AssignPrimaryCaregiver(second, now); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	for _, m := range p.FamilyMembers() {
		want := m.PersonID == second
		if m.IsPrimaryCaregiver != want {
			t.Fatalf("member %s: expected primary=%v got %v", m.PersonID, want, m.IsPrimaryCaregiver)
		}
	}
}

func TestPatient_BoundaryAllowsSelfAndMembers(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	memberID := GeneratePersonID()
	member, _ := NewFamilyMember(memberID, "sister", false, true)
	if err := p.AddFamilyMember(member, now); err != nil {
		t.Fatalf("add member failed: %v", err)
	}

	for _, target := range []PersonID{p.PersonID(), memberID} {
		err := p.AddReferral(ReferralInput{
			ID:                       GenerateReferralID(),
			Date:                     now,
			RequestingProfessionalID: ProfessionalID(GeneratePersonID().String()),
			ReferredPersonID:         target,
			DestinationService:       DestinationHealthCare,
			Reason:                   "evaluation",
		}, now)
		if err != nil {
			t.Fatalf("referral for %s should be inside boundary: %v", target, err)
		}
	}

	err := p.AddRightsViolationReport(ViolationReportInput{
		ID:                GenerateViolationReportID(),
		ReportDate:        now,
		VictimID:          GeneratePersonID(),
		ViolationType:     ViolationNeglect,
		DescriptionOfFact: "reported by neighbor",
	}, now)
	var boundaryErr *BoundaryError
	if !errors.As(err, &boundaryErr) {
		t.Fatalf("expected BoundaryError for outsider got %v", err)
	}
}

func TestPatient_ClearEventsIsIdempotent(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)

	versionBefore := p.Version()
	p.ClearEvents()
	p.ClearEvents()

	if len(p.PendingEvents()) != 0 {
		t.Fatalf("expected no pending events")
	}
	if p.Version() != versionBefore {
		t.Fatalf("clearEvents must not change version")
	}
}

func TestReconstitutePatient_HasNoPendingEvents(t *testing.T) {
	now := time.Now()
	source := newTestPatient(t, now)

	rebuilt := ReconstitutePatient(ReconstitutePatientInput{
		ID:        source.ID(),
		PersonID:  source.PersonID(),
		Version:   source.Version(),
		Diagnoses: source.Diagnoses(),
	})
	if len(rebuilt.PendingEvents()) != 0 {
		t.Fatalf("reconstituted aggregate must start with no pending events")
	}
	if rebuilt.Version() != source.Version() {
		t.Fatalf("expected version %d got %d", source.Version(), rebuilt.Version())
	}
}

func TestPatient_AppointmentBumpsVersionAndRecordsEvent(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)
	p.ClearEvents()

	err := p.AddAppointment(AppointmentInput{
		ID:                     GenerateAppointmentID(),
		Date:                   now.Add(-time.Hour),
		ProfessionalInChargeID: ProfessionalID(GeneratePersonID().String()),
		Type:                   AppointmentHomeVisit,
		Summary:                "initial home visit",
	}, now)
	if err != nil {
		t.Fatalf("add appointment failed: %v", err)
	}
	if p.Version() != 2 {
		t.Fatalf("expected version=2 got %d", p.Version())
	}
	events := p.PendingEvents()
	if len(events) != 1 || events[0].EventType() != EventTypeAppointmentRegistered {
		t.Fatalf("expected one %s event, got %v", EventTypeAppointmentRegistered, events)
	}
}

func TestPatient_AssessmentUpdateBumpsVersionWithoutEvent(t *testing.T) {
	now := time.Now()
	p := newTestPatient(t, now)
	p.ClearEvents()

	summary, err := NewSocialHealthSummary(true, false, []string{"bathing", "feeding"}, false)
	if err != nil {
		t.Fatalf("failed to build summary: %v", err)
	}
	p.UpdateSocialHealthSummary(&summary)

	if p.Version() != 2 {
		t.Fatalf("expected version=2 got %d", p.Version())
	}
	if len(p.PendingEvents()) != 0 {
		t.Fatalf("assessment updates must not record events")
	}
	if p.SocialHealthSummary() == nil {
		t.Fatalf("expected summary to be set")
	}
}

package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReferral_TransitionsOnlyFromPending(t *testing.T) {
	now := time.Now()
	referral, err := NewReferral(GenerateReferralID(), now.Add(-time.Hour), ProfessionalID(GeneratePersonID().String()), GeneratePersonID(), DestinationCREAS, "income support", "", now)
	if err != nil {
		t.Fatalf("failed to create referral: %v", err)
	}
	if referral.Status != ReferralStatusPending {
		t.Fatalf("empty status must default to pending, got %s", referral.Status)
	}

	completed, err := referral.Complete()
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != ReferralStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	_, err = completed.Cancel()
	var transitionErr *ReferralTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected ReferralTransitionError got %v", err)
	}
}

func TestNewReferral_RejectsFutureDateAndEmptyReason(t *testing.T) {
	now := time.Now()
	professional := ProfessionalID(GeneratePersonID().String())

	_, err := NewReferral(GenerateReferralID(), now.Add(time.Hour), professional, GeneratePersonID(), DestinationCRAS, "reason", "", now)
	if !errors.Is(err, ErrReferralDateInFuture) {
		t.Fatalf("expected ErrReferralDateInFuture got %v", err)
	}

	_, err = NewReferral(GenerateReferralID(), now, professional, GeneratePersonID(), DestinationCRAS, "   ", "", now)
	if !errors.Is(err, ErrReferralReasonMissing) {
		t.Fatalf("expected ErrReferralReasonMissing got %v", err)
	}
}

func TestNewSocialCareAppointment_NarrativeRules(t *testing.T) {
	now := time.Now()
	professional := ProfessionalID(GeneratePersonID().String())

	_, err := NewSocialCareAppointment(GenerateAppointmentID(), now, professional, AppointmentHomeVisit, "  ", "  ", now)
	if !errors.Is(err, ErrAppointmentNarrativeMissing) {
		t.Fatalf("expected ErrAppointmentNarrativeMissing got %v", err)
	}

	_, err = NewSocialCareAppointment(GenerateAppointmentID(), now, professional, AppointmentHomeVisit, strings.Repeat("x", 501), "", now)
	var tooLong *NarrativeTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected NarrativeTooLongError got %v", err)
	}

	appointment, err := NewSocialCareAppointment(GenerateAppointmentID(), now, professional, AppointmentPhoneCall, "", "call the family weekly", now)
	if err != nil {
		t.Fatalf("action plan alone should satisfy the narrative rule: %v", err)
	}
	if appointment.Type != AppointmentPhoneCall {
		t.Fatalf("unexpected type %s", appointment.Type)
	}
}

func TestNewRightsViolationReport_DateOrdering(t *testing.T) {
	now := time.Now()
	victim := GeneratePersonID()

	future := now.Add(time.Hour)
	_, err := NewRightsViolationReport(GenerateViolationReportID(), future, nil, victim, ViolationNeglect, "description", "", now)
	if !errors.Is(err, ErrReportDateInFuture) {
		t.Fatalf("expected ErrReportDateInFuture got %v", err)
	}

	reportDate := now.Add(-time.Hour)
	incident := now
	_, err = NewRightsViolationReport(GenerateViolationReportID(), reportDate, &incident, victim, ViolationNeglect, "description", "", now)
	if !errors.Is(err, ErrIncidentAfterReport) {
		t.Fatalf("expected ErrIncidentAfterReport got %v", err)
	}
}

func TestNewHousingCondition_RoomConstraints(t *testing.T) {
	in := HousingConditionInput{
		Tenure:             HousingOwned,
		WallMaterial:       WallMasonry,
		NumberOfRooms:      2,
		NumberOfBathrooms:  3,
		WaterSupply:        WaterPublicNetwork,
		ElectricityAccess:  ElectricityMetered,
		SewageDisposal:     SewagePublicSewer,
		WasteCollection:    WasteDirectCollection,
		AccessibilityLevel: AccessibilityFull,
	}
	if _, err := NewHousingCondition(in); !errors.Is(err, ErrBathroomsExceedRooms) {
		t.Fatalf("expected ErrBathroomsExceedRooms got %v", err)
	}

	in.NumberOfBathrooms = 1
	if _, err := NewHousingCondition(in); err != nil {
		t.Fatalf("valid housing condition rejected: %v", err)
	}
}

func TestNewSocioEconomicSituation_BenefitConsistency(t *testing.T) {
	benefit, err := NewSocialBenefit("Bolsa  Familia", 600, FamilyMemberID(GeneratePersonID().String()))
	if err != nil {
		t.Fatalf("failed to build benefit: %v", err)
	}
	if benefit.BenefitName != "Bolsa Familia" {
		t.Fatalf("expected collapsed whitespace, got %q", benefit.BenefitName)
	}
	withBenefits, err := NewSocialBenefitsCollection([]SocialBenefit{benefit})
	if err != nil {
		t.Fatalf("failed to build collection: %v", err)
	}

	if _, err := NewSocioEconomicSituation(2000, 500, false, withBenefits, "salary", false); !errors.Is(err, ErrInconsistentBenefitFlag) {
		t.Fatalf("expected ErrInconsistentBenefitFlag got %v", err)
	}
	if _, err := NewSocioEconomicSituation(2000, 500, true, SocialBenefitsCollection{}, "salary", false); !errors.Is(err, ErrMissingSocialBenefits) {
		t.Fatalf("expected ErrMissingSocialBenefits got %v", err)
	}
	if _, err := NewSocioEconomicSituation(1000, 2000, true, withBenefits, "salary", false); err == nil {
		t.Fatalf("expected per-capita above total to fail")
	}
	if _, err := NewSocioEconomicSituation(2000, 500, true, withBenefits, "salary", true); err != nil {
		t.Fatalf("valid situation rejected: %v", err)
	}
}

func TestNewSocialBenefitsCollection_RejectsDuplicateNames(t *testing.T) {
	beneficiary := FamilyMemberID(GeneratePersonID().String())
	a, _ := NewSocialBenefit("BPC", 100, beneficiary)
	b, _ := NewSocialBenefit("BPC", 250, beneficiary)
	_, err := NewSocialBenefitsCollection([]SocialBenefit{a, b})
	var dup *DuplicateBenefitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateBenefitError got %v", err)
	}
}

func TestNewCommunitySupportNetwork_ConflictTextRules(t *testing.T) {
	if _, err := NewCommunitySupportNetwork(true, false, "   ", false, false, true, false); !errors.Is(err, ErrFamilyConflictsWhitespace) {
		t.Fatalf("expected ErrFamilyConflictsWhitespace got %v", err)
	}

	long := strings.Repeat("a", 301)
	_, err := NewCommunitySupportNetwork(true, false, long, false, false, true, false)
	var tooLong *FamilyConflictsTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected FamilyConflictsTooLongError got %v", err)
	}

	network, err := NewCommunitySupportNetwork(true, false, "", false, false, true, false)
	if err != nil {
		t.Fatalf("empty conflicts should be fine: %v", err)
	}
	if network.FamilyConflicts != "" {
		t.Fatalf("unexpected conflicts text %q", network.FamilyConflicts)
	}
}

func TestNewSocialHealthSummary_DedupesPreservingOrder(t *testing.T) {
	summary, err := NewSocialHealthSummary(true, true, []string{" bathing ", "feeding", "bathing"}, false)
	if err != nil {
		t.Fatalf("failed to build summary: %v", err)
	}
	want := []string{"bathing", "feeding"}
	if len(summary.FunctionalDependencies) != len(want) {
		t.Fatalf("expected %v got %v", want, summary.FunctionalDependencies)
	}
	for i := range want {
		if summary.FunctionalDependencies[i] != want[i] {
			t.Fatalf("expected %v got %v", want, summary.FunctionalDependencies)
		}
	}

	if _, err := NewSocialHealthSummary(false, false, []string{"  "}, false); !errors.Is(err, ErrFunctionalDependencyEmpty) {
		t.Fatalf("expected ErrFunctionalDependencyEmpty got %v", err)
	}
}

func TestParseEnums_RejectUnknownValues(t *testing.T) {
	if _, err := ParseDestinationService("SOMEWHERE"); err == nil {
		t.Fatalf("expected unknown destination to fail")
	}
	if _, err := ParseReferralStatus("PENDING"); err != nil {
		t.Fatalf("known status rejected: %v", err)
	}
	var enumErr *InvalidEnumError
	if _, err := ParseViolationType("bogus"); !errors.As(err, &enumErr) {
		t.Fatalf("expected InvalidEnumError got %v", err)
	}
}

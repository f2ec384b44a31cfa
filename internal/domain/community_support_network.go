package domain

import (
	"errors"
	"fmt"
	"strings"
)

const maxFamilyConflictsLength = 300

var ErrFamilyConflictsWhitespace = errors.New("family conflicts text must not be only whitespace")

type FamilyConflictsTooLongError struct {
	Limit int
}

func (e *FamilyConflictsTooLongError) Error() string {
	return fmt.Sprintf("family conflicts text exceeds %d characters", e.Limit)
}

// CommunitySupportNetwork describes the support the patient can draw on
// outside the household.
type CommunitySupportNetwork struct {
	HasRelativeSupport          bool   `json:"hasRelativeSupport"`
	HasNeighborSupport          bool   `json:"hasNeighborSupport"`
	FamilyConflicts             string `json:"familyConflicts"`
	PatientParticipatesInGroups bool   `json:"patientParticipatesInGroups"`
	FamilyParticipatesInGroups  bool   `json:"familyParticipatesInGroups"`
	PatientHasAccessToLeisure   bool   `json:"patientHasAccessToLeisure"`
	FacesDiscrimination         bool   `json:"facesDiscrimination"`
}

func NewCommunitySupportNetwork(hasRelativeSupport, hasNeighborSupport bool, familyConflicts string, patientParticipatesInGroups, familyParticipatesInGroups, patientHasAccessToLeisure, facesDiscrimination bool) (CommunitySupportNetwork, error) {
	trimmed := strings.TrimSpace(familyConflicts)
	if familyConflicts != "" && trimmed == "" {
		return CommunitySupportNetwork{}, ErrFamilyConflictsWhitespace
	}
	if len([]rune(trimmed)) > maxFamilyConflictsLength {
		return CommunitySupportNetwork{}, &FamilyConflictsTooLongError{Limit: maxFamilyConflictsLength}
	}
	return CommunitySupportNetwork{
		HasRelativeSupport:          hasRelativeSupport,
		HasNeighborSupport:          hasNeighborSupport,
		FamilyConflicts:             trimmed,
		PatientParticipatesInGroups: patientParticipatesInGroups,
		FamilyParticipatesInGroups:  familyParticipatesInGroups,
		PatientHasAccessToLeisure:   patientHasAccessToLeisure,
		FacesDiscrimination:         facesDiscrimination,
	}, nil
}

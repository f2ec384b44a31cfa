package domain

import (
	"errors"
	"strings"
)

var ErrRelationshipEmpty = errors.New("family member relationship must not be empty")

// FamilyMember is part of the patient's aggregate boundary. Identity is
// the shared PersonID, so one person appears at most once per family.
type FamilyMember struct {
	PersonID           PersonID
	Relationship       string
	IsPrimaryCaregiver bool
	ResidesWithPatient bool
}

func NewFamilyMember(personID PersonID, relationship string, isPrimaryCaregiver, residesWithPatient bool) (FamilyMember, error) {
	trimmed := strings.TrimSpace(relationship)
	if trimmed == "" {
		return FamilyMember{}, ErrRelationshipEmpty
	}
	return FamilyMember{
		PersonID:           personID,
		Relationship:       trimmed,
		IsPrimaryCaregiver: isPrimaryCaregiver,
		ResidesWithPatient: residesWithPatient,
	}, nil
}

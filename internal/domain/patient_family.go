package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FamilyMemberExistsError struct {
	PersonID PersonID
}

func (e *FamilyMemberExistsError) Error() string {
	return fmt.Sprintf("family member %s is already registered", e.PersonID)
}

type FamilyMemberNotFoundError struct {
	PersonID PersonID
}

func (e *FamilyMemberNotFoundError) Error() string {
	return fmt.Sprintf("family member %s not found", e.PersonID)
}

// AddFamilyMember registers a new member of the patient's family.
// Fails when someone with the same PersonID is already registered.
func (p *Patient) AddFamilyMember(member FamilyMember, now time.Time) error {
	for _, m := range p.familyMembers {
		if m.PersonID == member.PersonID {
			return &FamilyMemberExistsError{PersonID: member.PersonID}
		}
	}
	p.familyMembers = append(p.familyMembers, member)
	p.recordEvent(FamilyMemberAddedEvent{
		ID:           uuid.New(),
		MemberID:     member.PersonID.String(),
		PatientID:    p.id.String(),
		Relationship: member.Relationship,
		OccurredAt:   now,
	})
	return nil
}

// RemoveFamilyMember removes the member identified by personID. The
// person immediately stops being a valid referral or violation target.
func (p *Patient) RemoveFamilyMember(personID PersonID, now time.Time) error {
	idx := -1
	for i, m := range p.familyMembers {
		if m.PersonID == personID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &FamilyMemberNotFoundError{PersonID: personID}
	}
	removed := p.familyMembers[idx]
	p.familyMembers = append(p.familyMembers[:idx], p.familyMembers[idx+1:]...)
	p.recordEvent(FamilyMemberRemovedEvent{
		ID:         uuid.New(),
		MemberID:   removed.PersonID.String(),
		PatientID:  p.id.String(),
		OccurredAt: now,
	})
	return nil
}

// AssignPrimaryCaregiver makes personID the single primary caregiver,
// revoking the flag on every other member in the same operation. One
// event is recorded regardless of family size.
func (p *Patient) AssignPrimaryCaregiver(personID PersonID, now time.Time) error {
	found := false
	for _, m := range p.familyMembers {
		if m.PersonID == personID {
			found = true
			break
		}
	}
	if !found {
		return &FamilyMemberNotFoundError{PersonID: personID}
	}
	for i := range p.familyMembers {
		p.familyMembers[i].IsPrimaryCaregiver = p.familyMembers[i].PersonID == personID
	}
	p.recordEvent(PrimaryCaregiverAssignedEvent{
		ID:          uuid.New(),
		PatientID:   p.id.String(),
		CaregiverID: personID.String(),
		OccurredAt:  now,
	})
	return nil
}

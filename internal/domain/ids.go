package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identifier kinds are distinct string types so a ReferralID can never
// be handed to something expecting a PersonID. All of them are
// lowercase UUID strings; construct them through the New*/Generate*
// functions, never by casting.

type InvalidIDError struct {
	Kind  string
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not a UUID", e.Kind, e.Value)
}

func parseID(kind, raw string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(raw))
	if _, err := uuid.Parse(sanitized); err != nil {
		return "", &InvalidIDError{Kind: kind, Value: sanitized}
	}
	return sanitized, nil
}

type PersonID string

func NewPersonID(raw string) (PersonID, error) {
	v, err := parseID("PersonID", raw)
	return PersonID(v), err
}

func GeneratePersonID() PersonID { return PersonID(uuid.NewString()) }

func (id PersonID) String() string { return string(id) }

type PatientID string

func NewPatientID(raw string) (PatientID, error) {
	v, err := parseID("PatientID", raw)
	return PatientID(v), err
}

func GeneratePatientID() PatientID { return PatientID(uuid.NewString()) }

func (id PatientID) String() string { return string(id) }

type ProfessionalID string

func NewProfessionalID(raw string) (ProfessionalID, error) {
	v, err := parseID("ProfessionalID", raw)
	return ProfessionalID(v), err
}

func (id ProfessionalID) String() string { return string(id) }

type ReferralID string

func NewReferralID(raw string) (ReferralID, error) {
	v, err := parseID("ReferralID", raw)
	return ReferralID(v), err
}

func GenerateReferralID() ReferralID { return ReferralID(uuid.NewString()) }

func (id ReferralID) String() string { return string(id) }

type AppointmentID string

func NewAppointmentID(raw string) (AppointmentID, error) {
	v, err := parseID("AppointmentID", raw)
	return AppointmentID(v), err
}

func GenerateAppointmentID() AppointmentID { return AppointmentID(uuid.NewString()) }

func (id AppointmentID) String() string { return string(id) }

type ViolationReportID string

func NewViolationReportID(raw string) (ViolationReportID, error) {
	v, err := parseID("ViolationReportID", raw)
	return ViolationReportID(v), err
}

func GenerateViolationReportID() ViolationReportID { return ViolationReportID(uuid.NewString()) }

func (id ViolationReportID) String() string { return string(id) }

type FamilyMemberID string

func NewFamilyMemberID(raw string) (FamilyMemberID, error) {
	v, err := parseID("FamilyMemberID", raw)
	return FamilyMemberID(v), err
}

func (id FamilyMemberID) String() string { return string(id) }

package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrReportDateInFuture        = errors.New("violation report date must not be in the future")
	ErrIncidentAfterReport       = errors.New("incident date must not be after the report date")
	ErrViolationDescriptionEmpty = errors.New("violation description must not be empty")
)

type ViolationType string

const (
	ViolationNeglect               ViolationType = "NEGLECT"
	ViolationPsychological         ViolationType = "PSYCHOLOGICAL_VIOLENCE"
	ViolationPhysical              ViolationType = "PHYSICAL_VIOLENCE"
	ViolationSexualAbuse           ViolationType = "SEXUAL_ABUSE"
	ViolationSexualExploitation    ViolationType = "SEXUAL_EXPLOITATION"
	ViolationChildLabor            ViolationType = "CHILD_LABOR"
	ViolationFinancialExploitation ViolationType = "FINANCIAL_EXPLOITATION"
	ViolationDiscrimination        ViolationType = "DISCRIMINATION"
	ViolationOther                 ViolationType = "OTHER"
)

func ParseViolationType(raw string) (ViolationType, error) {
	return parseEnum("violation type", raw,
		ViolationNeglect, ViolationPsychological, ViolationPhysical,
		ViolationSexualAbuse, ViolationSexualExploitation, ViolationChildLabor,
		ViolationFinancialExploitation, ViolationDiscrimination, ViolationOther)
}

// RightsViolationReport documents a rights violation against someone
// inside the aggregate boundary, with the follow-up actions taken.
type RightsViolationReport struct {
	ID                ViolationReportID
	ReportDate        time.Time
	IncidentDate      *time.Time
	VictimID          PersonID
	ViolationType     ViolationType
	DescriptionOfFact string
	ActionsTaken      string
}

func NewRightsViolationReport(id ViolationReportID, reportDate time.Time, incidentDate *time.Time, victimID PersonID, violationType ViolationType, descriptionOfFact, actionsTaken string, now time.Time) (RightsViolationReport, error) {
	if reportDate.After(now) {
		return RightsViolationReport{}, ErrReportDateInFuture
	}
	if incidentDate != nil && incidentDate.After(reportDate) {
		return RightsViolationReport{}, ErrIncidentAfterReport
	}
	trimmedDescription := strings.TrimSpace(descriptionOfFact)
	if trimmedDescription == "" {
		return RightsViolationReport{}, ErrViolationDescriptionEmpty
	}
	return RightsViolationReport{
		ID:                id,
		ReportDate:        reportDate,
		IncidentDate:      incidentDate,
		VictimID:          victimID,
		ViolationType:     violationType,
		DescriptionOfFact: trimmedDescription,
		ActionsTaken:      strings.TrimSpace(actionsTaken),
	}, nil
}

// UpdatingActions returns a copy with the follow-up text replaced.
func (r RightsViolationReport) UpdatingActions(newActions string) RightsViolationReport {
	out := r
	out.ActionsTaken = strings.TrimSpace(newActions)
	return out
}

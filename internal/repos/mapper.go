package repos

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/types"
)

// Mapping between the aggregate and its relational shape. Conversions
// toward the database are pure; conversions back run the domain
// constructors again so a hand-edited row cannot smuggle in state the
// aggregate would never have produced.

func toPatientRow(p *domain.Patient) (*types.Patient, error) {
	row := &types.Patient{
		ID:       uuid.MustParse(p.ID().String()),
		PersonID: uuid.MustParse(p.PersonID().String()),
		Version:  p.Version(),
	}
	var err error
	if row.HousingCondition, err = marshalAssessment(p.HousingCondition()); err != nil {
		return nil, err
	}
	if row.SocioEconomicSituation, err = marshalAssessment(p.SocioEconomicSituation()); err != nil {
		return nil, err
	}
	if row.CommunitySupportNetwork, err = marshalAssessment(p.CommunitySupportNetwork()); err != nil {
		return nil, err
	}
	if row.SocialHealthSummary, err = marshalAssessment(p.SocialHealthSummary()); err != nil {
		return nil, err
	}
	return row, nil
}

func marshalAssessment[T any](v *T) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal assessment: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func toDiagnosisRows(p *domain.Patient) []*types.PatientDiagnosis {
	patientID := uuid.MustParse(p.ID().String())
	diagnoses := p.Diagnoses()
	rows := make([]*types.PatientDiagnosis, 0, len(diagnoses))
	for _, d := range diagnoses {
		rows = append(rows, &types.PatientDiagnosis{
			PatientID:   patientID,
			ICDCode:     d.Code.String(),
			Date:        d.Date,
			Description: d.Description,
		})
	}
	return rows
}

func toFamilyMemberRows(p *domain.Patient) []*types.FamilyMember {
	patientID := uuid.MustParse(p.ID().String())
	members := p.FamilyMembers()
	rows := make([]*types.FamilyMember, 0, len(members))
	for _, m := range members {
		rows = append(rows, &types.FamilyMember{
			PatientID:          patientID,
			PersonID:           uuid.MustParse(m.PersonID.String()),
			Relationship:       m.Relationship,
			IsPrimaryCaregiver: m.IsPrimaryCaregiver,
			ResidesWithPatient: m.ResidesWithPatient,
		})
	}
	return rows
}

func toAppointmentRows(p *domain.Patient) []*types.SocialCareAppointment {
	patientID := uuid.MustParse(p.ID().String())
	appointments := p.Appointments()
	rows := make([]*types.SocialCareAppointment, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, &types.SocialCareAppointment{
			ID:                     uuid.MustParse(a.ID.String()),
			PatientID:              patientID,
			Date:                   a.Date,
			ProfessionalInChargeID: uuid.MustParse(a.ProfessionalInChargeID.String()),
			Type:                   string(a.Type),
			Summary:                a.Summary,
			ActionPlan:             a.ActionPlan,
		})
	}
	return rows
}

func toReferralRows(p *domain.Patient) []*types.Referral {
	patientID := uuid.MustParse(p.ID().String())
	referrals := p.Referrals()
	rows := make([]*types.Referral, 0, len(referrals))
	for _, r := range referrals {
		rows = append(rows, &types.Referral{
			ID:                       uuid.MustParse(r.ID.String()),
			PatientID:                patientID,
			Date:                     r.Date,
			RequestingProfessionalID: uuid.MustParse(r.RequestingProfessionalID.String()),
			ReferredPersonID:         uuid.MustParse(r.ReferredPersonID.String()),
			DestinationService:       string(r.DestinationService),
			Reason:                   r.Reason,
			Status:                   string(r.Status),
		})
	}
	return rows
}

func toViolationReportRows(p *domain.Patient) []*types.RightsViolationReport {
	patientID := uuid.MustParse(p.ID().String())
	reports := p.ViolationReports()
	rows := make([]*types.RightsViolationReport, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, &types.RightsViolationReport{
			ID:                uuid.MustParse(r.ID.String()),
			PatientID:         patientID,
			ReportDate:        r.ReportDate,
			IncidentDate:      r.IncidentDate,
			VictimID:          uuid.MustParse(r.VictimID.String()),
			ViolationType:     string(r.ViolationType),
			DescriptionOfFact: r.DescriptionOfFact,
			ActionsTaken:      r.ActionsTaken,
		})
	}
	return rows
}

func toOutboxRows(events []domain.Event) ([]*types.OutboxMessage, error) {
	rows := make([]*types.OutboxMessage, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal event %s: %w", e.EventType(), err)
		}
		rows = append(rows, &types.OutboxMessage{
			ID:         e.EventID(),
			EventType:  e.EventType(),
			Payload:    datatypes.JSON(payload),
			OccurredAt: e.EventOccurredAt(),
		})
	}
	return rows, nil
}

type patientRows struct {
	parent           *types.Patient
	diagnoses        []*types.PatientDiagnosis
	familyMembers    []*types.FamilyMember
	appointments     []*types.SocialCareAppointment
	referrals        []*types.Referral
	violationReports []*types.RightsViolationReport
}

func toDomainPatient(rows patientRows, now time.Time) (*domain.Patient, error) {
	patientID, err := domain.NewPatientID(rows.parent.ID.String())
	if err != nil {
		return nil, err
	}
	personID, err := domain.NewPersonID(rows.parent.PersonID.String())
	if err != nil {
		return nil, err
	}

	in := domain.ReconstitutePatientInput{
		ID:       patientID,
		PersonID: personID,
		Version:  rows.parent.Version,
	}

	for _, row := range rows.diagnoses {
		code, err := domain.NewICDCode(row.ICDCode)
		if err != nil {
			return nil, err
		}
		diagnosis, err := domain.NewDiagnosis(code, row.Date, row.Description, now)
		if err != nil {
			return nil, err
		}
		in.Diagnoses = append(in.Diagnoses, diagnosis)
	}

	for _, row := range rows.familyMembers {
		member, err := domain.NewFamilyMember(domain.PersonID(row.PersonID.String()), row.Relationship, row.IsPrimaryCaregiver, row.ResidesWithPatient)
		if err != nil {
			return nil, err
		}
		in.FamilyMembers = append(in.FamilyMembers, member)
	}

	for _, row := range rows.appointments {
		appointmentType, err := domain.ParseAppointmentType(row.Type)
		if err != nil {
			return nil, err
		}
		appointment, err := domain.NewSocialCareAppointment(domain.AppointmentID(row.ID.String()), row.Date, domain.ProfessionalID(row.ProfessionalInChargeID.String()), appointmentType, row.Summary, row.ActionPlan, now)
		if err != nil {
			return nil, err
		}
		in.Appointments = append(in.Appointments, appointment)
	}

	for _, row := range rows.referrals {
		destination, err := domain.ParseDestinationService(row.DestinationService)
		if err != nil {
			return nil, err
		}
		status, err := domain.ParseReferralStatus(row.Status)
		if err != nil {
			return nil, err
		}
		referral, err := domain.NewReferral(domain.ReferralID(row.ID.String()), row.Date, domain.ProfessionalID(row.RequestingProfessionalID.String()), domain.PersonID(row.ReferredPersonID.String()), destination, row.Reason, status, now)
		if err != nil {
			return nil, err
		}
		in.Referrals = append(in.Referrals, referral)
	}

	for _, row := range rows.violationReports {
		violationType, err := domain.ParseViolationType(row.ViolationType)
		if err != nil {
			return nil, err
		}
		report, err := domain.NewRightsViolationReport(domain.ViolationReportID(row.ID.String()), row.ReportDate, row.IncidentDate, domain.PersonID(row.VictimID.String()), violationType, row.DescriptionOfFact, row.ActionsTaken, now)
		if err != nil {
			return nil, err
		}
		in.ViolationReports = append(in.ViolationReports, report)
	}

	if in.HousingCondition, err = unmarshalAssessment[domain.HousingCondition](rows.parent.HousingCondition); err != nil {
		return nil, err
	}
	if in.SocioEconomicSituation, err = unmarshalAssessment[domain.SocioEconomicSituation](rows.parent.SocioEconomicSituation); err != nil {
		return nil, err
	}
	if in.CommunitySupportNetwork, err = unmarshalAssessment[domain.CommunitySupportNetwork](rows.parent.CommunitySupportNetwork); err != nil {
		return nil, err
	}
	if in.SocialHealthSummary, err = unmarshalAssessment[domain.SocialHealthSummary](rows.parent.SocialHealthSummary); err != nil {
		return nil, err
	}

	return domain.ReconstitutePatient(in), nil
}

func unmarshalAssessment[T any](raw datatypes.JSON) (*T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return &out, nil
}

package services

import (
	"context"
	"time"

	"github.com/socialcarehq/social-care-backend/internal/apperr"
	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/repos"
)

// PatientService orchestrates every command against the Patient
// aggregate: parse raw input, load, mutate, save, then publish the
// captured events on the realtime bus. Durable delivery happens through
// the outbox rows written inside the save transaction, so a bus failure
// here is logged and swallowed.
type PatientService interface {
	Register(ctx context.Context, in RegisterPatientInput) (*domain.Patient, error)
	GetByID(ctx context.Context, patientID string) (*domain.Patient, error)
	GetByPersonID(ctx context.Context, personID string) (*domain.Patient, error)

	AddFamilyMember(ctx context.Context, in AddFamilyMemberInput) (*domain.Patient, error)
	RemoveFamilyMember(ctx context.Context, patientID, personID string) (*domain.Patient, error)
	AssignPrimaryCaregiver(ctx context.Context, patientID, personID string) (*domain.Patient, error)

	CreateReferral(ctx context.Context, in CreateReferralInput) (*domain.Patient, error)
	RegisterAppointment(ctx context.Context, in RegisterAppointmentInput) (*domain.Patient, error)
	ReportRightsViolation(ctx context.Context, in ReportRightsViolationInput) (*domain.Patient, error)

	UpdateHousingCondition(ctx context.Context, in UpdateHousingConditionInput) (*domain.Patient, error)
	UpdateSocioEconomicSituation(ctx context.Context, in UpdateSocioEconomicSituationInput) (*domain.Patient, error)
	UpdateCommunitySupportNetwork(ctx context.Context, in UpdateCommunitySupportNetworkInput) (*domain.Patient, error)
	UpdateSocialHealthSummary(ctx context.Context, in UpdateSocialHealthSummaryInput) (*domain.Patient, error)
}

type patientService struct {
	patients repos.PatientRepo
	bus      EventBus
	log      *logger.Logger
}

func NewPatientService(patients repos.PatientRepo, bus EventBus, baseLog *logger.Logger) PatientService {
	return &patientService{
		patients: patients,
		bus:      bus,
		log:      baseLog.With("service", "PatientService"),
	}
}

type DiagnosisInput struct {
	ICDCode     string    `json:"icdCode"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type RegisterPatientInput struct {
	PersonID  string           `json:"personId"`
	Diagnoses []DiagnosisInput `json:"diagnoses"`
}

func (s *patientService) Register(ctx context.Context, in RegisterPatientInput) (*domain.Patient, error) {
	personID, err := domain.NewPersonID(in.PersonID)
	if err != nil {
		return nil, err
	}

	exists, err := s.patients.ExistsByPersonID(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrPatientAlreadyExists
	}

	now := time.Now()
	diagnoses := make([]domain.Diagnosis, 0, len(in.Diagnoses))
	for _, d := range in.Diagnoses {
		code, err := domain.NewICDCode(d.ICDCode)
		if err != nil {
			return nil, err
		}
		diagnosis, err := domain.NewDiagnosis(code, d.Date, d.Description, now)
		if err != nil {
			return nil, err
		}
		diagnoses = append(diagnoses, diagnosis)
	}

	patient, err := domain.NewPatient(domain.GeneratePatientID(), personID, diagnoses, now)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, patient)
}

func (s *patientService) GetByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	id, err := domain.NewPatientID(patientID)
	if err != nil {
		return nil, err
	}
	return s.patients.GetByID(ctx, nil, id)
}

func (s *patientService) GetByPersonID(ctx context.Context, personID string) (*domain.Patient, error) {
	id, err := domain.NewPersonID(personID)
	if err != nil {
		return nil, err
	}
	return s.patients.GetByPersonID(ctx, nil, id)
}

type AddFamilyMemberInput struct {
	PatientID          string `json:"patientId"`
	PersonID           string `json:"personId"`
	Relationship       string `json:"relationship"`
	IsPrimaryCaregiver bool   `json:"isPrimaryCaregiver"`
	ResidesWithPatient bool   `json:"residesWithPatient"`
}

func (s *patientService) AddFamilyMember(ctx context.Context, in AddFamilyMemberInput) (*domain.Patient, error) {
	personID, err := domain.NewPersonID(in.PersonID)
	if err != nil {
		return nil, err
	}
	member, err := domain.NewFamilyMember(personID, in.Relationship, in.IsPrimaryCaregiver, in.ResidesWithPatient)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		return p.AddFamilyMember(member, now)
	})
}

func (s *patientService) RemoveFamilyMember(ctx context.Context, patientID, personID string) (*domain.Patient, error) {
	target, err := domain.NewPersonID(personID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, patientID, func(p *domain.Patient, now time.Time) error {
		return p.RemoveFamilyMember(target, now)
	})
}

func (s *patientService) AssignPrimaryCaregiver(ctx context.Context, patientID, personID string) (*domain.Patient, error) {
	target, err := domain.NewPersonID(personID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, patientID, func(p *domain.Patient, now time.Time) error {
		return p.AssignPrimaryCaregiver(target, now)
	})
}

type CreateReferralInput struct {
	PatientID                string    `json:"patientId"`
	Date                     time.Time `json:"date"`
	RequestingProfessionalID string    `json:"requestingProfessionalId"`
	ReferredPersonID         string    `json:"referredPersonId"`
	DestinationService       string    `json:"destinationService"`
	Reason                   string    `json:"reason"`
}

func (s *patientService) CreateReferral(ctx context.Context, in CreateReferralInput) (*domain.Patient, error) {
	professionalID, err := domain.NewProfessionalID(in.RequestingProfessionalID)
	if err != nil {
		return nil, err
	}
	referredPersonID, err := domain.NewPersonID(in.ReferredPersonID)
	if err != nil {
		return nil, err
	}
	destination, err := domain.ParseDestinationService(in.DestinationService)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		return p.AddReferral(domain.ReferralInput{
			ID:                       domain.GenerateReferralID(),
			Date:                     in.Date,
			RequestingProfessionalID: professionalID,
			ReferredPersonID:         referredPersonID,
			DestinationService:       destination,
			Reason:                   in.Reason,
		}, now)
	})
}

type RegisterAppointmentInput struct {
	PatientID              string    `json:"patientId"`
	Date                   time.Time `json:"date"`
	ProfessionalInChargeID string    `json:"professionalInChargeId"`
	Type                   string    `json:"type"`
	Summary                string    `json:"summary"`
	ActionPlan             string    `json:"actionPlan"`
}

func (s *patientService) RegisterAppointment(ctx context.Context, in RegisterAppointmentInput) (*domain.Patient, error) {
	professionalID, err := domain.NewProfessionalID(in.ProfessionalInChargeID)
	if err != nil {
		return nil, err
	}
	appointmentType, err := domain.ParseAppointmentType(in.Type)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		return p.AddAppointment(domain.AppointmentInput{
			ID:                     domain.GenerateAppointmentID(),
			Date:                   in.Date,
			ProfessionalInChargeID: professionalID,
			Type:                   appointmentType,
			Summary:                in.Summary,
			ActionPlan:             in.ActionPlan,
		}, now)
	})
}

type ReportRightsViolationInput struct {
	PatientID         string     `json:"patientId"`
	ReportDate        time.Time  `json:"reportDate"`
	IncidentDate      *time.Time `json:"incidentDate,omitempty"`
	VictimID          string     `json:"victimId"`
	ViolationType     string     `json:"violationType"`
	DescriptionOfFact string     `json:"descriptionOfFact"`
	ActionsTaken      string     `json:"actionsTaken"`
}

func (s *patientService) ReportRightsViolation(ctx context.Context, in ReportRightsViolationInput) (*domain.Patient, error) {
	victimID, err := domain.NewPersonID(in.VictimID)
	if err != nil {
		return nil, err
	}
	violationType, err := domain.ParseViolationType(in.ViolationType)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		return p.AddRightsViolationReport(domain.ViolationReportInput{
			ID:                domain.GenerateViolationReportID(),
			ReportDate:        in.ReportDate,
			IncidentDate:      in.IncidentDate,
			VictimID:          victimID,
			ViolationType:     violationType,
			DescriptionOfFact: in.DescriptionOfFact,
			ActionsTaken:      in.ActionsTaken,
		}, now)
	})
}

type UpdateHousingConditionInput struct {
	PatientID              string `json:"patientId"`
	Type                   string `json:"type"`
	WallMaterial           string `json:"wallMaterial"`
	NumberOfRooms          int    `json:"numberOfRooms"`
	NumberOfBathrooms      int    `json:"numberOfBathrooms"`
	WaterSupply            string `json:"waterSupply"`
	ElectricityAccess      string `json:"electricityAccess"`
	SewageDisposal         string `json:"sewageDisposal"`
	WasteCollection        string `json:"wasteCollection"`
	AccessibilityLevel     string `json:"accessibilityLevel"`
	IsInGeographicRiskArea bool   `json:"isInGeographicRiskArea"`
	IsInSocialConflictArea bool   `json:"isInSocialConflictArea"`
}

func (s *patientService) UpdateHousingCondition(ctx context.Context, in UpdateHousingConditionInput) (*domain.Patient, error) {
	tenure, err := domain.ParseHousingTenure(in.Type)
	if err != nil {
		return nil, err
	}
	wallMaterial, err := domain.ParseWallMaterial(in.WallMaterial)
	if err != nil {
		return nil, err
	}
	waterSupply, err := domain.ParseWaterSupply(in.WaterSupply)
	if err != nil {
		return nil, err
	}
	electricity, err := domain.ParseElectricityAccess(in.ElectricityAccess)
	if err != nil {
		return nil, err
	}
	sewage, err := domain.ParseSewageDisposal(in.SewageDisposal)
	if err != nil {
		return nil, err
	}
	waste, err := domain.ParseWasteCollection(in.WasteCollection)
	if err != nil {
		return nil, err
	}
	accessibility, err := domain.ParseAccessibilityLevel(in.AccessibilityLevel)
	if err != nil {
		return nil, err
	}
	condition, err := domain.NewHousingCondition(domain.HousingConditionInput{
		Tenure:                 tenure,
		WallMaterial:           wallMaterial,
		NumberOfRooms:          in.NumberOfRooms,
		NumberOfBathrooms:      in.NumberOfBathrooms,
		WaterSupply:            waterSupply,
		ElectricityAccess:      electricity,
		SewageDisposal:         sewage,
		WasteCollection:        waste,
		AccessibilityLevel:     accessibility,
		IsInGeographicRiskArea: in.IsInGeographicRiskArea,
		IsInSocialConflictArea: in.IsInSocialConflictArea,
	})
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		p.UpdateHousingCondition(&condition)
		return nil
	})
}

type SocialBenefitInput struct {
	BenefitName   string  `json:"benefitName"`
	Amount        float64 `json:"amount"`
	BeneficiaryID string  `json:"beneficiaryId"`
}

type UpdateSocioEconomicSituationInput struct {
	PatientID             string               `json:"patientId"`
	TotalFamilyIncome     float64              `json:"totalFamilyIncome"`
	IncomePerCapita       float64              `json:"incomePerCapita"`
	ReceivesSocialBenefit bool                 `json:"receivesSocialBenefit"`
	SocialBenefits        []SocialBenefitInput `json:"socialBenefits"`
	MainSourceOfIncome    string               `json:"mainSourceOfIncome"`
	HasUnemployed         bool                 `json:"hasUnemployed"`
}

func (s *patientService) UpdateSocioEconomicSituation(ctx context.Context, in UpdateSocioEconomicSituationInput) (*domain.Patient, error) {
	benefits := make([]domain.SocialBenefit, 0, len(in.SocialBenefits))
	for _, b := range in.SocialBenefits {
		beneficiaryID, err := domain.NewFamilyMemberID(b.BeneficiaryID)
		if err != nil {
			return nil, err
		}
		benefit, err := domain.NewSocialBenefit(b.BenefitName, b.Amount, beneficiaryID)
		if err != nil {
			return nil, err
		}
		benefits = append(benefits, benefit)
	}
	collection, err := domain.NewSocialBenefitsCollection(benefits)
	if err != nil {
		return nil, err
	}
	situation, err := domain.NewSocioEconomicSituation(in.TotalFamilyIncome, in.IncomePerCapita, in.ReceivesSocialBenefit, collection, in.MainSourceOfIncome, in.HasUnemployed)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		p.UpdateSocioEconomicSituation(&situation)
		return nil
	})
}

type UpdateCommunitySupportNetworkInput struct {
	PatientID                   string `json:"patientId"`
	HasRelativeSupport          bool   `json:"hasRelativeSupport"`
	HasNeighborSupport          bool   `json:"hasNeighborSupport"`
	FamilyConflicts             string `json:"familyConflicts"`
	PatientParticipatesInGroups bool   `json:"patientParticipatesInGroups"`
	FamilyParticipatesInGroups  bool   `json:"familyParticipatesInGroups"`
	PatientHasAccessToLeisure   bool   `json:"patientHasAccessToLeisure"`
	FacesDiscrimination         bool   `json:"facesDiscrimination"`
}

func (s *patientService) UpdateCommunitySupportNetwork(ctx context.Context, in UpdateCommunitySupportNetworkInput) (*domain.Patient, error) {
	network, err := domain.NewCommunitySupportNetwork(in.HasRelativeSupport, in.HasNeighborSupport, in.FamilyConflicts, in.PatientParticipatesInGroups, in.FamilyParticipatesInGroups, in.PatientHasAccessToLeisure, in.FacesDiscrimination)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		p.UpdateCommunitySupportNetwork(&network)
		return nil
	})
}

type UpdateSocialHealthSummaryInput struct {
	PatientID              string   `json:"patientId"`
	RequiresConstantCare   bool     `json:"requiresConstantCare"`
	HasMobilityImpairment  bool     `json:"hasMobilityImpairment"`
	FunctionalDependencies []string `json:"functionalDependencies"`
	HasRelevantDrugTherapy bool     `json:"hasRelevantDrugTherapy"`
}

func (s *patientService) UpdateSocialHealthSummary(ctx context.Context, in UpdateSocialHealthSummaryInput) (*domain.Patient, error) {
	summary, err := domain.NewSocialHealthSummary(in.RequiresConstantCare, in.HasMobilityImpairment, in.FunctionalDependencies, in.HasRelevantDrugTherapy)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.PatientID, func(p *domain.Patient, now time.Time) error {
		p.UpdateSocialHealthSummary(&summary)
		return nil
	})
}

// mutate is the shared load-mutate-persist cycle for commands against
// an existing aggregate.
func (s *patientService) mutate(ctx context.Context, rawPatientID string, fn func(p *domain.Patient, now time.Time) error) (*domain.Patient, error) {
	patientID, err := domain.NewPatientID(rawPatientID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.GetByID(ctx, nil, patientID)
	if err != nil {
		return nil, err
	}
	if err := fn(patient, time.Now()); err != nil {
		return nil, err
	}
	return s.persist(ctx, patient)
}

// persist saves the aggregate and then pushes the captured events on
// the realtime bus. The save already wrote them to the outbox, so bus
// failures only cost immediacy, not delivery.
func (s *patientService) persist(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	pending := patient.PendingEvents()
	if err := s.patients.Save(ctx, nil, patient); err != nil {
		return nil, err
	}
	for _, event := range pending {
		if err := s.bus.Publish(ctx, event); err != nil {
			s.log.Warn("Realtime publish failed", "event_type", event.EventType(), "event_id", event.EventID(), "error", err)
		}
	}
	return patient, nil
}

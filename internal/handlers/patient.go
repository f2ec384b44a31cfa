package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/services"
)

type PatientHandler struct {
	patientService services.PatientService
}

func NewPatientHandler(patientService services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

func (ph *PatientHandler) Register(c *gin.Context) {
	var in services.RegisterPatientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	patient, err := ph.patientService.Register(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) GetByID(c *gin.Context) {
	patient, err := ph.patientService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) GetByPersonID(c *gin.Context) {
	patient, err := ph.patientService.GetByPersonID(c.Request.Context(), c.Param("personId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) AddFamilyMember(c *gin.Context) {
	var in services.AddFamilyMemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.AddFamilyMember(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) RemoveFamilyMember(c *gin.Context) {
	patient, err := ph.patientService.RemoveFamilyMember(c.Request.Context(), c.Param("id"), c.Param("personId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) AssignPrimaryCaregiver(c *gin.Context) {
	patient, err := ph.patientService.AssignPrimaryCaregiver(c.Request.Context(), c.Param("id"), c.Param("personId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) CreateReferral(c *gin.Context) {
	var in services.CreateReferralInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.CreateReferral(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) RegisterAppointment(c *gin.Context) {
	var in services.RegisterAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.RegisterAppointment(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) ReportRightsViolation(c *gin.Context) {
	var in services.ReportRightsViolationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.ReportRightsViolation(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) UpdateHousingCondition(c *gin.Context) {
	var in services.UpdateHousingConditionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.UpdateHousingCondition(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) UpdateSocioEconomicSituation(c *gin.Context) {
	var in services.UpdateSocioEconomicSituationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.UpdateSocioEconomicSituation(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) UpdateCommunitySupportNetwork(c *gin.Context) {
	var in services.UpdateCommunitySupportNetworkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.UpdateCommunitySupportNetwork(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

func (ph *PatientHandler) UpdateSocialHealthSummary(c *gin.Context) {
	var in services.UpdateSocialHealthSummaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err)
		return
	}
	in.PatientID = c.Param("id")
	patient, err := ph.patientService.UpdateSocialHealthSummary(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": toPatientView(patient)})
}

type diagnosisView struct {
	ICDCode     string    `json:"icdCode"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type familyMemberView struct {
	PersonID           string `json:"personId"`
	Relationship       string `json:"relationship"`
	IsPrimaryCaregiver bool   `json:"isPrimaryCaregiver"`
	ResidesWithPatient bool   `json:"residesWithPatient"`
}

type appointmentView struct {
	ID                     string    `json:"id"`
	Date                   time.Time `json:"date"`
	ProfessionalInChargeID string    `json:"professionalInChargeId"`
	Type                   string    `json:"type"`
	Summary                string    `json:"summary"`
	ActionPlan             string    `json:"actionPlan"`
}

type referralView struct {
	ID                       string    `json:"id"`
	Date                     time.Time `json:"date"`
	RequestingProfessionalID string    `json:"requestingProfessionalId"`
	ReferredPersonID         string    `json:"referredPersonId"`
	DestinationService       string    `json:"destinationService"`
	Reason                   string    `json:"reason"`
	Status                   string    `json:"status"`
}

type violationReportView struct {
	ID                string     `json:"id"`
	ReportDate        time.Time  `json:"reportDate"`
	IncidentDate      *time.Time `json:"incidentDate,omitempty"`
	VictimID          string     `json:"victimId"`
	ViolationType     string     `json:"violationType"`
	DescriptionOfFact string     `json:"descriptionOfFact"`
	ActionsTaken      string     `json:"actionsTaken"`
}

type patientView struct {
	ID                      string                          `json:"id"`
	PersonID                string                          `json:"personId"`
	Version                 int                             `json:"version"`
	Diagnoses               []diagnosisView                 `json:"diagnoses"`
	FamilyMembers           []familyMemberView              `json:"familyMembers"`
	Appointments            []appointmentView               `json:"appointments"`
	Referrals               []referralView                  `json:"referrals"`
	ViolationReports        []violationReportView           `json:"violationReports"`
	HousingCondition        *domain.HousingCondition        `json:"housingCondition,omitempty"`
	SocioEconomicSituation  *domain.SocioEconomicSituation  `json:"socioeconomicSituation,omitempty"`
	CommunitySupportNetwork *domain.CommunitySupportNetwork `json:"communitySupportNetwork,omitempty"`
	SocialHealthSummary     *domain.SocialHealthSummary     `json:"socialHealthSummary,omitempty"`
}

func toPatientView(p *domain.Patient) patientView {
	view := patientView{
		ID:                      p.ID().String(),
		PersonID:                p.PersonID().String(),
		Version:                 p.Version(),
		Diagnoses:               []diagnosisView{},
		FamilyMembers:           []familyMemberView{},
		Appointments:            []appointmentView{},
		Referrals:               []referralView{},
		ViolationReports:        []violationReportView{},
		HousingCondition:        p.HousingCondition(),
		SocioEconomicSituation:  p.SocioEconomicSituation(),
		CommunitySupportNetwork: p.CommunitySupportNetwork(),
		SocialHealthSummary:     p.SocialHealthSummary(),
	}
	for _, d := range p.Diagnoses() {
		view.Diagnoses = append(view.Diagnoses, diagnosisView{
			ICDCode:     d.Code.String(),
			Date:        d.Date,
			Description: d.Description,
		})
	}
	for _, m := range p.FamilyMembers() {
		view.FamilyMembers = append(view.FamilyMembers, familyMemberView{
			PersonID:           m.PersonID.String(),
			Relationship:       m.Relationship,
			IsPrimaryCaregiver: m.IsPrimaryCaregiver,
			ResidesWithPatient: m.ResidesWithPatient,
		})
	}
	for _, a := range p.Appointments() {
		view.Appointments = append(view.Appointments, appointmentView{
			ID:                     a.ID.String(),
			Date:                   a.Date,
			ProfessionalInChargeID: a.ProfessionalInChargeID.String(),
			Type:                   string(a.Type),
			Summary:                a.Summary,
			ActionPlan:             a.ActionPlan,
		})
	}
	for _, r := range p.Referrals() {
		view.Referrals = append(view.Referrals, referralView{
			ID:                       r.ID.String(),
			Date:                     r.Date,
			RequestingProfessionalID: r.RequestingProfessionalID.String(),
			ReferredPersonID:         r.ReferredPersonID.String(),
			DestinationService:       string(r.DestinationService),
			Reason:                   r.Reason,
			Status:                   string(r.Status),
		})
	}
	for _, r := range p.ViolationReports() {
		view.ViolationReports = append(view.ViolationReports, violationReportView{
			ID:                r.ID.String(),
			ReportDate:        r.ReportDate,
			IncidentDate:      r.IncidentDate,
			VictimID:          r.VictimID.String(),
			ViolationType:     string(r.ViolationType),
			DescriptionOfFact: r.DescriptionOfFact,
			ActionsTaken:      r.ActionsTaken,
		})
	}
	return view
}

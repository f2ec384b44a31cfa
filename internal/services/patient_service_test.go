package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/socialcarehq/social-care-backend/internal/apperr"
	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/repos"
)

type fakePatientRepo struct {
	byID     map[domain.PatientID]*domain.Patient
	byPerson map[domain.PersonID]domain.PatientID
	saves    int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		byID:     make(map[domain.PatientID]*domain.Patient),
		byPerson: make(map[domain.PersonID]domain.PatientID),
	}
}

func (f *fakePatientRepo) Save(ctx context.Context, tx *gorm.DB, patient *domain.Patient) error {
	f.byID[patient.ID()] = patient
	f.byPerson[patient.PersonID()] = patient.ID()
	f.saves++
	patient.ClearEvents()
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, tx *gorm.DB, id domain.PatientID) (*domain.Patient, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repos.ErrPatientNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) GetByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (*domain.Patient, error) {
	id, ok := f.byPerson[personID]
	if !ok {
		return nil, repos.ErrPatientNotFound
	}
	return f.byID[id], nil
}

func (f *fakePatientRepo) ExistsByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (bool, error) {
	_, ok := f.byPerson[personID]
	return ok, nil
}

type fakeBus struct {
	published []domain.Event
	fail      bool
}

func (f *fakeBus) Publish(ctx context.Context, event domain.Event) error {
	if f.fail {
		return errors.New("bus down")
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Close() error { return nil }

func serviceUnderTest(t *testing.T) (PatientService, *fakePatientRepo, *fakeBus) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	repo := newFakePatientRepo()
	bus := &fakeBus{}
	return NewPatientService(repo, bus, log), repo, bus
}

func registerInput() RegisterPatientInput {
	return RegisterPatientInput{
		PersonID: domain.GeneratePersonID().String(),
		Diagnoses: []DiagnosisInput{
			{ICDCode: "F84.0", Date: time.Now().Add(-24 * time.Hour), Description: "autism spectrum disorder"},
		},
	}
}

func TestPatientService_RegisterCreatesAndPublishes(t *testing.T) {
	svc, repo, bus := serviceUnderTest(t)

	patient, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if patient.Version() != 1 {
		t.Fatalf("expected version=1 got %d", patient.Version())
	}
	if repo.saves != 1 {
		t.Fatalf("expected 1 save got %d", repo.saves)
	}
	if len(bus.published) != 1 || bus.published[0].EventType() != domain.EventTypePatientCreated {
		t.Fatalf("expected one PatientCreated on the bus, got %v", bus.published)
	}
	if len(patient.PendingEvents()) != 0 {
		t.Fatalf("events must be cleared after save")
	}
}

func TestPatientService_RegisterRejectsDuplicatePerson(t *testing.T) {
	svc, _, _ := serviceUnderTest(t)
	in := registerInput()

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, apperr.ErrPatientAlreadyExists) {
		t.Fatalf("expected ErrPatientAlreadyExists got %v", err)
	}
}

func TestPatientService_RegisterRejectsBadPersonID(t *testing.T) {
	svc, _, _ := serviceUnderTest(t)

	_, err := svc.Register(context.Background(), RegisterPatientInput{PersonID: "not-a-uuid"})
	var invalid *domain.InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidIDError got %v", err)
	}
}

func TestPatientService_AddFamilyMemberPublishesEvent(t *testing.T) {
	svc, _, bus := serviceUnderTest(t)

	patient, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	bus.published = nil

	updated, err := svc.AddFamilyMember(context.Background(), AddFamilyMemberInput{
		PatientID:          patient.ID().String(),
		PersonID:           domain.GeneratePersonID().String(),
		Relationship:       "mother",
		ResidesWithPatient: true,
	})
	if err != nil {
		t.Fatalf("add family member failed: %v", err)
	}
	if updated.Version() != 2 {
		t.Fatalf("expected version=2 got %d", updated.Version())
	}
	if len(bus.published) != 1 || bus.published[0].EventType() != domain.EventTypeFamilyMemberAdded {
		t.Fatalf("expected one FamilyMemberAdded on the bus, got %v", bus.published)
	}
}

func TestPatientService_MutationOnMissingPatientFails(t *testing.T) {
	svc, _, _ := serviceUnderTest(t)

	_, err := svc.RemoveFamilyMember(context.Background(), domain.GeneratePatientID().String(), domain.GeneratePersonID().String())
	if !errors.Is(err, repos.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound got %v", err)
	}
}

func TestPatientService_BusFailureDoesNotFailTheCommand(t *testing.T) {
	svc, repo, bus := serviceUnderTest(t)
	bus.fail = true

	patient, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register must survive a bus failure: %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("expected the save to have happened")
	}
	if patient.Version() != 1 {
		t.Fatalf("expected version=1 got %d", patient.Version())
	}
}

func TestPatientService_UpdateHousingConditionValidatesEnums(t *testing.T) {
	svc, _, _ := serviceUnderTest(t)

	patient, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = svc.UpdateHousingCondition(context.Background(), UpdateHousingConditionInput{
		PatientID:    patient.ID().String(),
		Type:         "CASTLE",
		WallMaterial: "MASONRY",
	})
	var enumErr *domain.InvalidEnumError
	if !errors.As(err, &enumErr) {
		t.Fatalf("expected InvalidEnumError got %v", err)
	}

	updated, err := svc.UpdateHousingCondition(context.Background(), UpdateHousingConditionInput{
		PatientID:          patient.ID().String(),
		Type:               "OWNED",
		WallMaterial:       "MASONRY",
		NumberOfRooms:      3,
		NumberOfBathrooms:  1,
		WaterSupply:        "PUBLIC_NETWORK",
		ElectricityAccess:  "METERED_CONNECTION",
		SewageDisposal:     "PUBLIC_SEWER",
		WasteCollection:    "DIRECT_COLLECTION",
		AccessibilityLevel: "FULLY_ACCESSIBLE",
	})
	if err != nil {
		t.Fatalf("valid update failed: %v", err)
	}
	if updated.HousingCondition() == nil {
		t.Fatalf("expected housing condition to be set")
	}
	if updated.Version() != 2 {
		t.Fatalf("expected version=2 got %d", updated.Version())
	}
}

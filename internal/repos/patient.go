package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/types"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientRepo interface {
	Save(ctx context.Context, tx *gorm.DB, patient *domain.Patient) error
	GetByID(ctx context.Context, tx *gorm.DB, id domain.PatientID) (*domain.Patient, error)
	GetByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (*domain.Patient, error)
	ExistsByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (bool, error)
}

type patientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	repoLog := baseLog.With("repo", "PatientRepo")
	return &patientRepo{db: db, log: repoLog}
}

// Save writes the whole aggregate and its pending events in one
// transaction: the parent row is upserted, the child collections are
// replaced wholesale, and one outbox row is inserted per pending event.
// The pending events are cleared only after the transaction commits, so
// a failed save leaves them on the aggregate for a retry.
func (pr *patientRepo) Save(ctx context.Context, tx *gorm.DB, patient *domain.Patient) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	parent, err := toPatientRow(patient)
	if err != nil {
		return err
	}
	events := patient.PendingEvents()
	outboxRows, err := toOutboxRows(events)
	if err != nil {
		return err
	}

	err = transaction.WithContext(ctx).Transaction(func(t *gorm.DB) error {
		if err := t.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(parent).Error; err != nil {
			return err
		}

		childTables := []any{
			&types.PatientDiagnosis{},
			&types.FamilyMember{},
			&types.SocialCareAppointment{},
			&types.Referral{},
			&types.RightsViolationReport{},
		}
		for _, model := range childTables {
			if err := t.Where("patient_id = ?", parent.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		if rows := toDiagnosisRows(patient); len(rows) > 0 {
			if err := t.Create(&rows).Error; err != nil {
				return err
			}
		}
		if rows := toFamilyMemberRows(patient); len(rows) > 0 {
			if err := t.Create(&rows).Error; err != nil {
				return err
			}
		}
		if rows := toAppointmentRows(patient); len(rows) > 0 {
			if err := t.Create(&rows).Error; err != nil {
				return err
			}
		}
		if rows := toReferralRows(patient); len(rows) > 0 {
			if err := t.Create(&rows).Error; err != nil {
				return err
			}
		}
		if rows := toViolationReportRows(patient); len(rows) > 0 {
			if err := t.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(outboxRows) > 0 {
			if err := t.Create(&outboxRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		pr.log.Error("Failed to save patient", "patient_id", patient.ID().String(), "error", err)
		return err
	}

	patient.ClearEvents()
	pr.log.Debug("Patient saved", "patient_id", patient.ID().String(), "version", patient.Version(), "events", len(events))
	return nil
}

func (pr *patientRepo) GetByID(ctx context.Context, tx *gorm.DB, id domain.PatientID) (*domain.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var parent types.Patient
	if err := transaction.WithContext(ctx).
		Where("id = ?", uuid.MustParse(id.String())).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return pr.loadAggregate(ctx, transaction, &parent)
}

func (pr *patientRepo) GetByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (*domain.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var parent types.Patient
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", uuid.MustParse(personID.String())).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return pr.loadAggregate(ctx, transaction, &parent)
}

func (pr *patientRepo) ExistsByPersonID(ctx context.Context, tx *gorm.DB, personID domain.PersonID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Patient{}).
		Where("person_id = ?", uuid.MustParse(personID.String())).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *patientRepo) loadAggregate(ctx context.Context, transaction *gorm.DB, parent *types.Patient) (*domain.Patient, error) {
	rows := patientRows{parent: parent}

	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", parent.ID).
		Find(&rows.diagnoses).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", parent.ID).
		Find(&rows.familyMembers).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", parent.ID).
		Find(&rows.appointments).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", parent.ID).
		Find(&rows.referrals).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", parent.ID).
		Find(&rows.violationReports).Error; err != nil {
		return nil, err
	}

	return toDomainPatient(rows, time.Now())
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/repos"
)

// Error is the stable surface the transport layer exposes. Codes never
// change once shipped; the wrapped error keeps the diagnostic detail
// out of the wire response.
type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

const (
	CodePatientNotFound      = "PAT-001"
	CodePatientAlreadyExists = "PAT-002"
	CodeInvalidIdentifier    = "PAT-003"
	CodeInvalidEnumValue     = "PAT-004"
	CodeFamilyMemberExists   = "FAM-001"
	CodeFamilyMemberNotFound = "FAM-002"
	CodeOutsideBoundary      = "BND-001"
	CodeValidationFailed     = "VAL-001"
	CodeReferralTransition   = "REF-001"
	CodePersistenceFailure   = "PER-001"
)

var ErrPatientAlreadyExists = errors.New("a patient for this person already exists")

// Map folds any error coming out of the service layer into a stable
// coded error. Unrecognized failures collapse into the generic
// persistence code so callers never see raw driver errors.
func Map(err error) *Error {
	var coded *Error
	if errors.As(err, &coded) {
		return coded
	}

	switch {
	case errors.Is(err, repos.ErrPatientNotFound):
		return &Error{Code: CodePatientNotFound, Status: http.StatusNotFound, Message: "patient not found", Err: err}
	case errors.Is(err, ErrPatientAlreadyExists):
		return &Error{Code: CodePatientAlreadyExists, Status: http.StatusConflict, Message: "patient already exists", Err: err}
	}

	var invalidID *domain.InvalidIDError
	if errors.As(err, &invalidID) {
		return &Error{Code: CodeInvalidIdentifier, Status: http.StatusBadRequest, Message: invalidID.Error(), Err: err}
	}
	var invalidEnum *domain.InvalidEnumError
	if errors.As(err, &invalidEnum) {
		return &Error{Code: CodeInvalidEnumValue, Status: http.StatusBadRequest, Message: invalidEnum.Error(), Err: err}
	}
	var memberExists *domain.FamilyMemberExistsError
	if errors.As(err, &memberExists) {
		return &Error{Code: CodeFamilyMemberExists, Status: http.StatusConflict, Message: memberExists.Error(), Err: err}
	}
	var memberMissing *domain.FamilyMemberNotFoundError
	if errors.As(err, &memberMissing) {
		return &Error{Code: CodeFamilyMemberNotFound, Status: http.StatusNotFound, Message: memberMissing.Error(), Err: err}
	}
	var boundary *domain.BoundaryError
	if errors.As(err, &boundary) {
		return &Error{Code: CodeOutsideBoundary, Status: http.StatusUnprocessableEntity, Message: boundary.Error(), Err: err}
	}
	var transition *domain.ReferralTransitionError
	if errors.As(err, &transition) {
		return &Error{Code: CodeReferralTransition, Status: http.StatusConflict, Message: transition.Error(), Err: err}
	}

	if isDomainValidation(err) {
		return &Error{Code: CodeValidationFailed, Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	}

	return &Error{Code: CodePersistenceFailure, Status: http.StatusInternalServerError, Message: "persistence mapping failure", Err: err}
}

func isDomainValidation(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInitialDiagnosesEmpty,
		domain.ErrRelationshipEmpty,
		domain.ErrDiagnosisDateInFuture,
		domain.ErrDiagnosisDescriptionEmpty,
		domain.ErrICDCodeEmpty,
		domain.ErrReferralDateInFuture,
		domain.ErrReferralReasonMissing,
		domain.ErrAppointmentDateInFuture,
		domain.ErrAppointmentNarrativeMissing,
		domain.ErrReportDateInFuture,
		domain.ErrIncidentAfterReport,
		domain.ErrViolationDescriptionEmpty,
		domain.ErrNegativeRooms,
		domain.ErrNegativeBathrooms,
		domain.ErrBathroomsExceedRooms,
		domain.ErrInconsistentBenefitFlag,
		domain.ErrMissingSocialBenefits,
		domain.ErrIncomeSourceEmpty,
		domain.ErrBenefitNameEmpty,
		domain.ErrFamilyConflictsWhitespace,
		domain.ErrFunctionalDependencyEmpty,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	for _, target := range []any{
		new(*domain.ICDCodeFormatError),
		new(*domain.NarrativeTooLongError),
		new(*domain.NegativeIncomeError),
		new(*domain.IncomePerCapitaError),
		new(*domain.BenefitAmountError),
		new(*domain.DuplicateBenefitError),
		new(*domain.FamilyConflictsTooLongError),
	} {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

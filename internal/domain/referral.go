package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrReferralDateInFuture  = errors.New("referral date must not be in the future")
	ErrReferralReasonMissing = errors.New("referral reason must not be empty")
)

type ReferralTransitionError struct {
	From ReferralStatus
	To   ReferralStatus
}

func (e *ReferralTransitionError) Error() string {
	return fmt.Sprintf("referral cannot transition from %s to %s", e.From, e.To)
}

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "PENDING"
	ReferralStatusCompleted ReferralStatus = "COMPLETED"
	ReferralStatusCancelled ReferralStatus = "CANCELLED"
)

func ParseReferralStatus(raw string) (ReferralStatus, error) {
	return parseEnum("referral status", raw,
		ReferralStatusPending, ReferralStatusCompleted, ReferralStatusCancelled)
}

type DestinationService string

const (
	DestinationCRAS       DestinationService = "CRAS"
	DestinationCREAS      DestinationService = "CREAS"
	DestinationHealthCare DestinationService = "HEALTH_CARE"
	DestinationEducation  DestinationService = "EDUCATION"
	DestinationLegal      DestinationService = "LEGAL"
	DestinationOther      DestinationService = "OTHER"
)

func ParseDestinationService(raw string) (DestinationService, error) {
	return parseEnum("destination service", raw,
		DestinationCRAS, DestinationCREAS, DestinationHealthCare,
		DestinationEducation, DestinationLegal, DestinationOther)
}

// Referral records a hand-off of someone inside the aggregate boundary
// to another service. Status moves away from PENDING exactly once.
type Referral struct {
	ID                       ReferralID
	Date                     time.Time
	RequestingProfessionalID ProfessionalID
	ReferredPersonID         PersonID
	DestinationService       DestinationService
	Reason                   string
	Status                   ReferralStatus
}

func NewReferral(id ReferralID, date time.Time, requestingProfessionalID ProfessionalID, referredPersonID PersonID, destination DestinationService, reason string, status ReferralStatus, now time.Time) (Referral, error) {
	if date.After(now) {
		return Referral{}, ErrReferralDateInFuture
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return Referral{}, ErrReferralReasonMissing
	}
	if status == "" {
		status = ReferralStatusPending
	}
	return Referral{
		ID:                       id,
		Date:                     date,
		RequestingProfessionalID: requestingProfessionalID,
		ReferredPersonID:         referredPersonID,
		DestinationService:       destination,
		Reason:                   trimmed,
		Status:                   status,
	}, nil
}

func (r Referral) Complete() (Referral, error) { return r.transition(ReferralStatusCompleted) }

func (r Referral) Cancel() (Referral, error) { return r.transition(ReferralStatusCancelled) }

func (r Referral) transition(next ReferralStatus) (Referral, error) {
	if r.Status != ReferralStatusPending {
		return Referral{}, &ReferralTransitionError{From: r.Status, To: next}
	}
	out := r
	out.Status = next
	return out, nil
}

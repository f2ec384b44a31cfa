package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/socialcarehq/social-care-backend/internal/domain"
)

func TestDefaultRegistry_RoundTripsEveryEventType(t *testing.T) {
	registry := NewDefaultRegistry()
	now := time.Now().UTC().Truncate(time.Second)

	samples := []domain.Event{
		domain.PatientCreatedEvent{ID: uuid.New(), PatientID: uuid.NewString(), PersonID: uuid.NewString(), OccurredAt: now},
		domain.FamilyMemberAddedEvent{ID: uuid.New(), MemberID: uuid.NewString(), PatientID: uuid.NewString(), Relationship: "mother", OccurredAt: now},
		domain.FamilyMemberRemovedEvent{ID: uuid.New(), MemberID: uuid.NewString(), PatientID: uuid.NewString(), OccurredAt: now},
		domain.PrimaryCaregiverAssignedEvent{ID: uuid.New(), PatientID: uuid.NewString(), CaregiverID: uuid.NewString(), OccurredAt: now},
		domain.ReferralCreatedEvent{ID: uuid.New(), PatientID: uuid.NewString(), ReferralID: uuid.NewString(), ReferredPersonID: uuid.NewString(), DestinationService: "CRAS", Status: "PENDING", OccurredAt: now},
		domain.RightsViolationReportedEvent{ID: uuid.New(), PatientID: uuid.NewString(), ReportID: uuid.NewString(), VictimID: uuid.NewString(), ViolationType: "NEGLECT", OccurredAt: now},
		domain.SocialCareAppointmentRegisteredEvent{ID: uuid.New(), PatientID: uuid.NewString(), AppointmentID: uuid.NewString(), ProfessionalInChargeID: uuid.NewString(), Type: "HOME_VISIT", OccurredAt: now},
	}

	for _, original := range samples {
		payload, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal %s: %v", original.EventType(), err)
		}
		decoded, err := registry.Decode(original.EventType(), payload)
		if err != nil {
			t.Fatalf("decode %s: %v", original.EventType(), err)
		}
		if decoded.EventType() != original.EventType() {
			t.Fatalf("expected type %s got %s", original.EventType(), decoded.EventType())
		}
		if decoded.EventID() != original.EventID() {
			t.Fatalf("%s: expected id %s got %s", original.EventType(), original.EventID(), decoded.EventID())
		}
		if !decoded.EventOccurredAt().Equal(original.EventOccurredAt()) {
			t.Fatalf("%s: expected occurredAt %v got %v", original.EventType(), original.EventOccurredAt(), decoded.EventOccurredAt())
		}
	}
}

func TestRegistry_UnknownTypeFailsDistinctlyFromCorruptPayload(t *testing.T) {
	registry := NewDefaultRegistry()

	_, err := registry.Decode("SomethingElse", []byte(`{}`))
	var unregistered *UnregisteredEventTypeError
	if !errors.As(err, &unregistered) {
		t.Fatalf("expected UnregisteredEventTypeError got %v", err)
	}
	if unregistered.EventType != "SomethingElse" {
		t.Fatalf("expected offending type in error, got %q", unregistered.EventType)
	}

	_, err = registry.Decode(domain.EventTypePatientCreated, []byte(`{not json`))
	if err == nil {
		t.Fatalf("expected corrupt payload to fail")
	}
	if errors.As(err, &unregistered) {
		t.Fatalf("corrupt payload must not look like an unknown type: %v", err)
	}
}

func TestRegistry_RejectsDuplicateAndInvalidRegistration(t *testing.T) {
	registry := NewRegistry()
	decode := func(payload []byte) (domain.Event, error) { return nil, nil }

	if err := registry.Register("Custom", decode); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := registry.Register("Custom", decode); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
	if err := registry.Register("", decode); err == nil {
		t.Fatalf("empty type must fail")
	}
	if err := registry.Register("NilDecoder", nil); err == nil {
		t.Fatalf("nil decoder must fail")
	}
}

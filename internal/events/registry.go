package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/socialcarehq/social-care-backend/internal/domain"
)

// DecodeFunc turns a raw outbox payload back into a typed domain event.
type DecodeFunc func(payload []byte) (domain.Event, error)

type UnregisteredEventTypeError struct {
	EventType string
}

func (e *UnregisteredEventTypeError) Error() string {
	return fmt.Sprintf("no decoder registered for event_type=%s", e.EventType)
}

// Registry maps wire event-type names to decoders. Decoding an unknown
// type fails with UnregisteredEventTypeError, which callers treat
// differently from a payload that is registered but corrupt.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]DecodeFunc
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]DecodeFunc)}
}

func (r *Registry) Register(eventType string, decode DecodeFunc) error {
	if decode == nil {
		return fmt.Errorf("nil decoder")
	}
	if eventType == "" {
		return fmt.Errorf("event type is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decoders[eventType]; exists {
		return fmt.Errorf("decoder already registered for event_type=%s", eventType)
	}
	r.decoders[eventType] = decode
	return nil
}

func (r *Registry) Decode(eventType string, payload []byte) (domain.Event, error) {
	r.mu.RLock()
	decode, ok := r.decoders[eventType]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnregisteredEventTypeError{EventType: eventType}
	}
	return decode(payload)
}

func decodeAs[E domain.Event](payload []byte) (domain.Event, error) {
	var e E
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDefaultRegistry returns a registry preloaded with every event the
// aggregate emits. Additional types can still be registered afterwards.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.EventTypePatientCreated, decodeAs[domain.PatientCreatedEvent])
	r.Register(domain.EventTypeFamilyMemberAdded, decodeAs[domain.FamilyMemberAddedEvent])
	r.Register(domain.EventTypeFamilyMemberRemoved, decodeAs[domain.FamilyMemberRemovedEvent])
	r.Register(domain.EventTypePrimaryCaregiverAssigned, decodeAs[domain.PrimaryCaregiverAssignedEvent])
	r.Register(domain.EventTypeReferralCreated, decodeAs[domain.ReferralCreatedEvent])
	r.Register(domain.EventTypeRightsViolationReported, decodeAs[domain.RightsViolationReportedEvent])
	r.Register(domain.EventTypeAppointmentRegistered, decodeAs[domain.SocialCareAppointmentRegisteredEvent])
	return r
}

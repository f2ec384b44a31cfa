package outbox

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/events"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/types"
)

type fakeOutboxRepo struct {
	mu   sync.Mutex
	rows []*types.OutboxMessage
}

func (f *fakeOutboxRepo) FetchUnprocessed(ctx context.Context, tx *gorm.DB, limit int) ([]*types.OutboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.OutboxMessage
	for _, row := range f.rows {
		if row.ProcessedAt == nil {
			copied := *row
			out = append(out, &copied)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, processedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == id {
			at := processedAt
			row.ProcessedAt = &at
		}
	}
	return nil
}

func (f *fakeOutboxRepo) unprocessedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, row := range f.rows {
		if row.ProcessedAt == nil {
			n++
		}
	}
	return n
}

func (f *fakeOutboxRepo) add(tb testing.TB, event domain.Event) {
	tb.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		tb.Fatalf("marshal event: %v", err)
	}
	f.addRaw(event.EventType(), payload, event.EventOccurredAt())
}

func (f *fakeOutboxRepo) addRaw(eventType string, payload []byte, occurredAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, &types.OutboxMessage{
		ID:         uuid.New(),
		EventType:  eventType,
		Payload:    datatypes.JSON(payload),
		OccurredAt: occurredAt,
	})
}

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func createdEvent(occurredAt time.Time) domain.PatientCreatedEvent {
	return domain.PatientCreatedEvent{
		ID:         uuid.New(),
		PatientID:  uuid.NewString(),
		PersonID:   uuid.NewString(),
		OccurredAt: occurredAt,
	}
}

func TestRelay_DeliversEventsAndMarksProcessed(t *testing.T) {
	repo := &fakeOutboxRepo{}
	now := time.Now().UTC()
	want := []domain.PatientCreatedEvent{
		createdEvent(now.Add(-3 * time.Second)),
		createdEvent(now.Add(-2 * time.Second)),
		createdEvent(now.Add(-1 * time.Second)),
	}
	for _, e := range want {
		repo.add(t, e)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(repo, events.NewDefaultRegistry(), testLogger(t), 10*time.Millisecond, 100)
	relay.Start(ctx)

	sub, err := relay.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	for i, expected := range want {
		select {
		case got := <-sub.Events:
			if got.EventID() != expected.EventID() {
				t.Fatalf("event %d: expected id %s got %s", i, expected.EventID(), got.EventID())
			}
			if got.EventType() != domain.EventTypePatientCreated {
				t.Fatalf("event %d: unexpected type %s", i, got.EventType())
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.unprocessedCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected all rows processed, %d left", repo.unprocessedCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRelay_SkipsUndecodableRowsWithoutStallingTheBatch(t *testing.T) {
	repo := &fakeOutboxRepo{}
	now := time.Now().UTC()

	repo.addRaw("UnknownKind", []byte(`{}`), now.Add(-3*time.Second))
	repo.addRaw(domain.EventTypePatientCreated, []byte(`{corrupt`), now.Add(-2*time.Second))
	valid := createdEvent(now.Add(-1 * time.Second))
	repo.add(t, valid)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(repo, events.NewDefaultRegistry(), testLogger(t), 10*time.Millisecond, 100)
	relay.Start(ctx)

	sub, err := relay.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	select {
	case got := <-sub.Events:
		if got.EventID() != valid.EventID() {
			t.Fatalf("expected the valid event, got %s", got.EventID())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the valid event")
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.unprocessedCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("undecodable rows must be retired, %d left", repo.unprocessedCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRelay_DoesNotPollWithoutSubscribers(t *testing.T) {
	repo := &fakeOutboxRepo{}
	repo.add(t, createdEvent(time.Now().UTC()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(repo, events.NewDefaultRegistry(), testLogger(t), 10*time.Millisecond, 100)
	relay.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	if repo.unprocessedCount() != 1 {
		t.Fatalf("relay must stay idle without subscribers")
	}

	sub, err := relay.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	select {
	case <-sub.Events:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delivery after subscribing")
	}
}

func TestRelay_ClosedSubscriptionChannelIsClosed(t *testing.T) {
	repo := &fakeOutboxRepo{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(repo, events.NewDefaultRegistry(), testLogger(t), 10*time.Millisecond, 100)
	relay.Start(ctx)

	sub, err := relay.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	sub.Close()

	select {
	case _, open := <-sub.Events:
		if open {
			t.Fatalf("expected channel to be closed after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for channel close")
	}
}

func TestRelay_SubscribeAfterStopFails(t *testing.T) {
	repo := &fakeOutboxRepo{}

	ctx, cancel := context.WithCancel(context.Background())
	relay := NewRelay(repo, events.NewDefaultRegistry(), testLogger(t), 10*time.Millisecond, 100)
	relay.Start(ctx)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := relay.Subscribe(context.Background()); err != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected subscribe to fail after relay stop")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

package outbox

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/events"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/repos"
)

// Relay polls the outbox table and fans decoded events out to every
// live subscriber. A single goroutine owns the subscriber set and the
// poll state; Subscribe and teardown talk to it over channels, never
// through shared fields.
//
// Delivery is at-least-once: a row whose processed_at update fails
// after fan-out is redelivered on the next poll, so consumers must be
// idempotent. Running two relay instances against the same outbox
// table duplicates delivery across instances; deploy exactly one.
type Relay struct {
	repo      repos.OutboxRepo
	registry  *events.Registry
	log       *logger.Logger
	interval  time.Duration
	batchSize int

	nextSubID     atomic.Uint64
	subscribeCh   chan *subscriber
	unsubscribeCh chan uint64
	stopped       chan struct{}
}

type subscriber struct {
	id  uint64
	ch  chan domain.Event
	ctx context.Context
}

// Subscription is one consumer's view of the relay. Close releases it;
// closing twice is harmless.
type Subscription struct {
	Events <-chan domain.Event
	cancel context.CancelFunc
}

func (s *Subscription) Close() { s.cancel() }

func NewRelay(repo repos.OutboxRepo, registry *events.Registry, baseLog *logger.Logger, interval time.Duration, batchSize int) *Relay {
	return &Relay{
		repo:          repo,
		registry:      registry,
		log:           baseLog.With("component", "OutboxRelay"),
		interval:      interval,
		batchSize:     batchSize,
		subscribeCh:   make(chan *subscriber),
		unsubscribeCh: make(chan uint64),
		stopped:       make(chan struct{}),
	}
}

// Start launches the relay loop. The loop exits when ctx is cancelled,
// closing every subscriber channel on the way out.
func (r *Relay) Start(ctx context.Context) {
	go r.run(ctx)
}

var ErrRelayStopped = errors.New("outbox relay is stopped")

// Subscribe registers a consumer. Polling only happens while at least
// one subscription is live; an idle relay costs nothing but the ticker.
func (r *Relay) Subscribe(ctx context.Context) (*Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscriber{
		id:  r.nextSubID.Add(1),
		ch:  make(chan domain.Event),
		ctx: subCtx,
	}

	select {
	case r.subscribeCh <- sub:
	case <-r.stopped:
		cancel()
		return nil, ErrRelayStopped
	}

	go func() {
		<-subCtx.Done()
		select {
		case r.unsubscribeCh <- sub.id:
		case <-r.stopped:
		}
	}()

	return &Subscription{Events: sub.ch, cancel: cancel}, nil
}

func (r *Relay) run(ctx context.Context) {
	defer close(r.stopped)

	subs := make(map[uint64]*subscriber)
	defer func() {
		for _, sub := range subs {
			close(sub.ch)
		}
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("Outbox relay started", "interval", r.interval, "batch_size", r.batchSize)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Outbox relay stopping", "reason", ctx.Err())
			return
		case sub := <-r.subscribeCh:
			subs[sub.id] = sub
			r.log.Debug("Subscriber added", "subscriber_id", sub.id, "subscribers", len(subs))
		case id := <-r.unsubscribeCh:
			if sub, ok := subs[id]; ok {
				delete(subs, id)
				close(sub.ch)
				r.log.Debug("Subscriber removed", "subscriber_id", id, "subscribers", len(subs))
			}
		case <-ticker.C:
			if len(subs) == 0 {
				continue
			}
			r.pollOnce(ctx, subs)
		}
	}
}

func (r *Relay) pollOnce(ctx context.Context, subs map[uint64]*subscriber) {
	rows, err := r.repo.FetchUnprocessed(ctx, nil, r.batchSize)
	if err != nil {
		r.log.Warn("Fetching unprocessed outbox rows failed", "error", err)
		return
	}

	for _, row := range rows {
		event, err := r.registry.Decode(row.EventType, row.Payload)
		if err != nil {
			// Deliberate data-loss policy: a row that cannot be
			// decoded is logged and retired, never retried and
			// never allowed to stall the batch.
			var unregistered *events.UnregisteredEventTypeError
			if errors.As(err, &unregistered) {
				r.log.Warn("Unknown event type in outbox, skipping row", "message_id", row.ID, "event_type", row.EventType)
			} else {
				r.log.Warn("Corrupt outbox payload, skipping row", "message_id", row.ID, "event_type", row.EventType, "error", err)
			}
			r.markProcessed(ctx, row.ID)
			continue
		}

		for id, sub := range subs {
			select {
			case sub.ch <- event:
			case <-sub.ctx.Done():
				delete(subs, id)
				close(sub.ch)
				r.log.Debug("Subscriber dropped mid-delivery", "subscriber_id", id)
			case <-ctx.Done():
				return
			}
		}

		r.markProcessed(ctx, row.ID)
	}
}

func (r *Relay) markProcessed(ctx context.Context, id uuid.UUID) {
	if err := r.repo.MarkProcessed(ctx, nil, id, time.Now()); err != nil {
		r.log.Warn("Marking outbox row processed failed, row will be redelivered", "message_id", id, "error", err)
	}
}

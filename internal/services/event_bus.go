package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/socialcarehq/social-care-backend/internal/domain"
	"github.com/socialcarehq/social-care-backend/internal/logger"
)

// EventBus is the best-effort realtime path: events published here go
// out immediately and are lost if nobody is listening. The durable path
// is the outbox table; every event always travels that one too.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

type busEnvelope struct {
	EventType  string          `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type redisEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewRedisEventBus(log *logger.Logger, addr, channel string) (EventBus, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if channel == "" {
		channel = "patient-events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisEventBus{
		log:     log.With("service", "RedisEventBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisEventBus) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(busEnvelope{
		EventType:  event.EventType(),
		OccurredAt: event.EventOccurredAt(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisEventBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

type noopEventBus struct{}

// NewNoopEventBus is the bus used when no redis address is configured.
func NewNoopEventBus() EventBus { return noopEventBus{} }

func (noopEventBus) Publish(ctx context.Context, event domain.Event) error { return nil }

func (noopEventBus) Close() error { return nil }

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxMessage rows are written in the same transaction as the
// aggregate they describe and consumed by the outbox relay.
// ProcessedAt stays NULL until the relay has fanned the row out.
type OutboxMessage struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventType   string         `gorm:"column:event_type;not null;index" json:"event_type"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	OccurredAt  time.Time      `gorm:"column:occurred_at;not null" json:"occurred_at"`
	ProcessedAt *time.Time     `gorm:"column:processed_at;index" json:"processed_at,omitempty"`
}

func (OutboxMessage) TableName() string { return "outbox_messages" }

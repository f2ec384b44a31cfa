package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/types"
)

type OutboxRepo interface {
	FetchUnprocessed(ctx context.Context, tx *gorm.DB, limit int) ([]*types.OutboxMessage, error)
	MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, processedAt time.Time) error
}

type outboxRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutboxRepo(db *gorm.DB, baseLog *logger.Logger) OutboxRepo {
	repoLog := baseLog.With("repo", "OutboxRepo")
	return &outboxRepo{db: db, log: repoLog}
}

// FetchUnprocessed returns up to limit rows whose processed_at is still
// NULL, oldest first so delivery order follows occurrence order.
func (or *outboxRepo) FetchUnprocessed(ctx context.Context, tx *gorm.DB, limit int) ([]*types.OutboxMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.OutboxMessage
	if err := transaction.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("occurred_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *outboxRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, processedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.OutboxMessage{}).
		Where("id = ?", id).
		Update("processed_at", processedAt).Error; err != nil {
		or.log.Error("Failed to mark outbox message processed", "message_id", id, "error", err)
		return err
	}
	return nil
}

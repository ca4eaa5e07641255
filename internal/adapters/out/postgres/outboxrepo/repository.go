// Package outboxrepo persists integration events in the outbox table. Rows
// are written inside the same transaction as the aggregate change that
// produced them and drained by the relay job after commit.
package outboxrepo

import (
	"context"
	"time"

	"orders/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxMessageDTO represents one stored integration event.
type OutboxMessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType   string    `gorm:"not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"index"`
	PublishedAt *time.Time
}

// TableName overrides GORM's default naming convention.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a message within the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	dto := OutboxMessageDTO{
		ID:          message.ID,
		EventType:   message.EventType,
		Payload:     message.Payload,
		CreatedAt:   message.CreatedAt,
		PublishedAt: message.PublishedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FetchUnpublished returns up to limit unpublished messages, oldest first.
func (r *GormOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:          dto.ID,
			EventType:   dto.EventType,
			Payload:     dto.Payload,
			CreatedAt:   dto.CreatedAt,
			PublishedAt: dto.PublishedAt,
		})
	}
	return messages, nil
}

// MarkPublished records the publish time for the given messages.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("published_at", &now).Error
}

package repository

import (
	"context"
	"fmt"
	"time"

	"fpvsettling/ai-gateway/internal/domain"
)

// LogRepository receives a copy of every recorded game log event.
type LogRepository interface {
	SendLog(ctx context.Context, event domain.LogEvent) error
	Close() error
}

// EventPublisher is the subset of kafka.Producer the repository needs.
type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
	Topic() string
	Close() error
}

type KafkaLogRepository struct {
	producer EventPublisher
	now      func() time.Time
}

func NewKafkaLogRepository(producer EventPublisher) *KafkaLogRepository {
	return &KafkaLogRepository{
		producer: producer,
		now:      time.Now,
	}
}

type logMessage struct {
	domain.LogEvent
	Source     string    `json:"source"`
	Origin     string    `json:"origin"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (r *KafkaLogRepository) SendLog(ctx context.Context, event domain.LogEvent) error {
	event = event.WithDefaults()
	receivedAt := r.now()

	msg := logMessage{
		LogEvent:   event,
		Source:     event.SourceName(),
		Origin:     event.Origin(),
		ReceivedAt: receivedAt,
	}

	key := fmt.Sprintf("%s-%d", event.Origin(), receivedAt.UnixNano())
	if err := r.producer.PublishEvent(ctx, key, msg); err != nil {
		return fmt.Errorf("failed to publish log to %s: %w", r.producer.Topic(), err)
	}
	return nil
}

func (r *KafkaLogRepository) Close() error {
	return r.producer.Close()
}

// NopLogRepository is used when no brokers are configured.
type NopLogRepository struct{}

func (NopLogRepository) SendLog(context.Context, domain.LogEvent) error { return nil }

func (NopLogRepository) Close() error { return nil }

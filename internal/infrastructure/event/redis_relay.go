package event

import (
	"context"
	"fmt"

	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher is the subset of redis.Cmdable the relay needs
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisRelay forwards completion events to a Redis pub/sub channel.
// It is subscribed on the bus like any other handler.
type RedisRelay struct {
	client     RedisPublisher
	channel    string
	serializer *EventSerializer
	eventTypes []string
	logger     *zap.Logger
}

// NewRedisRelay creates a relay publishing eventTypes to channel
func NewRedisRelay(client RedisPublisher, channel string, serializer *EventSerializer, eventTypes []string, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{
		client:     client,
		channel:    channel,
		serializer: serializer,
		eventTypes: eventTypes,
		logger:     logger,
	}
}

// EventTypes returns the relayed event types
func (r *RedisRelay) EventTypes() []string {
	return r.eventTypes
}

// Handle publishes the event envelope. Also available per aggregate on "<channel>:<aggregate type>".
func (r *RedisRelay) Handle(ctx context.Context, event shared.DomainEvent) error {
	data, err := r.serializer.Serialize(event)
	if err != nil {
		return err
	}

	channels := []string{r.channel, fmt.Sprintf("%s:%s", r.channel, event.AggregateType())}
	for _, ch := range channels {
		receivers, err := r.client.Publish(ctx, ch, data).Result()
		if err != nil {
			return fmt.Errorf("failed to publish to %s: %w", ch, err)
		}
		logger.WithLogger(ctx, r.logger).Debug("event relayed",
			zap.String("channel", ch),
			zap.String("event_type", event.EventType()),
			zap.Int64("receivers", receivers),
		)
	}
	return nil
}

var _ shared.EventHandler = (*RedisRelay)(nil)

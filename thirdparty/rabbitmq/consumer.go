package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Invalidator drops cache entries.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Consumer drops cache keys named by marketplace events. Replicas share one durable queue, so
// each event is handled by a single replica; that is enough because they also share one redis.
// Mutations made through this service already clear their keys before publishing.
type Consumer struct {
	conn        *amqp091.Connection
	channel     *amqp091.Channel
	invalidator Invalidator
}

func NewConsumer(host string, port int, user, password string, invalidator Invalidator) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(
		constant.InvalidateQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	err = channel.QueueBind(
		constant.InvalidateQueue,
		"#",
		constant.EventExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:        conn,
		channel:     channel,
		invalidator: invalidator,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	err := c.channel.Qos(10, 0, false)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		constant.InvalidateQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var event model.MarketplaceEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Error("[Consumer] unmarshal event", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	if err := c.invalidator.Invalidate(ctx, CacheKeys(event)...); err != nil {
		// no requeue: a redis outage would redeliver in a tight loop, and the keys expire with their TTL
		logger.Error("[Consumer] invalidate", zap.String("event_id", event.EventID), zap.Strings("keys", CacheKeys(event)), zap.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	_ = msg.Ack(false)
	logger.Debug("[Consumer] cache invalidated", zap.String("type", event.Type), zap.Strings("resources", event.Resources))
}

// CacheKeys resolves the resources named by an event to cache keys.
func CacheKeys(event model.MarketplaceEvent) []string {
	keys := make([]string, 0, len(event.Resources))
	for _, r := range event.Resources {
		if event.UserID == "" {
			keys = append(keys, constant.SharedCacheKey(r))
			continue
		}
		keys = append(keys, constant.UserCacheKey(event.UserID, r))
	}
	return keys
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	err = channel.ExchangeDeclare(
		constant.EventExchange, // name
		"topic",                // type
		true,                   // durable
		false,                  // auto-delete
		false,                  // internal
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

// NewEvent fills the envelope fields of a marketplace event.
func NewEvent(eventType, userID string, resources ...string) model.MarketplaceEvent {
	return model.MarketplaceEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		Resources:  resources,
		OccurredAt: time.Now().UTC(),
	}
}

// PublishEvent routes the event by its type. A nil publisher drops the event, which keeps
// services usable without a broker.
func (p *Publisher) PublishEvent(ctx context.Context, event model.MarketplaceEvent) error {
	if p == nil || p.channel == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		constant.EventExchange, // exchange
		event.Type,             // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
}

// Dispatch drops the cache keys named by the events and then publishes them. Replicas share one
// redis, so the keys of every affected user are gone before the call returns, broker or not.
// Invalidation failures are logged; the returned error only reports publishing.
func (p *Publisher) Dispatch(ctx context.Context, invalidator Invalidator, events ...model.MarketplaceEvent) error {
	keys := make([]string, 0, len(events)*2)
	for _, e := range events {
		keys = append(keys, CacheKeys(e)...)
	}
	if len(keys) > 0 {
		if err := invalidator.Invalidate(ctx, keys...); err != nil {
			logger.Ctx(ctx).Warn("[Dispatch] invalidate", zap.Strings("keys", keys), zap.String("error", err.Error()))
		}
	}

	var errs error
	for _, e := range events {
		if err := p.PublishEvent(ctx, e); err != nil {
			errs = errors.Join(errs, fmt.Errorf("publish %s: %w", e.Type, err))
		}
	}
	return errs
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

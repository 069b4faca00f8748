package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LocationProducer streams driver positions, keyed by driver so one driver stays on one partition.
type LocationProducer struct {
	w      messageWriter
	inbox  chan kafka.Message
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewLocationProducer(brokers []string, buf int) *LocationProducer {
	return newLocationProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        constant.TopicDriverLocation,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}, buf)
}

func newLocationProducer(w messageWriter, buf int) *LocationProducer {
	return &LocationProducer{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start drains the inbox until Close is called, then flushes what is left.
func (p *LocationProducer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				logger.Warn("[LocationProducer] write", zap.String("key", string(m.Key)), zap.String("error", err.Error()))
			}
		}
		if err := p.w.Close(); err != nil {
			logger.Warn("[LocationProducer] close writer", zap.String("error", err.Error()))
		}
	}()
}

// PublishLocation never blocks the tracker: when the inbox is full the position is dropped,
// the next one supersedes it anyway.
func (p *LocationProducer) PublishLocation(ctx context.Context, loc model.DriverLocation) error {
	value, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(loc.DriverID),
		Value: value,
		Time:  time.Now(),
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil
	}
	select {
	case p.inbox <- msg:
	default:
		logger.Warn("[LocationProducer] inbox full, dropping position", zap.String("driver_id", loc.DriverID))
	}
	return nil
}

// Close stops accepting positions and waits for the flush. Start must have been called.
func (p *LocationProducer) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}

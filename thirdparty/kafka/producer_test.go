package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/muhammadheryan/food-delivery/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestLocationProducer_DropsWhenFull(t *testing.T) {
	w := &recordingWriter{}
	p := newLocationProducer(w, 1)

	// not started yet, so the inbox holds exactly one position
	require.NoError(t, p.PublishLocation(context.Background(), model.DriverLocation{DriverID: "d1", Position: model.Position{Latitude: 1}}))
	require.NoError(t, p.PublishLocation(context.Background(), model.DriverLocation{DriverID: "d1", Position: model.Position{Latitude: 2}}))

	p.Start()
	p.Close()

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "d1", string(w.msgs[0].Key))
	var got model.DriverLocation
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, float64(1), got.Position.Latitude)
	assert.True(t, w.closed)
}

func TestLocationProducer_FlushesOnClose(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker unreachable")}
	p := newLocationProducer(w, 8)
	for _, id := range []string{"d1", "d2", "d3"} {
		require.NoError(t, p.PublishLocation(context.Background(), model.DriverLocation{DriverID: id}))
	}

	p.Start()
	p.Close()

	// write failures are logged, the rest of the inbox still drains
	require.Len(t, w.msgs, 3)
	assert.Equal(t, "d3", string(w.msgs[2].Key))
	assert.True(t, w.closed)

	require.NoError(t, p.PublishLocation(context.Background(), model.DriverLocation{DriverID: "d4"}))
	assert.Len(t, w.msgs, 3)
	p.Close()
}

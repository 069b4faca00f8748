package geolocation_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, ch <-chan geolocation.Event) (geolocation.Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return geolocation.Event{}, false
	}
}

func TestStreamSource_Watch(t *testing.T) {
	r, w := io.Pipe()
	src := geolocation.NewStreamSource(r, time.Second)

	events, release, err := src.Watch(context.Background())
	require.NoError(t, err)
	defer release()

	go func() {
		_, _ = io.WriteString(w, "{\"latitude\":12.5,\"longitude\":77.25}\nnot json\n{\"error\":3}\n")
		_ = w.Close()
	}()

	ev, ok := next(t, events)
	require.True(t, ok)
	assert.Nil(t, ev.Err)
	assert.Equal(t, model.Position{Latitude: 12.5, Longitude: 77.25}, ev.Position)

	ev, ok = next(t, events)
	require.True(t, ok)
	require.NotNil(t, ev.Err)
	assert.Equal(t, geolocation.Timeout, ev.Err.Code)

	_, ok = next(t, events)
	assert.False(t, ok, "watch stays open after the feed ended")
}

func TestStreamSource_CurrentPositionTimesOut(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := geolocation.NewStreamSource(r, 20*time.Millisecond)

	_, err := src.CurrentPosition(context.Background())
	var geoErr *geolocation.Error
	require.True(t, errors.As(err, &geoErr))
	assert.Equal(t, geolocation.Timeout, geoErr.Code)
}

func TestStreamSource_ReleaseIsIdempotent(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := geolocation.NewStreamSource(r, time.Second)

	events, release, err := src.Watch(context.Background())
	require.NoError(t, err)
	release()
	release()

	_, ok := <-events
	assert.False(t, ok)
}

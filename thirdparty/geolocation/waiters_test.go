package geolocation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingWaiters(s *StreamSource) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}

func TestCurrentPosition_ForgetsAbandonedRequests(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := NewStreamSource(r, 20*time.Millisecond)

	_, err := s.CurrentPosition(context.Background())
	var geoErr *Error
	require.True(t, errors.As(err, &geoErr))
	assert.Equal(t, Timeout, geoErr.Code)
	assert.Equal(t, 0, pendingWaiters(s))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.CurrentPosition(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, pendingWaiters(s))
}

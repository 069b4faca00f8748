package paymentgateway

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrMissingKey = errors.New("payment gateway publishable key is not configured")
	ErrInvalidKey = errors.New("payment gateway publishable key is malformed")
)

// Gateway is the card payment SDK as seen by the payment workflow.
type Gateway interface {
	Init(ctx context.Context) error
}

// SDK initialises once per process from the publishable key; a failed init is retried on the next call.
type SDK struct {
	publishableKey string
	mu             sync.Mutex
	ready          bool
}

func NewSDK(publishableKey string) *SDK {
	return &SDK{publishableKey: strings.TrimSpace(publishableKey)}
}

func (s *SDK) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.publishableKey == "" {
		return ErrMissingKey
	}
	if !strings.HasPrefix(s.publishableKey, "pk_test_") && !strings.HasPrefix(s.publishableKey, "pk_live_") {
		return ErrInvalidKey
	}
	s.ready = true
	return nil
}

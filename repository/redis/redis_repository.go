package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/muhammadheryan/food-delivery/model"
	goredis "github.com/redis/go-redis/v9"
)

// Repository is the query cache and the session store.
type Repository interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("session not found")

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

// GetJSON decodes the cached value of key into dest. A miss returns false and no error.
func (r *redis) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// a value we cannot read is as good as a miss
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *redis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redis) SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.ID), raw, ttl).Err()
}

func (r *redis) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

package geolocation

import (
	"context"
	"fmt"

	"github.com/muhammadheryan/food-delivery/model"
)

// Error codes follow the browser geolocation API.
const (
	PermissionDenied    = 1
	PositionUnavailable = 2
	Timeout             = 3
)

type Error struct {
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("geolocation error code %d", e.Code)
}

// Event is either a position or an error from a watch.
type Event struct {
	Position model.Position
	Err      *Error
}

// Source hands out position watches and one-shot position requests.
type Source interface {
	// Watch starts a watch. The returned release func stops it and is safe to call more than once.
	Watch(ctx context.Context) (<-chan Event, func(), error)
	CurrentPosition(ctx context.Context) (model.Position, error)
}

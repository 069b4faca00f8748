package delivery

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/geolocation"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// LocationPusher is the part of the marketplace the tracker reports to.
type LocationPusher interface {
	PushLocation(ctx context.Context, pos model.Position) error
}

// LocationSink receives a copy of every pushed position, e.g. the Kafka location stream.
type LocationSink interface {
	PublishLocation(ctx context.Context, loc model.DriverLocation) error
}

// GeoMessage is the user facing text for a geolocation error code.
func GeoMessage(code int) string {
	switch code {
	case geolocation.PermissionDenied:
		return "location permission denied, allow location access to share your position"
	case geolocation.PositionUnavailable:
		return "location information is unavailable"
	case geolocation.Timeout:
		return "location request timed out, retrying shortly"
	default:
		return "an unknown location error occurred"
	}
}

type Tracker struct {
	Source     geolocation.Source
	Pusher     LocationPusher
	Sink       LocationSink
	DriverID   string
	RetryDelay time.Duration
	// OnStatus receives user facing status lines. Optional.
	OnStatus func(msg string)
}

// Run shares positions until ctx ends or the source stops. The watch is always released on return.
// A timeout schedules one delayed one-shot position request; further timeouts while it is pending are ignored.
func (t *Tracker) Run(ctx context.Context) error {
	events, release, err := t.Source.Watch(ctx)
	if err != nil {
		return err
	}
	defer release()

	var (
		retry        <-chan time.Time
		retryTimer   *time.Timer
		retryPending bool
	)
	defer func() {
		if retryTimer != nil {
			retryTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err == nil {
				t.push(ctx, ev.Position)
				continue
			}
			t.status(GeoMessage(ev.Err.Code))
			if ev.Err.Code == geolocation.Timeout && !retryPending {
				retryPending = true
				retryTimer = time.NewTimer(t.RetryDelay)
				retry = retryTimer.C
			}

		case <-retry:
			retryPending = false
			retry = nil
			pos, err := t.Source.CurrentPosition(ctx)
			if err != nil {
				var geoErr *geolocation.Error
				if stderrors.As(err, &geoErr) {
					t.status(GeoMessage(geoErr.Code))
				} else {
					logger.Ctx(ctx).Warn("[Tracker] current position", zap.String("error", err.Error()))
				}
				continue
			}
			t.push(ctx, pos)
		}
	}
}

func (t *Tracker) push(ctx context.Context, pos model.Position) {
	if err := t.Pusher.PushLocation(ctx, pos); err != nil {
		logger.Ctx(ctx).Error("[Tracker] push location", zap.String("error", err.Error()))
		t.status("could not send your location, will try with the next update")
		return
	}
	if t.Sink == nil {
		return
	}
	loc := model.DriverLocation{DriverID: t.DriverID, Position: pos, At: time.Now().Unix()}
	if err := t.Sink.PublishLocation(ctx, loc); err != nil {
		logger.Ctx(ctx).Warn("[Tracker] publish location", zap.String("error", err.Error()))
	}
}

func (t *Tracker) status(msg string) {
	if t.OnStatus != nil {
		t.OnStatus(msg)
	}
}

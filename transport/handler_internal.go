package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// IngestEvent handler
// @Summary Marketplace webhook
// @Description Drops the cache entries named by the event and fans it out to the other replicas
// @Tags Internal
// @Accept json
// @Produce json
// @Param request body model.MarketplaceEvent true "Event"
// @Success 200 {object} successResponse
// @Router /internal/events [post]
func (s *RestHandler) IngestEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var event model.MarketplaceEvent
	if err := decodeJSON(r, &event); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(event.Type) == "" || len(event.Resources) == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := s.Cache.Invalidate(ctx, rabbitmq.CacheKeys(event)...); err != nil {
		logger.Ctx(ctx).Error("[IngestEvent] invalidate", zap.String("error", err.Error()))
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}
	if err := s.Publisher.PublishEvent(ctx, event); err != nil {
		logger.Ctx(ctx).Error("[IngestEvent] publish", zap.String("error", err.Error()))
	}

	writeSuccess(w, map[string]string{"event_id": event.EventID})
}

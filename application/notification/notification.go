package notification

import (
	"context"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// NotificationApp is one feed for every role; the role only selects the cache entry.
type NotificationApp interface {
	List(ctx context.Context, role constant.Role) (*model.NotificationFeed, error)
	MarkRead(ctx context.Context, role constant.Role, notificationID string) (*model.NotificationFeed, error)
	// ClearAll removes every notification of the caller. It backs "mark all as read".
	ClearAll(ctx context.Context, role constant.Role) error
}

type notificationAppImpl struct {
	config          *config.Config
	notificationAPI marketplace.NotificationAPI
	redisRepo       redisrepo.Repository
}

func NewNotificationApp(config *config.Config, notificationAPI marketplace.NotificationAPI, redisRepo redisrepo.Repository) NotificationApp {
	return &notificationAppImpl{config: config, notificationAPI: notificationAPI, redisRepo: redisRepo}
}

func UnreadCount(items []model.Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

func newFeed(items []model.Notification) *model.NotificationFeed {
	if items == nil {
		items = []model.Notification{}
	}
	return &model.NotificationFeed{Items: items, Unread: UnreadCount(items)}
}

func (s *notificationAppImpl) key(ctx context.Context, role constant.Role) (string, error) {
	session, ok := utilsContext.GetSession(ctx)
	if !ok || session.UserID == "" {
		return "", errors.SetCustomError(constant.ErrUnauthorize)
	}
	resource, ok := constant.NotificationResource[role]
	if !ok {
		return "", errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if session.Role != role {
		return "", errors.SetCustomError(constant.ErrForbidden)
	}
	return constant.UserCacheKey(session.UserID, resource), nil
}

func (s *notificationAppImpl) items(ctx context.Context, key string) ([]model.Notification, error) {
	items, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.Notification, error) {
		return s.notificationAPI.ListNotifications(ctx)
	})
	if err != nil {
		logger.Ctx(ctx).Error("[Notifications] err notificationAPI.ListNotifications", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return items, nil
}

func (s *notificationAppImpl) List(ctx context.Context, role constant.Role) (*model.NotificationFeed, error) {
	key, err := s.key(ctx, role)
	if err != nil {
		return nil, err
	}
	items, err := s.items(ctx, key)
	if err != nil {
		return nil, err
	}
	return newFeed(items), nil
}

// MarkRead patches the cached feed first and drops the entry again if the marketplace refuses.
func (s *notificationAppImpl) MarkRead(ctx context.Context, role constant.Role, notificationID string) (*model.NotificationFeed, error) {
	key, err := s.key(ctx, role)
	if err != nil {
		return nil, err
	}
	items, err := s.items(ctx, key)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == notificationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if items[idx].Read {
		return newFeed(items), nil
	}

	items[idx].Read = true
	if err := s.redisRepo.SetJSON(ctx, key, items, s.config.Cache.TTL); err != nil {
		logger.Ctx(ctx).Warn("[MarkRead] patch cached feed", zap.String("error", err.Error()))
	}

	if err := s.notificationAPI.MarkNotificationRead(ctx, notificationID); err != nil {
		logger.Ctx(ctx).Error("[MarkRead] err notificationAPI.MarkNotificationRead", zap.String("error", err.Error()))
		redisrepo.InvalidateQuietly(ctx, s.redisRepo, key)
		return nil, marketplace.MapError(err, nil)
	}
	return newFeed(items), nil
}

func (s *notificationAppImpl) ClearAll(ctx context.Context, role constant.Role) error {
	key, err := s.key(ctx, role)
	if err != nil {
		return err
	}
	if err := s.notificationAPI.DeleteAllNotifications(ctx); err != nil {
		logger.Ctx(ctx).Error("[ClearAll] err notificationAPI.DeleteAllNotifications", zap.String("error", err.Error()))
		return marketplace.MapError(err, nil)
	}
	redisrepo.InvalidateQuietly(ctx, s.redisRepo, key)
	return nil
}

package catalog

import (
	"context"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

type CatalogApp interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID string, filter model.MenuFilter) ([]model.MenuItem, error)
}

type catalogAppImpl struct {
	config     *config.Config
	catalogAPI marketplace.CatalogAPI
	redisRepo  redisrepo.Repository
}

func NewCatalogApp(config *config.Config, catalogAPI marketplace.CatalogAPI, redisRepo redisrepo.Repository) CatalogApp {
	return &catalogAppImpl{config: config, catalogAPI: catalogAPI, redisRepo: redisRepo}
}

func (s *catalogAppImpl) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	key := constant.SharedCacheKey(constant.ResourceRestaurants)
	res, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.Restaurant, error) {
		return s.catalogAPI.ListRestaurants(ctx)
	})
	if err != nil {
		logger.Ctx(ctx).Error("[ListRestaurants] err catalogAPI.ListRestaurants", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return res, nil
}

func (s *catalogAppImpl) ListMenu(ctx context.Context, restaurantID string, filter model.MenuFilter) ([]model.MenuItem, error) {
	key := constant.SharedCacheKey(constant.MenuResource(restaurantID))
	items, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.MenuItem, error) {
		return s.catalogAPI.ListMenu(ctx, restaurantID)
	})
	if err != nil {
		logger.Ctx(ctx).Error("[ListMenu] err catalogAPI.ListMenu", zap.String("restaurant_id", restaurantID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return FilterMenu(items, filter), nil
}

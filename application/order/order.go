package order

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	validatorx "github.com/muhammadheryan/food-delivery/utils/validator"
	"go.uber.org/zap"
)

const directionsEmbedURL = "https://www.google.com/maps/embed/v1/directions"

type OrderApp interface {
	ListOrders(ctx context.Context) ([]model.OrderView, error)
	ListOwnerOrders(ctx context.Context) ([]model.OrderView, error)
	GetOrder(ctx context.Context, orderID string) (*model.OrderView, error)
	CancelOrder(ctx context.Context, orderID, reason string) (*model.OrderView, error)
	UpdateStatus(ctx context.Context, orderID string, status constant.OrderStatus) (*model.OrderView, error)
	TrackRoute(ctx context.Context, orderID string) (*model.TrackRoute, error)
	SubmitReview(ctx context.Context, req *model.ReviewRequest) error
}

type orderAppImpl struct {
	config    *config.Config
	orderAPI  marketplace.OrderAPI
	redisRepo redisrepo.Repository
	publisher *rabbitmq.Publisher
}

func NewOrderApp(config *config.Config, orderAPI marketplace.OrderAPI, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{config: config, orderAPI: orderAPI, redisRepo: redisRepo, publisher: publisher}
}

func (s *orderAppImpl) ListOrders(ctx context.Context) ([]model.OrderView, error) {
	return s.list(ctx, "[ListOrders]", constant.ResourceOrders, s.orderAPI.ListOrders)
}

func (s *orderAppImpl) ListOwnerOrders(ctx context.Context) ([]model.OrderView, error) {
	return s.list(ctx, "[ListOwnerOrders]", constant.ResourceOwnerOrders, s.orderAPI.ListOwnerOrders)
}

func (s *orderAppImpl) list(ctx context.Context, op, resource string, fetch func(context.Context) ([]model.Order, error)) ([]model.OrderView, error) {
	key, ok := utilsContext.CacheKey(ctx, resource)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	orders, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.Order, error) {
		return fetch(ctx)
	})
	if err != nil {
		logger.Ctx(ctx).Error(op+" fetch orders", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return newViews(orders), nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID string) (*model.OrderView, error) {
	order, err := s.fetch(ctx, "[GetOrder]", orderID)
	if err != nil {
		return nil, err
	}
	return &model.OrderView{Order: *order, Actions: Actions(order.Status)}, nil
}

// fetch always reads through to the marketplace; status gates must not act on a cached status.
func (s *orderAppImpl) fetch(ctx context.Context, op, orderID string) (*model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	order, err := s.orderAPI.GetOrder(ctx, orderID)
	if err != nil {
		logger.Ctx(ctx).Error(op+" err orderAPI.GetOrder", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return order, nil
}

func (s *orderAppImpl) CancelOrder(ctx context.Context, orderID, reason string) (*model.OrderView, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidReason)
	}

	current, err := s.fetch(ctx, "[CancelOrder]", orderID)
	if err != nil {
		return nil, err
	}
	if !CanCancel(current.Status) {
		logger.Ctx(ctx).Info("[CancelOrder] not cancellable", zap.String("order_id", orderID), zap.String("status", string(current.Status)))
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	order, err := s.orderAPI.CancelOrder(ctx, model.CancelOrderRequest{OrderID: orderID, Reason: reason})
	if err != nil {
		logger.Ctx(ctx).Error("[CancelOrder] err orderAPI.CancelOrder", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusConflict: constant.ErrInvalidOrderStatus})
	}
	if order.ID == "" {
		order = current
	}
	order.Status = constant.OrderStatusCancelled
	if order.CancellationReason == "" {
		order.CancellationReason = reason
	}

	events := []model.MarketplaceEvent{rabbitmq.NewEvent(constant.EventOrderCancelled, userID, constant.ResourceOrders)}
	if ownerID := current.OwnerID(); ownerID != "" {
		events = append(events, rabbitmq.NewEvent(constant.EventOrderCancelled, ownerID, constant.ResourceOwnerOrders, constant.ResourceRestaurantNotifications))
	}
	s.dispatch(ctx, "[CancelOrder]", orderID, events...)

	return &model.OrderView{Order: *order, Actions: Actions(order.Status)}, nil
}

func (s *orderAppImpl) UpdateStatus(ctx context.Context, orderID string, status constant.OrderStatus) (*model.OrderView, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	current, err := s.fetch(ctx, "[UpdateStatus]", orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		logger.Ctx(ctx).Info("[UpdateStatus] transition rejected", zap.String("from", string(current.Status)), zap.String("to", string(status)))
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	order, err := s.orderAPI.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		logger.Ctx(ctx).Error("[UpdateStatus] err orderAPI.UpdateOrderStatus", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusConflict: constant.ErrInvalidOrderStatus})
	}
	if order.ID == "" {
		order = current
	}
	order.Status = status

	events := []model.MarketplaceEvent{rabbitmq.NewEvent(constant.EventOrderStatus, userID, constant.ResourceOwnerOrders)}
	if customerID := current.User.ID; customerID != "" {
		events = append(events, rabbitmq.NewEvent(constant.EventOrderStatus, customerID, constant.ResourceOrders, constant.ResourceCustomerNotifications))
	}
	for i := range events {
		events[i].Attributes = map[string]string{"status": string(status)}
	}
	s.dispatch(ctx, "[UpdateStatus]", orderID, events...)

	return &model.OrderView{Order: *order, Actions: Actions(order.Status)}, nil
}

// dispatch clears every affected user's cached views and announces the change.
func (s *orderAppImpl) dispatch(ctx context.Context, op, orderID string, events ...model.MarketplaceEvent) {
	for i := range events {
		if events[i].Attributes == nil {
			events[i].Attributes = map[string]string{}
		}
		events[i].Attributes["order_id"] = orderID
	}
	if err := s.publisher.Dispatch(ctx, s.redisRepo, events...); err != nil {
		logger.Ctx(ctx).Error(op+" publish", zap.String("order_id", orderID), zap.String("error", err.Error()))
	}
}

// TrackRoute never fails on missing map data; the route message says what is missing instead.
func (s *orderAppImpl) TrackRoute(ctx context.Context, orderID string) (*model.TrackRoute, error) {
	order, err := s.fetch(ctx, "[TrackRoute]", orderID)
	if err != nil {
		return nil, err
	}
	if !CanTrack(order.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	return BuildRoute(order, s.config.Maps.APIKey), nil
}

// BuildRoute draws a route from the restaurant to the delivery address.
func BuildRoute(order *model.Order, apiKey string) *model.TrackRoute {
	destination := order.Address
	if destination == "" {
		destination = order.User.Address
	}
	route := &model.TrackRoute{
		OrderID:     order.ID,
		Origin:      order.Restaurant.Address,
		Destination: destination,
	}

	switch {
	case apiKey == "":
		route.Message = "map is not available right now"
	case route.Origin == "" || route.Destination == "":
		route.Message = "address details are missing for this order"
	default:
		q := url.Values{}
		q.Set("key", apiKey)
		q.Set("origin", route.Origin)
		q.Set("destination", route.Destination)
		route.DirectionsURL = directionsEmbedURL + "?" + q.Encode()
	}
	return route
}

func (s *orderAppImpl) SubmitReview(ctx context.Context, req *model.ReviewRequest) error {
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetValidationError(validatorx.FieldErrors(err))
	}

	order, err := s.fetch(ctx, "[SubmitReview]", req.OrderID)
	if err != nil {
		return err
	}
	if !CanReview(order.Status) {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.orderAPI.AddReview(ctx, *req); err != nil {
		logger.Ctx(ctx).Error("[SubmitReview] err orderAPI.AddReview", zap.String("error", err.Error()))
		return marketplace.MapError(err, nil)
	}
	return nil
}

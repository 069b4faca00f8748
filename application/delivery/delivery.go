package delivery

import (
	"context"
	"net/http"
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

type DeliveryApp interface {
	ListDeliveries(ctx context.Context) ([]model.DeliveryAssignment, error)
	AssignDriver(ctx context.Context, orderID, driverID string) (*model.DeliveryAssignment, error)
	SendOTP(ctx context.Context, orderID string) (*model.OTPResponse, error)
	MarkDelivered(ctx context.Context, orderID string) (*model.DeliveryAssignment, error)
	UpdateLocation(ctx context.Context, pos model.Position) error
}

type deliveryAppImpl struct {
	config      *config.Config
	deliveryAPI marketplace.DeliveryAPI
	redisRepo   redisrepo.Repository
	publisher   *rabbitmq.Publisher
}

func NewDeliveryApp(config *config.Config, deliveryAPI marketplace.DeliveryAPI, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) DeliveryApp {
	return &deliveryAppImpl{config: config, deliveryAPI: deliveryAPI, redisRepo: redisRepo, publisher: publisher}
}

// CanComplete gates both the OTP request and the delivered confirmation.
func CanComplete(s constant.OrderStatus) bool {
	return s == constant.OrderStatusPending || s == constant.OrderStatusOutForDelivery
}

// Status prefers the assignment's own status and falls back to the embedded order.
func Status(d model.DeliveryAssignment) constant.OrderStatus {
	if d.Status == "" && d.Order != nil {
		return d.Order.Status
	}
	return d.Status
}

func orderIDOf(d model.DeliveryAssignment) string {
	if d.OrderID != "" {
		return d.OrderID
	}
	if d.Order != nil {
		return d.Order.ID
	}
	return ""
}

func (s *deliveryAppImpl) ListDeliveries(ctx context.Context) ([]model.DeliveryAssignment, error) {
	key, ok := utilsContext.CacheKey(ctx, constant.ResourceDeliveries)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	res, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.DeliveryAssignment, error) {
		return s.deliveryAPI.ListDeliveries(ctx)
	})
	if err != nil {
		logger.Ctx(ctx).Error("[ListDeliveries] err deliveryAPI.ListDeliveries", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return res, nil
}

func (s *deliveryAppImpl) AssignDriver(ctx context.Context, orderID, driverID string) (*model.DeliveryAssignment, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(driverID) == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	res, err := s.deliveryAPI.AssignDriver(ctx, orderID, driverID)
	if err != nil {
		logger.Ctx(ctx).Error("[AssignDriver] err deliveryAPI.AssignDriver", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusConflict: constant.ErrInvalidOrderStatus})
	}

	events := []model.MarketplaceEvent{
		rabbitmq.NewEvent(constant.EventDeliveryUpdated, userID, constant.ResourceOwnerOrders),
		rabbitmq.NewEvent(constant.EventDeliveryUpdated, driverID, constant.ResourceDeliveries, constant.ResourceDriverNotifications),
	}
	if res != nil && res.Order != nil && res.Order.User.ID != "" {
		events = append(events, rabbitmq.NewEvent(constant.EventDeliveryUpdated, res.Order.User.ID, constant.ResourceOrders))
	}
	s.dispatch(ctx, "[AssignDriver]", orderID, events...)
	return res, nil
}

// find reads the driver's assignments fresh; the status gate must not act on a cached list.
func (s *deliveryAppImpl) find(ctx context.Context, op, orderID string) (*model.DeliveryAssignment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	list, err := s.deliveryAPI.ListDeliveries(ctx)
	if err != nil {
		logger.Ctx(ctx).Error(op+" err deliveryAPI.ListDeliveries", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	for i := range list {
		if orderIDOf(list[i]) == orderID {
			return &list[i], nil
		}
	}
	return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("no delivery assigned for this order")
}

func (s *deliveryAppImpl) SendOTP(ctx context.Context, orderID string) (*model.OTPResponse, error) {
	d, err := s.find(ctx, "[SendOTP]", orderID)
	if err != nil {
		return nil, err
	}
	if !CanComplete(Status(*d)) {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	otp, err := s.deliveryAPI.RequestOTP(ctx, orderID)
	if err != nil {
		logger.Ctx(ctx).Error("[SendOTP] err deliveryAPI.RequestOTP", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return &model.OTPResponse{OrderID: orderID, OTP: otp}, nil
}

func (s *deliveryAppImpl) MarkDelivered(ctx context.Context, orderID string) (*model.DeliveryAssignment, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	d, err := s.find(ctx, "[MarkDelivered]", orderID)
	if err != nil {
		return nil, err
	}
	if !CanComplete(Status(*d)) {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	res, err := s.deliveryAPI.UpdateDeliveryStatus(ctx, d.ID, constant.OrderStatusDelivered)
	if err != nil {
		logger.Ctx(ctx).Error("[MarkDelivered] err deliveryAPI.UpdateDeliveryStatus", zap.String("delivery_id", d.ID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusConflict: constant.ErrInvalidOrderStatus})
	}
	if res.ID == "" {
		res = d
	}
	res.Status = constant.OrderStatusDelivered

	events := []model.MarketplaceEvent{rabbitmq.NewEvent(constant.EventDeliveryUpdated, userID, constant.ResourceDeliveries)}
	if d.Order != nil {
		if customerID := d.Order.User.ID; customerID != "" {
			events = append(events, rabbitmq.NewEvent(constant.EventDeliveryUpdated, customerID, constant.ResourceOrders, constant.ResourceCustomerNotifications))
		}
		if ownerID := d.Order.OwnerID(); ownerID != "" {
			events = append(events, rabbitmq.NewEvent(constant.EventDeliveryUpdated, ownerID, constant.ResourceOwnerOrders))
		}
	}
	s.dispatch(ctx, "[MarkDelivered]", orderID, events...)
	return res, nil
}

func (s *deliveryAppImpl) UpdateLocation(ctx context.Context, pos model.Position) error {
	if err := validatorx.ValidateStruct(&pos); err != nil {
		return errors.SetValidationError(validatorx.FieldErrors(err))
	}
	if err := s.deliveryAPI.PushLocation(ctx, pos); err != nil {
		logger.Ctx(ctx).Error("[UpdateLocation] err deliveryAPI.PushLocation", zap.String("error", err.Error()))
		return marketplace.MapError(err, nil)
	}
	return nil
}

// dispatch clears the cached views of everyone the delivery change touches, then publishes.
func (s *deliveryAppImpl) dispatch(ctx context.Context, op, orderID string, events ...model.MarketplaceEvent) {
	for i := range events {
		events[i].Attributes = map[string]string{"order_id": orderID}
	}
	if err := s.publisher.Dispatch(ctx, s.redisRepo, events...); err != nil {
		logger.Ctx(ctx).Error(op+" publish delivery updated", zap.String("error", err.Error()))
	}
}

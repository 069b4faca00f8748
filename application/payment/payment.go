package payment

import (
	"context"
	"net/http"
	"strings"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/thirdparty/paymentgateway"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	validatorx "github.com/muhammadheryan/food-delivery/utils/validator"
	"go.uber.org/zap"
)

type PaymentApp interface {
	Pay(ctx context.Context, req *model.PaymentRequest) (*model.Payment, error)
}

type paymentAppImpl struct {
	config     *config.Config
	paymentAPI marketplace.PaymentAPI
	orderAPI   marketplace.OrderAPI
	gateway    paymentgateway.Gateway
	redisRepo  redisrepo.Repository
	publisher  *rabbitmq.Publisher
}

func NewPaymentApp(config *config.Config, paymentAPI marketplace.PaymentAPI, orderAPI marketplace.OrderAPI, gateway paymentgateway.Gateway, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) PaymentApp {
	return &paymentAppImpl{
		config:     config,
		paymentAPI: paymentAPI,
		orderAPI:   orderAPI,
		gateway:    gateway,
		redisRepo:  redisRepo,
		publisher:  publisher,
	}
}

// ValidateCard returns a validation CustomError listing every bad field, or nil.
func ValidateCard(card *model.CardDetails) error {
	if card == nil {
		return errors.SetValidationError(map[string]string{"card": "card details are required"})
	}
	if err := validatorx.ValidateStruct(card); err != nil {
		return errors.SetValidationError(validatorx.FieldErrors(err))
	}
	return nil
}

func (s *paymentAppImpl) Pay(ctx context.Context, req *model.PaymentRequest) (*model.Payment, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	switch req.Method {
	case constant.PaymentMethodCOD:
		// settled on delivery; the order already exists upstream
		return &model.Payment{
			OrderID: req.OrderID,
			Method:  constant.PaymentMethodCOD,
			Status:  constant.PaymentStatusPlaced,
		}, nil
	case constant.PaymentMethodCard:
	default:
		return nil, errors.SetValidationError(map[string]string{"method": "choose Cash on Delivery or Card Payment"})
	}

	if err := ValidateCard(req.Card); err != nil {
		return nil, err
	}

	if err := s.gateway.Init(ctx); err != nil {
		logger.Ctx(ctx).Error("[Pay] gateway init", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrPaymentGateway)
	}

	payment, err := s.paymentAPI.Checkout(ctx, req.OrderID)
	if err != nil {
		logger.Ctx(ctx).Error("[Pay] err paymentAPI.Checkout", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		if marketplace.StatusCode(err) == http.StatusUnauthorized {
			return nil, errors.SetCustomError(constant.ErrUnauthorize)
		}
		return nil, errors.SetCustomError(constant.ErrPaymentFailed)
	}
	if payment.OrderID == "" {
		payment.OrderID = req.OrderID
	}
	payment.Method = constant.PaymentMethodCard
	if payment.Status == "" {
		payment.Status = constant.PaymentStatusCompleted
	}

	events := []model.MarketplaceEvent{rabbitmq.NewEvent(constant.EventPaymentCompleted, userID, constant.ResourceOrders)}
	if ownerID := s.ownerOf(ctx, payment.OrderID); ownerID != "" {
		events = append(events, rabbitmq.NewEvent(constant.EventPaymentCompleted, ownerID, constant.ResourceOwnerOrders))
	}
	for i := range events {
		events[i].Attributes = map[string]string{"order_id": payment.OrderID}
	}
	if err := s.publisher.Dispatch(ctx, s.redisRepo, events...); err != nil {
		logger.Ctx(ctx).Error("[Pay] publish payment completed", zap.String("error", err.Error()))
	}

	return payment, nil
}

// ownerOf looks up who owns the paid order's restaurant. The payment already went through, so a
// failed lookup only leaves the owner's list to its TTL.
func (s *paymentAppImpl) ownerOf(ctx context.Context, orderID string) string {
	order, err := s.orderAPI.GetOrder(ctx, orderID)
	if err != nil {
		logger.Ctx(ctx).Warn("[Pay] err orderAPI.GetOrder", zap.String("order_id", orderID), zap.String("error", err.Error()))
		return ""
	}
	return order.OwnerID()
}

package cart

import (
	"context"
	"net/http"

	"github.com/muhammadheryan/food-delivery/application/catalog"
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

type CartApp interface {
	AddToCart(ctx context.Context, itemID string, quantity int) (*model.CartView, error)
	GetCart(ctx context.Context) (*model.CartView, error)
	RemoveFromCart(ctx context.Context, itemID string) (*model.CartView, error)
	ClearCart(ctx context.Context) error
	AdjustQuantity(ctx context.Context, itemID string, delta int) (*model.CartView, error)
	Checkout(ctx context.Context, form *model.DeliveryForm) (*model.CheckoutResponse, error)
}

type cartAppImpl struct {
	config     *config.Config
	cartAPI    marketplace.CartAPI
	catalogAPI marketplace.CatalogAPI
	orderAPI   marketplace.OrderAPI
	redisRepo  redisrepo.Repository
	publisher  *rabbitmq.Publisher
}

func NewCartApp(config *config.Config, cartAPI marketplace.CartAPI, catalogAPI marketplace.CatalogAPI, orderAPI marketplace.OrderAPI, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) CartApp {
	return &cartAppImpl{
		config:     config,
		cartAPI:    cartAPI,
		catalogAPI: catalogAPI,
		orderAPI:   orderAPI,
		redisRepo:  redisRepo,
		publisher:  publisher,
	}
}

var addErrors = map[int]constant.ErrorType{
	http.StatusNotFound:   constant.ErrInvalidItem,
	http.StatusBadRequest: constant.ErrOutOfStock,
	http.StatusConflict:   constant.ErrOutOfStock,
}

func (s *cartAppImpl) AddToCart(ctx context.Context, itemID string, quantity int) (*model.CartView, error) {
	key, ok := utilsContext.CacheKey(ctx, constant.ResourceCart)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if itemID == "" || quantity < 1 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	item, err := s.catalogAPI.GetMenuItem(ctx, itemID)
	if err != nil {
		logger.Ctx(ctx).Info("[AddToCart] get menu item", zap.String("item_id", itemID), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusNotFound: constant.ErrInvalidItem})
	}
	if !catalog.Available(*item) || quantity > item.Stock {
		logger.Ctx(ctx).Info("[AddToCart] insufficient stock", zap.String("item_id", itemID), zap.Int("need", quantity), zap.Int("available", item.Stock))
		return nil, errors.SetCustomError(constant.ErrOutOfStock)
	}

	cart, err := s.cartAPI.AddToCart(ctx, itemID, quantity)
	if err != nil {
		logger.Ctx(ctx).Error("[AddToCart] err cartAPI.AddToCart", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, addErrors)
	}
	redisrepo.InvalidateQuietly(ctx, s.redisRepo, key)

	return newView(cart.Items), nil
}

func (s *cartAppImpl) GetCart(ctx context.Context) (*model.CartView, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	return newView(items), nil
}

func (s *cartAppImpl) items(ctx context.Context) ([]model.CartItem, error) {
	key, ok := utilsContext.CacheKey(ctx, constant.ResourceCart)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	items, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.CartItem, error) {
		cart, err := s.cartAPI.GetCart(ctx)
		if err != nil {
			return nil, err
		}
		return cart.Items, nil
	})
	if err != nil {
		logger.Ctx(ctx).Error("[GetCart] err cartAPI.GetCart", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return items, nil
}

func (s *cartAppImpl) RemoveFromCart(ctx context.Context, itemID string) (*model.CartView, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	line, found := findLine(items, itemID)
	if !found {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("item is not in your cart")
	}

	if err := s.cartAPI.RemoveFromCart(ctx, line.MenuItem.ID); err != nil {
		logger.Ctx(ctx).Error("[RemoveFromCart] err cartAPI.RemoveFromCart", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	s.invalidate(ctx, constant.ResourceCart)

	rest := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != line.ID || it.MenuItem.ID != line.MenuItem.ID {
			rest = append(rest, it)
		}
	}
	return newView(rest), nil
}

func (s *cartAppImpl) ClearCart(ctx context.Context) error {
	if _, ok := utilsContext.GetUserID(ctx); !ok {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.cartAPI.ClearCart(ctx); err != nil {
		logger.Ctx(ctx).Error("[ClearCart] err cartAPI.ClearCart", zap.String("error", err.Error()))
		return marketplace.MapError(err, nil)
	}
	s.invalidate(ctx, constant.ResourceCart)
	return nil
}

// AdjustQuantity moves a line by delta within [1, stock]. A change the clamp swallows is not sent.
func (s *cartAppImpl) AdjustQuantity(ctx context.Context, itemID string, delta int) (*model.CartView, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	line, found := findLine(items, itemID)
	if !found {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("item is not in your cart")
	}

	next := ClampQuantity(line.Quantity+delta, line.MenuItem.Stock)
	if next == line.Quantity {
		return newView(items), nil
	}

	// absolute quantity, see marketplace.CartAPI
	cart, err := s.cartAPI.AddToCart(ctx, line.MenuItem.ID, next)
	if err != nil {
		logger.Ctx(ctx).Error("[AdjustQuantity] err cartAPI.AddToCart", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, addErrors)
	}
	s.invalidate(ctx, constant.ResourceCart)

	return newView(cart.Items), nil
}

func (s *cartAppImpl) Checkout(ctx context.Context, form *model.DeliveryForm) (*model.CheckoutResponse, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := validatorx.ValidateStruct(form); err != nil {
		return nil, errors.SetValidationError(validatorx.FieldErrors(err))
	}

	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	order, err := s.orderAPI.CreateOrder(ctx, model.CreateOrderRequest{
		Address: form.Address,
		Contact: form.Phone,
	})
	if err != nil {
		logger.Ctx(ctx).Error("[Checkout] err orderAPI.CreateOrder", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{http.StatusConflict: constant.ErrOutOfStock})
	}
	events := []model.MarketplaceEvent{rabbitmq.NewEvent(constant.EventOrderCreated, userID, constant.ResourceCart, constant.ResourceOrders)}
	if ownerID := ownerOf(order, items); ownerID != "" {
		events = append(events, rabbitmq.NewEvent(constant.EventOrderCreated, ownerID, constant.ResourceOwnerOrders, constant.ResourceRestaurantNotifications))
	}
	for i := range events {
		events[i].Attributes = map[string]string{"order_id": order.ID}
	}
	if err := s.publisher.Dispatch(ctx, s.redisRepo, events...); err != nil {
		logger.Ctx(ctx).Error("[Checkout] publish order created", zap.String("error", err.Error()))
	}

	return &model.CheckoutResponse{
		OrderID:  order.ID,
		NextStep: "/payment/" + order.ID,
	}, nil
}

func (s *cartAppImpl) invalidate(ctx context.Context, resources ...string) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return
	}
	keys := make([]string, 0, len(resources))
	for _, r := range resources {
		keys = append(keys, constant.UserCacheKey(userID, r))
	}
	redisrepo.InvalidateQuietly(ctx, s.redisRepo, keys...)
}

// ownerOf finds the restaurant owner from the created order, or from the cart lines when the
// order came back without a populated restaurant.
func ownerOf(order *model.Order, items []model.CartItem) string {
	if id := order.OwnerID(); id != "" {
		return id
	}
	for _, it := range items {
		if owner := it.MenuItem.Restaurant.Owner; owner != nil && owner.ID != "" {
			return owner.ID
		}
	}
	return ""
}

package marketplace

import (
	"context"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.MarketplaceLogin, error)
}

type CatalogAPI interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	GetMenuItem(ctx context.Context, itemID string) (*model.MenuItem, error)
}

// CartAPI is the customer's server-side cart.
//
// AddToCart (POST /cart/add) is treated as setting the line to quantity, not adding to it:
// AdjustQuantity sends the new absolute quantity through it. A backend that increments an
// existing line instead would double the line on every +/-, so check this when wiring one.
type CartAPI interface {
	AddToCart(ctx context.Context, itemID string, quantity int) (*model.Cart, error)
	GetCart(ctx context.Context) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListOwnerOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	CancelOrder(ctx context.Context, req model.CancelOrderRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status constant.OrderStatus) (*model.Order, error)
	AddReview(ctx context.Context, req model.ReviewRequest) error
}

type PaymentAPI interface {
	Checkout(ctx context.Context, orderID string) (*model.Payment, error)
}

type DeliveryAPI interface {
	ListDeliveries(ctx context.Context) ([]model.DeliveryAssignment, error)
	AssignDriver(ctx context.Context, orderID, driverID string) (*model.DeliveryAssignment, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID string, status constant.OrderStatus) (*model.DeliveryAssignment, error)
	RequestOTP(ctx context.Context, orderID string) (string, error)
	PushLocation(ctx context.Context, pos model.Position) error
}

type AdminAPI interface {
	ListUnverifiedRestaurants(ctx context.Context) ([]model.VerificationRequest, error)
	VerifyRestaurant(ctx context.Context, req model.VerifyPayload) error
	ListDrivers(ctx context.Context) ([]model.VerificationRequest, error)
	VerifyDriver(ctx context.Context, req model.VerifyPayload) error
	ListComplaints(ctx context.Context) ([]model.Complaint, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	ListUsers(ctx context.Context) ([]model.MarketplaceUser, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
}

type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	DeleteAllNotifications(ctx context.Context) error
}

var (
	_ AuthAPI         = (*Client)(nil)
	_ CatalogAPI      = (*Client)(nil)
	_ CartAPI         = (*Client)(nil)
	_ OrderAPI        = (*Client)(nil)
	_ PaymentAPI      = (*Client)(nil)
	_ DeliveryAPI     = (*Client)(nil)
	_ AdminAPI        = (*Client)(nil)
	_ NotificationAPI = (*Client)(nil)
)

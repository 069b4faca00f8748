package marketplace

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

var errMissingOrderID = errors.New("marketplace order response has no id")

func (c *Client) Login(ctx context.Context, email, password string) (*model.MarketplaceLogin, error) {
	var res model.MarketplaceLogin
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/user/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// catalog

func (c *Client) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	var res struct {
		Restaurants []model.Restaurant `json:"restaurants"`
	}
	if err := c.get(ctx, "/restaurant/viewall", &res); err != nil {
		return nil, err
	}
	return res.Restaurants, nil
}

func (c *Client) ListMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	var res struct {
		Items []model.MenuItem `json:"menuItems"`
	}
	if err := c.get(ctx, "/menu/view/"+url.PathEscape(restaurantID), &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) GetMenuItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	var res struct {
		Item model.MenuItem `json:"menuItem"`
	}
	if err := c.get(ctx, "/menu/viewbyid/"+url.PathEscape(itemID), &res); err != nil {
		return nil, err
	}
	return &res.Item, nil
}

// cart

func (c *Client) AddToCart(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	var res model.Cart
	body := model.AddToCartRequest{ItemID: itemID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/add", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetCart(ctx context.Context) (*model.Cart, error) {
	var res model.Cart
	if err := c.get(ctx, "/cart/get", &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []model.CartItem{}
	}
	return &res, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/del/"+url.PathEscape(itemID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clr", nil, nil)
}

// orders

type orderEnvelope struct {
	Order model.Order `json:"order"`
}

type ordersEnvelope struct {
	Orders []model.Order `json:"orders"`
}

func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	var res orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders/add", req, &res); err != nil {
		return nil, err
	}
	if res.Order.ID == "" {
		return nil, errMissingOrderID
	}
	return &res.Order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var res ordersEnvelope
	if err := c.get(ctx, "/orders/view", &res); err != nil {
		return nil, err
	}
	return res.Orders, nil
}

func (c *Client) ListOwnerOrders(ctx context.Context) ([]model.Order, error) {
	var res ordersEnvelope
	if err := c.get(ctx, "/orders/viewowner", &res); err != nil {
		return nil, err
	}
	return res.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	var res orderEnvelope
	if err := c.get(ctx, "/orders/viewbyid/"+url.PathEscape(orderID), &res); err != nil {
		return nil, err
	}
	return &res.Order, nil
}

func (c *Client) CancelOrder(ctx context.Context, req model.CancelOrderRequest) (*model.Order, error) {
	var res orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders/cancel", req, &res); err != nil {
		return nil, err
	}
	return &res.Order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status constant.OrderStatus) (*model.Order, error) {
	var res orderEnvelope
	body := map[string]constant.OrderStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, "/orders/update/"+url.PathEscape(orderID), body, &res); err != nil {
		return nil, err
	}
	return &res.Order, nil
}

func (c *Client) AddReview(ctx context.Context, req model.ReviewRequest) error {
	return c.do(ctx, http.MethodPost, "/review/add", req, nil)
}

// payment

func (c *Client) Checkout(ctx context.Context, orderID string) (*model.Payment, error) {
	var res struct {
		Payment model.Payment `json:"payment"`
	}
	body := map[string]string{"id": orderID}
	if err := c.do(ctx, http.MethodPost, "/payment/checkout", body, &res); err != nil {
		return nil, err
	}
	if res.Payment.OrderID == "" {
		res.Payment.OrderID = orderID
	}
	return &res.Payment, nil
}

// delivery

type deliveryEnvelope struct {
	Delivery model.DeliveryAssignment `json:"delivery"`
}

func (c *Client) ListDeliveries(ctx context.Context) ([]model.DeliveryAssignment, error) {
	var res struct {
		Deliveries []model.DeliveryAssignment `json:"deliveries"`
	}
	if err := c.get(ctx, "/delivery/get", &res); err != nil {
		return nil, err
	}
	return res.Deliveries, nil
}

func (c *Client) AssignDriver(ctx context.Context, orderID, driverID string) (*model.DeliveryAssignment, error) {
	var res deliveryEnvelope
	body := map[string]string{"orderId": orderID, "driverId": driverID}
	if err := c.do(ctx, http.MethodPut, "/delivery/assign", body, &res); err != nil {
		return nil, err
	}
	return &res.Delivery, nil
}

func (c *Client) UpdateDeliveryStatus(ctx context.Context, deliveryID string, status constant.OrderStatus) (*model.DeliveryAssignment, error) {
	var res deliveryEnvelope
	body := map[string]interface{}{"id": deliveryID, "status": status}
	if err := c.do(ctx, http.MethodPut, "/delivery/update", body, &res); err != nil {
		return nil, err
	}
	return &res.Delivery, nil
}

func (c *Client) RequestOTP(ctx context.Context, orderID string) (string, error) {
	var res struct {
		OTP string `json:"otp"`
	}
	q := url.Values{"orderId": {orderID}}
	if err := c.do(ctx, http.MethodGet, "/delivery/otp?"+q.Encode(), nil, &res); err != nil {
		return "", err
	}
	return res.OTP, nil
}

func (c *Client) PushLocation(ctx context.Context, pos model.Position) error {
	return c.do(ctx, http.MethodPost, "/delivery/location", pos, nil)
}

// admin

func (c *Client) ListUnverifiedRestaurants(ctx context.Context) ([]model.VerificationRequest, error) {
	var res struct {
		Restaurants []model.VerificationRequest `json:"restaurants"`
	}
	if err := c.get(ctx, "/admin/restaurants", &res); err != nil {
		return nil, err
	}
	return res.Restaurants, nil
}

func (c *Client) VerifyRestaurant(ctx context.Context, req model.VerifyPayload) error {
	return c.do(ctx, http.MethodPut, "/admin/verifyrestaurant", req, nil)
}

func (c *Client) ListDrivers(ctx context.Context) ([]model.VerificationRequest, error) {
	var res struct {
		Drivers []model.VerificationRequest `json:"drivers"`
	}
	if err := c.get(ctx, "/admin/drivers", &res); err != nil {
		return nil, err
	}
	return res.Drivers, nil
}

func (c *Client) VerifyDriver(ctx context.Context, req model.VerifyPayload) error {
	return c.do(ctx, http.MethodPut, "/admin/driver", req, nil)
}

func (c *Client) ListComplaints(ctx context.Context) ([]model.Complaint, error) {
	var res struct {
		Complaints []model.Complaint `json:"complaints"`
	}
	if err := c.get(ctx, "/admin/complaints", &res); err != nil {
		return nil, err
	}
	return res.Complaints, nil
}

func (c *Client) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	var res ordersEnvelope
	if err := c.get(ctx, "/admin/orders", &res); err != nil {
		return nil, err
	}
	return res.Orders, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.MarketplaceUser, error) {
	var res struct {
		Users []model.MarketplaceUser `json:"users"`
	}
	if err := c.get(ctx, "/admin/users", &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *Client) ListReviews(ctx context.Context) ([]model.Review, error) {
	var res struct {
		Reviews []model.Review `json:"reviews"`
	}
	if err := c.get(ctx, "/admin/reviews", &res); err != nil {
		return nil, err
	}
	return res.Reviews, nil
}

// notifications

func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var res struct {
		Notifications []model.Notification `json:"notifications"`
	}
	if err := c.get(ctx, "/notification/viewall", &res); err != nil {
		return nil, err
	}
	return res.Notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPut, "/notification/update/"+url.PathEscape(notificationID), nil, nil)
}

func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/notification/delete", nil, nil)
}

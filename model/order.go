package model

import (
	"time"

	"github.com/muhammadheryan/food-delivery/constant"
)

type OrderItem struct {
	MenuItem Ref     `json:"menuItem"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID                 string                 `json:"_id"`
	User               Ref                    `json:"user"`
	Restaurant         Ref                    `json:"restaurant"`
	Items              []OrderItem            `json:"items"`
	Address            string                 `json:"address"`
	Contact            string                 `json:"contact"`
	TotalAmount        float64                `json:"totalAmount"`
	Status             constant.OrderStatus   `json:"status"`
	PaymentStatus      constant.PaymentStatus `json:"paymentStatus"`
	CancellationReason string                 `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// OwnerID is the user id of the restaurant owner, empty when the restaurant was not populated.
func (o Order) OwnerID() string {
	if o.Restaurant.Owner == nil {
		return ""
	}
	return o.Restaurant.Owner.ID
}

// OrderActions says which order actions a client may offer right now.
type OrderActions struct {
	Cancel bool `json:"cancel"`
	Track  bool `json:"track"`
	Review bool `json:"review"`
}

type OrderView struct {
	Order
	Actions OrderActions `json:"actions"`
}

type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required"`
}

// TrackRoute feeds a map/directions view. When the route cannot be drawn Message explains why.
type TrackRoute struct {
	OrderID       string `json:"order_id"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DirectionsURL string `json:"directions_url,omitempty"`
	Message       string `json:"message,omitempty"`
}

type ReviewRequest struct {
	OrderID string `json:"orderId"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=500"`
}

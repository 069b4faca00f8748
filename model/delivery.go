package model

import "github.com/muhammadheryan/food-delivery/constant"

type DeliveryAssignment struct {
	ID      string               `json:"_id"`
	OrderID string               `json:"orderId"`
	Order   *Order               `json:"order,omitempty"`
	Driver  Ref                  `json:"driver"`
	OTP     string               `json:"otp,omitempty"`
	Status  constant.OrderStatus `json:"status"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverId" validate:"required"`
}

type Position struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// DriverLocation is one pushed position as published on the location stream.
type DriverLocation struct {
	DriverID string   `json:"driver_id"`
	Position Position `json:"position"`
	At       int64    `json:"at"`
}

type OTPResponse struct {
	OrderID string `json:"order_id"`
	OTP     string `json:"otp"`
}

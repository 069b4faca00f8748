package model

import "github.com/muhammadheryan/food-delivery/constant"

type Payment struct {
	OrderID string                 `json:"orderId"`
	Amount  float64                `json:"amount"`
	Method  constant.PaymentMethod `json:"method"`
	Status  constant.PaymentStatus `json:"status"`
}

type CardDetails struct {
	Number string `json:"card_number" validate:"len=16,digits"`
	Expiry string `json:"expiry" validate:"mmyy"`
	CVV    string `json:"cvv" validate:"len=3,digits"`
	Name   string `json:"cardholder_name" validate:"notblank"`
}

type PaymentRequest struct {
	OrderID string                 `json:"order_id"`
	Method  constant.PaymentMethod `json:"method"`
	Card    *CardDetails           `json:"card,omitempty"`
}

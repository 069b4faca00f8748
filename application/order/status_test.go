package order_test

import (
	"testing"

	"github.com/muhammadheryan/food-delivery/application/order"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from constant.OrderStatus
		to   constant.OrderStatus
		want bool
	}{
		{constant.OrderStatusPending, constant.OrderStatusAccepted, true},
		{constant.OrderStatusAccepted, constant.OrderStatusReadyForPickup, true},
		{constant.OrderStatusReadyForPickup, constant.OrderStatusPreparing, false},
		{constant.OrderStatusPreparing, constant.OrderStatusPreparing, false},
		{constant.OrderStatusOutForDelivery, constant.OrderStatusDelivered, true},
		{constant.OrderStatusPreparing, constant.OrderStatusCancelled, true},
		{constant.OrderStatusDelivered, constant.OrderStatusCancelled, false},
		{constant.OrderStatusCancelled, constant.OrderStatusPending, false},
		{"pending", constant.OrderStatusAccepted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, order.CanTransition(tt.from, tt.to))
		})
	}
}

func TestActions(t *testing.T) {
	tests := []struct {
		status constant.OrderStatus
		want   model.OrderActions
	}{
		{constant.OrderStatusPending, model.OrderActions{Cancel: true, Track: true}},
		{constant.OrderStatusReadyForPickup, model.OrderActions{Cancel: true, Track: true}},
		{constant.OrderStatusOutForDelivery, model.OrderActions{Track: true}},
		{constant.OrderStatusDelivered, model.OrderActions{Review: true}},
		{constant.OrderStatusCancelled, model.OrderActions{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, order.Actions(tt.status))
		})
	}
}

func TestBuildRoute(t *testing.T) {
	o := &model.Order{
		ID:         "o1",
		Address:    "221B Baker Street",
		Restaurant: model.Ref{ID: "r1", Address: "10 Downing Street"},
	}

	route := order.BuildRoute(o, "key123")
	assert.Equal(t, "10 Downing Street", route.Origin)
	assert.Equal(t, "221B Baker Street", route.Destination)
	assert.Contains(t, route.DirectionsURL, "key=key123")
	assert.Contains(t, route.DirectionsURL, "origin=10+Downing+Street")
	assert.Empty(t, route.Message)

	noKey := order.BuildRoute(o, "")
	assert.Empty(t, noKey.DirectionsURL)
	assert.NotEmpty(t, noKey.Message)

	missing := order.BuildRoute(&model.Order{ID: "o2", Address: "x"}, "key123")
	assert.Empty(t, missing.DirectionsURL)
	assert.NotEmpty(t, missing.Message)
}

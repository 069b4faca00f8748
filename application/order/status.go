package order

import (
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

var flowIndex = func() map[constant.OrderStatus]int {
	idx := make(map[constant.OrderStatus]int, len(constant.OrderStatusFlow))
	for i, s := range constant.OrderStatusFlow {
		idx[s] = i
	}
	return idx
}()

// Terminal reports whether no further transition exists from s.
func Terminal(s constant.OrderStatus) bool {
	return s == constant.OrderStatusDelivered || s == constant.OrderStatusCancelled
}

// CanTransition allows moving forward along the flow, or to Cancelled from any non-terminal status.
func CanTransition(from, to constant.OrderStatus) bool {
	if Terminal(from) {
		return false
	}
	if to == constant.OrderStatusCancelled {
		_, known := flowIndex[from]
		return known
	}
	fi, ok := flowIndex[from]
	if !ok {
		return false
	}
	ti, ok := flowIndex[to]
	return ok && ti > fi
}

// CanCancel is the customer-side rule: nothing can be cancelled once it left the restaurant.
func CanCancel(s constant.OrderStatus) bool {
	switch s {
	case constant.OrderStatusOutForDelivery, constant.OrderStatusDelivered, constant.OrderStatusCancelled:
		return false
	}
	_, known := flowIndex[s]
	return known
}

func CanTrack(s constant.OrderStatus) bool {
	return !Terminal(s)
}

func CanReview(s constant.OrderStatus) bool {
	return s == constant.OrderStatusDelivered
}

func Actions(s constant.OrderStatus) model.OrderActions {
	return model.OrderActions{
		Cancel: CanCancel(s),
		Track:  CanTrack(s),
		Review: CanReview(s),
	}
}

func newViews(orders []model.Order) []model.OrderView {
	res := make([]model.OrderView, 0, len(orders))
	for _, o := range orders {
		res = append(res, model.OrderView{Order: o, Actions: Actions(o.Status)})
	}
	return res
}

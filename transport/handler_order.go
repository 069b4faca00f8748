package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/model"
)

// ListOrders handler
// @Summary List my orders
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OrderView
// @Router /orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListOwnerOrders handler
// @Summary List orders of my restaurant
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OrderView
// @Router /orders/owner [get]
func (s *RestHandler) ListOwnerOrders(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.ListOwnerOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.OrderView
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CancelOrder handler
// @Summary Cancel order
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.CancelOrderRequest true "Reason"
// @Success 200 {object} model.OrderView
// @Router /orders/{id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CancelOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.OrderApp.CancelOrder(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Move an order forward
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} model.OrderView
// @Router /orders/{id}/status [put]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrderStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.OrderApp.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// TrackOrder handler
// @Summary Route from restaurant to delivery address
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.TrackRoute
// @Router /orders/{id}/track [get]
func (s *RestHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.TrackRoute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// SubmitReview handler
// @Summary Review a delivered order
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.ReviewRequest true "Review"
// @Success 200 {object} successResponse
// @Router /orders/{id}/review [post]
func (s *RestHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.OrderID = mux.Vars(r)["id"]
	if err := s.OrderApp.SubmitReview(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// Pay handler
// @Summary Pay for an order
// @Description Cash on Delivery is placed immediately; card payments are validated and charged
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.PaymentRequest true "Payment"
// @Success 200 {object} model.Payment
// @Router /orders/{id}/payment [post]
func (s *RestHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.OrderID = mux.Vars(r)["id"]
	res, err := s.PaymentApp.Pay(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

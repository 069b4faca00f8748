package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/model"
)

// GetCart handler
// @Summary Get cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CartView
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	res, err := s.CartApp.GetCart(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AddToCart handler
// @Summary Add item to cart
// @Description Sets the line quantity of a menu item, checked against stock
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AddToCartRequest true "Add To Cart Request"
// @Success 200 {object} model.CartView
// @Failure 409 {object} errorResponse
// @Router /cart/items [post]
func (s *RestHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.CartApp.AddToCart(r.Context(), req.ItemID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AdjustQuantity handler
// @Summary Increment or decrement a cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Menu item ID"
// @Param request body model.AdjustQuantityRequest true "Delta of +1 or -1"
// @Success 200 {object} model.CartView
// @Router /cart/items/{itemId} [patch]
func (s *RestHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.CartApp.AdjustQuantity(r.Context(), mux.Vars(r)["itemId"], req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// RemoveFromCart handler
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Menu item ID"
// @Success 200 {object} model.CartView
// @Router /cart/items/{itemId} [delete]
func (s *RestHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	res, err := s.CartApp.RemoveFromCart(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ClearCart handler
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} successResponse
// @Router /cart [delete]
func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.CartApp.ClearCart(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// Checkout handler
// @Summary Checkout
// @Description Validates the delivery form and places the order for the current cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.DeliveryForm true "Delivery details"
// @Success 200 {object} model.CheckoutResponse
// @Failure 422 {object} errorResponse
// @Router /checkout [post]
func (s *RestHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form model.DeliveryForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.CartApp.Checkout(r.Context(), &form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/model"
)

// ListDeliveries handler
// @Summary List delivery assignments
// @Tags Delivery
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DeliveryAssignment
// @Router /deliveries [get]
func (s *RestHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	res, err := s.DeliveryApp.ListDeliveries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AssignDriver handler
// @Summary Assign a driver to an order
// @Tags Delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Param request body model.AssignDriverRequest true "Driver"
// @Success 200 {object} model.DeliveryAssignment
// @Router /deliveries/{orderId}/assign [put]
func (s *RestHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	var req model.AssignDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.DeliveryApp.AssignDriver(r.Context(), mux.Vars(r)["orderId"], req.DriverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// SendOTP handler
// @Summary Request the delivery OTP
// @Tags Delivery
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} model.OTPResponse
// @Router /deliveries/{orderId}/otp [post]
func (s *RestHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	res, err := s.DeliveryApp.SendOTP(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// MarkDelivered handler
// @Summary Confirm delivery
// @Tags Delivery
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} model.DeliveryAssignment
// @Router /deliveries/{orderId}/delivered [post]
func (s *RestHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	res, err := s.DeliveryApp.MarkDelivered(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateLocation handler
// @Summary Push the driver's position
// @Tags Delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.Position true "Position"
// @Success 200 {object} successResponse
// @Router /deliveries/location [post]
func (s *RestHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var pos model.Position
	if err := decodeJSON(r, &pos); err != nil {
		writeError(w, err)
		return
	}
	if err := s.DeliveryApp.UpdateLocation(r.Context(), pos); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

// ListRestaurantVerifications handler
// @Summary Restaurants and their verification status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.VerificationView
// @Router /admin/restaurants [get]
func (s *RestHandler) ListRestaurantVerifications(w http.ResponseWriter, r *http.Request) {
	res, err := s.VerificationApp.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListDriverVerifications handler
// @Summary Drivers and their verification status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.VerificationView
// @Router /admin/drivers [get]
func (s *RestHandler) ListDriverVerifications(w http.ResponseWriter, r *http.Request) {
	res, err := s.VerificationApp.ListDrivers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DecideRestaurant handler
// @Summary Approve or reject a restaurant
// @Description A rejection needs a reason of at least 5 characters. expected_status is the status the admin was looking at.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body model.DecisionRequest true "Decision"
// @Success 200 {object} model.VerificationView
// @Failure 409 {object} errorResponse
// @Router /admin/restaurants/{id}/verify [put]
func (s *RestHandler) DecideRestaurant(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDecision(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.VerificationApp.DecideRestaurant(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DecideDriver handler
// @Summary Approve or reject a driver
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Driver ID"
// @Param request body model.DecisionRequest true "Decision"
// @Success 200 {object} model.VerificationView
// @Failure 409 {object} errorResponse
// @Router /admin/drivers/{id}/verify [put]
func (s *RestHandler) DecideDriver(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDecision(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.VerificationApp.DecideDriver(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func decodeDecision(r *http.Request) (model.Decision, error) {
	var req model.DecisionRequest
	if err := decodeBody(r, &req); err != nil {
		return model.Decision{}, err
	}
	return model.Decision{
		ID:             mux.Vars(r)["id"],
		Status:         req.Status,
		Reason:         req.Reason,
		ExpectedStatus: req.ExpectedStatus,
	}, nil
}

// ListComplaints handler
// @Summary Complaints
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Complaint
// @Router /admin/complaints [get]
func (s *RestHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	res, err := s.VerificationApp.ListComplaints(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// Dashboard handler
// @Summary Admin dashboard counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardSummary
// @Router /admin/dashboard [get]
func (s *RestHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.VerificationApp.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DecisionHistory handler
// @Summary Recorded verification decisions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param target path string true "restaurant or driver"
// @Success 200 {array} model.DecisionEntity
// @Router /admin/history/{target} [get]
func (s *RestHandler) DecisionHistory(w http.ResponseWriter, r *http.Request) {
	target := constant.VerificationTarget(mux.Vars(r)["target"])
	res, err := s.VerificationApp.History(r.Context(), target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/constant"
)

// ListNotifications handler
// @Summary Notification feed
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Param role path string true "customer, restaurant, driver or admin"
// @Success 200 {object} model.NotificationFeed
// @Router /notifications/{role} [get]
func (s *RestHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	res, err := s.NotificationApp.List(r.Context(), constant.Role(mux.Vars(r)["role"]))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// MarkNotificationRead handler
// @Summary Mark one notification as read
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Param role path string true "Role"
// @Param id path string true "Notification ID"
// @Success 200 {object} model.NotificationFeed
// @Router /notifications/{role}/{id}/read [put]
func (s *RestHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := s.NotificationApp.MarkRead(r.Context(), constant.Role(vars["role"]), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ClearNotifications handler
// @Summary Mark all as read
// @Description Removes every notification of the caller
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Param role path string true "Role"
// @Success 200 {object} successResponse
// @Router /notifications/{role} [delete]
func (s *RestHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := s.NotificationApp.ClearAll(r.Context(), constant.Role(mux.Vars(r)["role"])); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

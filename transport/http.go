package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	cartapp "github.com/muhammadheryan/food-delivery/application/cart"
	catalogapp "github.com/muhammadheryan/food-delivery/application/catalog"
	deliveryapp "github.com/muhammadheryan/food-delivery/application/delivery"
	notificationapp "github.com/muhammadheryan/food-delivery/application/notification"
	orderapp "github.com/muhammadheryan/food-delivery/application/order"
	paymentapp "github.com/muhammadheryan/food-delivery/application/payment"
	userapp "github.com/muhammadheryan/food-delivery/application/user"
	verificationapp "github.com/muhammadheryan/food-delivery/application/verification"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	validatorx "github.com/muhammadheryan/food-delivery/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp         userapp.UserApp
	CatalogApp      catalogapp.CatalogApp
	CartApp         cartapp.CartApp
	OrderApp        orderapp.OrderApp
	PaymentApp      paymentapp.PaymentApp
	DeliveryApp     deliveryapp.DeliveryApp
	VerificationApp verificationapp.VerificationApp
	NotificationApp notificationapp.NotificationApp

	// Cache and Publisher serve the marketplace webhook. Publisher may be nil.
	Cache     rabbitmq.Invalidator
	Publisher *rabbitmq.Publisher
}

func NewTransport(internalAPIKey string, rh *RestHandler) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	mux.HandleFunc(constant.LoginRoute, rh.Login).Methods(http.MethodPost)

	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/events", rh.IngestEvent).Methods(http.MethodPost)

	// protected routes
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)

	mux.HandleFunc("/catalog/restaurants", rh.ListRestaurants).Methods(http.MethodGet)
	mux.HandleFunc("/catalog/restaurants/{id}/menu", rh.ListMenu).Methods(http.MethodGet)

	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart", rh.ClearCart).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/items", rh.AddToCart).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{itemId}", rh.AdjustQuantity).Methods(http.MethodPatch)
	mux.HandleFunc("/cart/items/{itemId}", rh.RemoveFromCart).Methods(http.MethodDelete)
	mux.HandleFunc("/checkout", rh.Checkout).Methods(http.MethodPost)

	restaurantOnly := RoleMiddleware(constant.RoleRestaurant)
	driverOnly := RoleMiddleware(constant.RoleDriver)

	mux.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	mux.Handle("/orders/owner", restaurantOnly(http.HandlerFunc(rh.ListOwnerOrders))).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/cancel", rh.CancelOrder).Methods(http.MethodPost)
	mux.Handle("/orders/{id}/status", restaurantOnly(http.HandlerFunc(rh.UpdateOrderStatus))).Methods(http.MethodPut)
	mux.HandleFunc("/orders/{id}/track", rh.TrackOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/review", rh.SubmitReview).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}/payment", rh.Pay).Methods(http.MethodPost)

	mux.HandleFunc("/deliveries", rh.ListDeliveries).Methods(http.MethodGet)
	mux.Handle("/deliveries/location", driverOnly(http.HandlerFunc(rh.UpdateLocation))).Methods(http.MethodPost)
	mux.Handle("/deliveries/{orderId}/assign", restaurantOnly(http.HandlerFunc(rh.AssignDriver))).Methods(http.MethodPut)
	mux.Handle("/deliveries/{orderId}/otp", driverOnly(http.HandlerFunc(rh.SendOTP))).Methods(http.MethodPost)
	mux.Handle("/deliveries/{orderId}/delivered", driverOnly(http.HandlerFunc(rh.MarkDelivered))).Methods(http.MethodPost)

	admin := mux.PathPrefix("/admin").Subrouter()
	admin.Use(RoleMiddleware(constant.RoleAdmin))
	admin.HandleFunc("/restaurants", rh.ListRestaurantVerifications).Methods(http.MethodGet)
	admin.HandleFunc("/restaurants/{id}/verify", rh.DecideRestaurant).Methods(http.MethodPut)
	admin.HandleFunc("/drivers", rh.ListDriverVerifications).Methods(http.MethodGet)
	admin.HandleFunc("/drivers/{id}/verify", rh.DecideDriver).Methods(http.MethodPut)
	admin.HandleFunc("/complaints", rh.ListComplaints).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard", rh.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/history/{target}", rh.DecisionHistory).Methods(http.MethodGet)

	mux.HandleFunc("/notifications/{role}", rh.ListNotifications).Methods(http.MethodGet)
	mux.HandleFunc("/notifications/{role}", rh.ClearNotifications).Methods(http.MethodDelete)
	mux.HandleFunc("/notifications/{role}/{id}/read", rh.MarkNotificationRead).Methods(http.MethodPut)

	// middleware
	mux.Use(RequestIDMiddleware())
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

// decodeBody decodes and validates a JSON request body. Validation failures carry per-field messages.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		return errors.SetValidationError(validatorx.FieldErrors(err))
	}
	return nil
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// Health handler
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

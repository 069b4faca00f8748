package order_test

import (
	"context"
	"errors"
	"testing"

	apporder "github.com/muhammadheryan/food-delivery/application/order"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/mock"
)

func sessionCtx() context.Context {
	return utilsContext.WithSession(context.Background(), &model.Session{ID: "s1", UserID: "u1", Role: constant.RoleCustomer, Token: "tok"})
}

func TestOrderApp_CancelOrder(t *testing.T) {
	type fields struct {
		orderAPI  *marketplacemocks.OrderAPI
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		orderID  string
		reason   string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: pending order",
			orderID: "o1",
			reason:  "ordered by mistake",
			mockCall: func(f fields) {
				f.orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusPending}, nil).Once()
				f.orderAPI.On("CancelOrder", mock.Anything, model.CancelOrderRequest{OrderID: "o1", Reason: "ordered by mistake"}).
					Return(&model.Order{ID: "o1", Status: constant.OrderStatusCancelled}, nil).Once()
				f.redisRepo.On("Invalidate", mock.Anything, "qc:u1:orders").Return(nil).Once()
			},
		},
		{
			name:    "success: restaurant owner's list is cleared too",
			orderID: "o1",
			reason:  "changed my mind",
			mockCall: func(f fields) {
				f.orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{
					ID:         "o1",
					Status:     constant.OrderStatusAccepted,
					Restaurant: model.Ref{ID: "rest1", Owner: &model.Ref{ID: "r1"}},
				}, nil).Once()
				f.orderAPI.On("CancelOrder", mock.Anything, model.CancelOrderRequest{OrderID: "o1", Reason: "changed my mind"}).
					Return(&model.Order{}, nil).Once()
				f.redisRepo.On("Invalidate", mock.Anything, "qc:u1:orders", "qc:r1:ownerOrders", "qc:r1:restaurantNotifications").Return(nil).Once()
			},
		},
		{
			name:    "error: blank reason makes no call",
			orderID: "o1",
			reason:  "   ",
			wantErr: true,
			errCode: constant.ErrInvalidReason,
		},
		{
			name:    "error: out for delivery is not cancelled",
			orderID: "o1",
			reason:  "too slow",
			mockCall: func(f fields) {
				f.orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusOutForDelivery}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name:    "error: delivered is not cancelled",
			orderID: "o1",
			reason:  "too late",
			mockCall: func(f fields) {
				f.orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusDelivered}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				orderAPI:  marketplacemocks.NewOrderAPI(t),
				redisRepo: redismocks.NewRepository(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := apporder.NewOrderApp(&config.Config{}, f.orderAPI, f.redisRepo, nil)

			got, err := app.CancelOrder(sessionCtx(), tt.orderID, tt.reason)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				f.orderAPI.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != constant.OrderStatusCancelled {
				t.Fatalf("status = %s, want Cancelled", got.Status)
			}
			if got.Actions.Cancel || got.Actions.Track {
				t.Fatalf("cancelled order still offers actions: %+v", got.Actions)
			}
		})
	}
}

func TestOrderApp_UpdateStatus(t *testing.T) {
	restaurantCtx := utilsContext.WithSession(context.Background(), &model.Session{ID: "s2", UserID: "r1", Role: constant.RoleRestaurant})

	t.Run("forward move clears the customer cache without a broker", func(t *testing.T) {
		orderAPI := marketplacemocks.NewOrderAPI(t)
		redisRepo := redismocks.NewRepository(t)
		orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusAccepted, User: model.Ref{ID: "u1"}}, nil).Once()
		orderAPI.On("UpdateOrderStatus", mock.Anything, "o1", constant.OrderStatusPreparing).Return(&model.Order{ID: "o1"}, nil).Once()
		redisRepo.On("Invalidate", mock.Anything, "qc:r1:ownerOrders", "qc:u1:orders", "qc:u1:customerNotifications").Return(nil).Once()

		app := apporder.NewOrderApp(&config.Config{}, orderAPI, redisRepo, nil)
		got, err := app.UpdateStatus(restaurantCtx, "o1", constant.OrderStatusPreparing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != constant.OrderStatusPreparing {
			t.Fatalf("status = %s, want Preparing", got.Status)
		}
	})

	t.Run("backward move is rejected", func(t *testing.T) {
		orderAPI := marketplacemocks.NewOrderAPI(t)
		redisRepo := redismocks.NewRepository(t)
		orderAPI.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusReadyForPickup}, nil).Once()

		app := apporder.NewOrderApp(&config.Config{}, orderAPI, redisRepo, nil)
		_, err := app.UpdateStatus(restaurantCtx, "o1", constant.OrderStatusAccepted)
		if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
			t.Fatalf("error = %v, want invalid order status", err)
		}
	})
}

func TestOrderApp_SubmitReview(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.ReviewRequest
		mockCall func(api *marketplacemocks.OrderAPI)
		errCode  constant.ErrorType
		wantErr  bool
	}{
		{
			name: "success: delivered order",
			req:  &model.ReviewRequest{OrderID: "o1", Rating: 5, Comment: "great"},
			mockCall: func(api *marketplacemocks.OrderAPI) {
				api.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusDelivered}, nil).Once()
				api.On("AddReview", mock.Anything, model.ReviewRequest{OrderID: "o1", Rating: 5, Comment: "great"}).Return(nil).Once()
			},
		},
		{
			name:    "error: rating out of range",
			req:     &model.ReviewRequest{OrderID: "o1", Rating: 6},
			wantErr: true,
			errCode: constant.ErrValidation,
		},
		{
			name: "error: not delivered yet",
			req:  &model.ReviewRequest{OrderID: "o1", Rating: 4},
			mockCall: func(api *marketplacemocks.OrderAPI) {
				api.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusPreparing}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := marketplacemocks.NewOrderAPI(t)
			if tt.mockCall != nil {
				tt.mockCall(api)
			}
			app := apporder.NewOrderApp(&config.Config{}, api, redismocks.NewRepository(t), nil)

			err := app.SubmitReview(sessionCtx(), tt.req)
			if tt.wantErr {
				if !cerr.Is(err, tt.errCode) {
					t.Fatalf("error = %v, want code %s", err, constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOrderApp_TrackRoute_Delivered(t *testing.T) {
	api := marketplacemocks.NewOrderAPI(t)
	api.On("GetOrder", mock.Anything, "o1").Return(&model.Order{ID: "o1", Status: constant.OrderStatusDelivered}, nil).Once()

	app := apporder.NewOrderApp(&config.Config{Maps: config.MapsConfig{APIKey: "k"}}, api, redismocks.NewRepository(t), nil)
	_, err := app.TrackRoute(sessionCtx(), "o1")
	if !cerr.Is(err, constant.ErrInvalidOrderStatus) {
		t.Fatalf("error = %v, want invalid order status", err)
	}
}

package delivery_test

import (
	"context"
	"testing"

	"github.com/muhammadheryan/food-delivery/application/delivery"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func driverCtx() context.Context {
	return utilsContext.WithSession(context.Background(), &model.Session{ID: "s1", UserID: "d1", Role: constant.RoleDriver})
}

func TestCanComplete(t *testing.T) {
	assert.True(t, delivery.CanComplete(constant.OrderStatusPending))
	assert.True(t, delivery.CanComplete(constant.OrderStatusOutForDelivery))
	assert.False(t, delivery.CanComplete(constant.OrderStatusPreparing))
	assert.False(t, delivery.CanComplete(constant.OrderStatusDelivered))
	assert.False(t, delivery.CanComplete(""))
}

func TestDeliveryApp_SendOTP(t *testing.T) {
	tests := []struct {
		name       string
		deliveries []model.DeliveryAssignment
		mockCall   func(api *marketplacemocks.DeliveryAPI)
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name:       "out for delivery gets an otp",
			deliveries: []model.DeliveryAssignment{{ID: "dl1", OrderID: "o1", Status: constant.OrderStatusOutForDelivery}},
			mockCall: func(api *marketplacemocks.DeliveryAPI) {
				api.On("RequestOTP", mock.Anything, "o1").Return("4821", nil).Once()
			},
		},
		{
			name:       "status read from the embedded order",
			deliveries: []model.DeliveryAssignment{{ID: "dl1", Order: &model.Order{ID: "o1", Status: constant.OrderStatusPending}}},
			mockCall: func(api *marketplacemocks.DeliveryAPI) {
				api.On("RequestOTP", mock.Anything, "o1").Return("1111", nil).Once()
			},
		},
		{
			name:       "delivered order is gated",
			deliveries: []model.DeliveryAssignment{{ID: "dl1", OrderID: "o1", Status: constant.OrderStatusDelivered}},
			wantErr:    true,
			errCode:    constant.ErrInvalidOrderStatus,
		},
		{
			name:       "no assignment for the order",
			deliveries: []model.DeliveryAssignment{{ID: "dl2", OrderID: "o2", Status: constant.OrderStatusPending}},
			wantErr:    true,
			errCode:    constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := marketplacemocks.NewDeliveryAPI(t)
			api.On("ListDeliveries", mock.Anything).Return(tt.deliveries, nil).Once()
			if tt.mockCall != nil {
				tt.mockCall(api)
			}
			app := delivery.NewDeliveryApp(&config.Config{}, api, redismocks.NewRepository(t), nil)

			got, err := app.SendOTP(driverCtx(), "o1")
			if tt.wantErr {
				require.True(t, cerr.Is(err, tt.errCode), "error = %v", err)
				api.AssertNotCalled(t, "RequestOTP", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "o1", got.OrderID)
			assert.NotEmpty(t, got.OTP)
		})
	}
}

func TestDeliveryApp_MarkDelivered(t *testing.T) {
	api := marketplacemocks.NewDeliveryAPI(t)
	redisRepo := redismocks.NewRepository(t)
	api.On("ListDeliveries", mock.Anything).Return([]model.DeliveryAssignment{
		{ID: "dl1", OrderID: "o1", Status: constant.OrderStatusOutForDelivery, Order: &model.Order{
			ID:         "o1",
			User:       model.Ref{ID: "u1"},
			Restaurant: model.Ref{ID: "rest1", Owner: &model.Ref{ID: "r1"}},
		}},
	}, nil).Once()
	api.On("UpdateDeliveryStatus", mock.Anything, "dl1", constant.OrderStatusDelivered).Return(&model.DeliveryAssignment{}, nil).Once()
	redisRepo.On("Invalidate", mock.Anything,
		"qc:d1:deliveries", "qc:u1:orders", "qc:u1:customerNotifications", "qc:r1:ownerOrders").Return(nil).Once()

	app := delivery.NewDeliveryApp(&config.Config{}, api, redisRepo, nil)
	got, err := app.MarkDelivered(driverCtx(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "dl1", got.ID)
	assert.Equal(t, constant.OrderStatusDelivered, got.Status)
}

func TestDeliveryApp_AssignDriver(t *testing.T) {
	ownerCtx := utilsContext.WithSession(context.Background(), &model.Session{ID: "s2", UserID: "r1", Role: constant.RoleRestaurant})

	t.Run("clears the driver's deliveries without a broker", func(t *testing.T) {
		api := marketplacemocks.NewDeliveryAPI(t)
		redisRepo := redismocks.NewRepository(t)
		api.On("AssignDriver", mock.Anything, "o1", "d1").
			Return(&model.DeliveryAssignment{ID: "dl1", OrderID: "o1", Order: &model.Order{ID: "o1", User: model.Ref{ID: "u1"}}}, nil).Once()
		redisRepo.On("Invalidate", mock.Anything,
			"qc:r1:ownerOrders", "qc:d1:deliveries", "qc:d1:driverNotifications", "qc:u1:orders").Return(nil).Once()

		app := delivery.NewDeliveryApp(&config.Config{}, api, redisRepo, nil)
		got, err := app.AssignDriver(ownerCtx, "o1", "d1")
		require.NoError(t, err)
		assert.Equal(t, "dl1", got.ID)
	})

	t.Run("blank driver", func(t *testing.T) {
		api := marketplacemocks.NewDeliveryAPI(t)
		app := delivery.NewDeliveryApp(&config.Config{}, api, redismocks.NewRepository(t), nil)

		_, err := app.AssignDriver(ownerCtx, "o1", " ")
		require.True(t, cerr.Is(err, constant.ErrInvalidRequest))
	})
}

func TestDeliveryApp_UpdateLocation_OutOfRange(t *testing.T) {
	api := marketplacemocks.NewDeliveryAPI(t)
	app := delivery.NewDeliveryApp(&config.Config{}, api, redismocks.NewRepository(t), nil)

	err := app.UpdateLocation(driverCtx(), model.Position{Latitude: 91, Longitude: 0})
	require.True(t, cerr.Is(err, constant.ErrValidation))
	api.AssertNotCalled(t, "PushLocation", mock.Anything, mock.Anything)
}

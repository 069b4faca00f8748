package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	deliveryapp "github.com/muhammadheryan/food-delivery/application/delivery"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/geolocation"
	"github.com/muhammadheryan/food-delivery/thirdparty/kafka"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// driver agent: reads a JSON-lines GPS feed on stdin and shares every fix with the marketplace
// on behalf of DELIVERY_DRIVER_ID.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Environment, "driver-agent"); err != nil {
		panic(err)
	}
	defer logger.Close()

	if cfg.Delivery.DriverToken == "" {
		logger.Fatal("DELIVERY_DRIVER_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = utilsContext.WithSession(ctx, &model.Session{
		UserID: cfg.Delivery.DriverID,
		Role:   constant.RoleDriver,
		Token:  cfg.Delivery.DriverToken,
	})

	client := marketplace.NewClient(cfg.Marketplace)
	client.OnUnauthorized(func(ctx context.Context) {
		logger.Error("marketplace rejected the driver token, log in again")
		stop()
	})

	tracker := &deliveryapp.Tracker{
		Source:     geolocation.NewStreamSource(os.Stdin, cfg.Delivery.LocationRetryWindow),
		Pusher:     client,
		DriverID:   cfg.Delivery.DriverID,
		RetryDelay: cfg.Delivery.LocationRetryDelay,
		OnStatus: func(msg string) {
			logger.Info(msg)
		},
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewLocationProducer(cfg.Kafka.Brokers, cfg.Kafka.Buffer)
		producer.Start()
		defer producer.Close()
		tracker.Sink = producer
	}

	logger.Info("sharing location", zap.String("driver_id", cfg.Delivery.DriverID))
	if err := tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tracker stopped", zap.Error(err))
	}
}

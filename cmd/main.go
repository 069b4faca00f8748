package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	cartapp "github.com/muhammadheryan/food-delivery/application/cart"
	catalogapp "github.com/muhammadheryan/food-delivery/application/catalog"
	deliveryapp "github.com/muhammadheryan/food-delivery/application/delivery"
	notificationapp "github.com/muhammadheryan/food-delivery/application/notification"
	orderapp "github.com/muhammadheryan/food-delivery/application/order"
	paymentapp "github.com/muhammadheryan/food-delivery/application/payment"
	userapp "github.com/muhammadheryan/food-delivery/application/user"
	verificationapp "github.com/muhammadheryan/food-delivery/application/verification"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	redisclient "github.com/muhammadheryan/food-delivery/cmd/redis"
	_ "github.com/muhammadheryan/food-delivery/docs"
	"github.com/muhammadheryan/food-delivery/repository/migrations"
	redisRepo "github.com/muhammadheryan/food-delivery/repository/redis"
	txRepo "github.com/muhammadheryan/food-delivery/repository/tx"
	verificationRepo "github.com/muhammadheryan/food-delivery/repository/verification"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/thirdparty/paymentgateway"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	"github.com/muhammadheryan/food-delivery/transport"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	validatorx "github.com/muhammadheryan/food-delivery/utils/validator"
	"go.uber.org/zap"
)

// @title FOOD DELIVERY BFF API
// @version 1.0
// @description Workflow API in front of the food delivery marketplace
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Environment, cfg.ServiceName); err != nil {
		panic(err)
	}
	defer logger.Close()

	validatorx.Init()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("AUTH_JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := migrations.Up(db.DB); err != nil {
		logger.Fatal("err migrate db", zap.Error(err))
	}

	redisClient, err := redisclient.New(ctx, cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()

	// Initialize repositories
	RedisRepo := redisRepo.NewRepository(redisClient)
	TxRepo := txRepo.NewTxRepository(db)
	VerificationRepo := verificationRepo.NewVerificationRepository(db)

	// Events are optional; without a broker the apps run with a nil publisher.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq publisher disabled", zap.Error(err))
		publisher = nil
	}
	defer publisher.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, RedisRepo)
	if err != nil {
		logger.Warn("rabbitmq consumer disabled", zap.Error(err))
	} else {
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			logger.Fatal("err start consumer", zap.Error(err))
		}
	}

	// Initialize third parties
	client := marketplace.NewClient(cfg.Marketplace)
	gateway := paymentgateway.NewSDK(cfg.Payment.PublishableKey)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, client, RedisRepo)
	client.OnUnauthorized(UserApp.Invalidate)

	handler := &transport.RestHandler{
		UserApp:         UserApp,
		CatalogApp:      catalogapp.NewCatalogApp(cfg, client, RedisRepo),
		CartApp:         cartapp.NewCartApp(cfg, client, client, client, RedisRepo, publisher),
		OrderApp:        orderapp.NewOrderApp(cfg, client, RedisRepo, publisher),
		PaymentApp:      paymentapp.NewPaymentApp(cfg, client, client, gateway, RedisRepo, publisher),
		DeliveryApp:     deliveryapp.NewDeliveryApp(cfg, client, RedisRepo, publisher),
		VerificationApp: verificationapp.NewVerificationApp(cfg, client, TxRepo, VerificationRepo, RedisRepo, publisher),
		NotificationApp: notificationapp.NewNotificationApp(cfg, client, RedisRepo),
		Cache:           RedisRepo,
		Publisher:       publisher,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      transport.NewTransport(cfg.Server.InternalAPIKey, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown server", zap.Error(err))
		}
	}()

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed server", zap.Error(err))
	}
}

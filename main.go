package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raoc-coder/eventraisehub/config"
	"github.com/raoc-coder/eventraisehub/internal/consumer"
	"github.com/raoc-coder/eventraisehub/internal/handler"
	"github.com/raoc-coder/eventraisehub/internal/middleware"
	"github.com/raoc-coder/eventraisehub/internal/payment"
	"github.com/raoc-coder/eventraisehub/internal/repository"
	"github.com/raoc-coder/eventraisehub/internal/service"
	"github.com/raoc-coder/eventraisehub/pkg/cache"
	"github.com/raoc-coder/eventraisehub/pkg/database"
	"github.com/raoc-coder/eventraisehub/pkg/rabbitmq"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.NewPostgresDB(cfg.DSN())
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// RabbitMQ and Redis are optional: without them the API still serves,
	// minus fan-out and response caching.
	var publisher service.Publisher
	mq, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, publishing disabled: %v", err)
	} else {
		defer mq.Close()
		publisher = mq
	}

	var (
		rdb         *redis.Client
		invalidator service.CacheInvalidator
	)
	if client, err := cache.NewRedisClient(cfg.RedisURL); err != nil {
		log.Printf("Redis unavailable, response cache disabled: %v", err)
	} else {
		defer client.Close()
		rdb = client
		invalidator = cache.NewInvalidator(client)
	}

	checkout := payment.NewStripeCheckout(cfg.StripeSecretKey)

	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)

	eventSvc := service.NewEventService(eventRepo, publisher, invalidator)
	regSvc := service.NewRegistrationService(regRepo, ticketRepo, eventRepo, publisher, invalidator)
	ticketSvc := service.NewTicketService(ticketRepo, eventRepo, regRepo, checkout, invalidator, cfg.AppBaseURL)
	volunteerSvc := service.NewVolunteerService(volunteerRepo, eventRepo, publisher, invalidator)
	donationSvc := service.NewDonationService(donationRepo, eventRepo, checkout, publisher, cfg.PlatformFeePercent, cfg.AppBaseURL)
	analyticsSvc := service.NewAnalyticsService(eventRepo, regRepo, donationRepo, cfg.PlatformFeePercent)
	payoutSvc := service.NewPayoutService(payoutRepo, donationRepo, eventRepo)
	paymentSvc := service.NewPaymentService(donationRepo, regRepo, ticketRepo, eventRepo, invalidator)

	var consumerDone <-chan struct{}
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, payment confirmations disabled: %v", err)
	} else {
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start payment consumer: %v", err)
		}
		consumerDone = consumer.NewPaymentConsumer(paymentSvc).Start(ctx, msgs)
	}

	auth := middleware.NewAuthenticator(cfg.JWTSecret)
	cached := middleware.ResponseCache(rdb, cfg.CacheTTL)
	limiter := middleware.NewRateLimiter(ctx, middleware.LimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		status := map[string]string{"status": "ok", "service": "eventraisehub"}
		if rdb != nil {
			if err := cache.HealthCheck(c.Request().Context(), rdb); err != nil {
				status["redis"] = "down"
			}
		}
		return c.JSON(http.StatusOK, status)
	})
	if cfg.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api", limiter.Middleware(middleware.ByIP))
	events := api.Group("/events")

	handler.NewEventHandler(eventSvc).RegisterRoutes(events, auth, cached)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(events, auth)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(events, auth, cached)
	handler.NewVolunteerHandler(volunteerSvc).RegisterRoutes(events, auth, cached)
	handler.NewAnalyticsHandler(analyticsSvc).RegisterRoutes(events, auth)
	handler.NewDonationHandler(donationSvc).RegisterRoutes(api)
	handler.NewPayoutHandler(payoutSvc).RegisterRoutes(api, auth)

	go func() {
		log.Printf("EventraiseHub starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	// Closing the connection ends the delivery channel; unacked messages
	// are redelivered on the next start.
	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
		}
	}
}

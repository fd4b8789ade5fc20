package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"ticket-booking/internal/cache"
	"ticket-booking/internal/config"
	"ticket-booking/internal/handlers"
	"ticket-booking/internal/kafka"
	"ticket-booking/internal/logger"
	"ticket-booking/internal/mailer"
	"ticket-booking/internal/middleware"
	"ticket-booking/internal/services"
	"ticket-booking/internal/storage"
)

const (
	serviceName    = "ticket-booking"
	serviceVersion = "1.0.0"
)

// Global logger instance
var log *logger.Logger

func main() {
	cfg, envErr := loadConfig()

	log = logger.NewLogger(cfg.Log.Debug, cfg.Log.File)
	defer log.Close()

	if envErr != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Ticket booking service starting up...")
	log.Info("CONFIG", "Configuration loaded successfully")

	store, err := openStore(cfg.Database)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize booking store: "+err.Error())
	}
	defer store.Close()

	gateway, err := newGateway(cfg.Gateway)
	if err != nil {
		log.Fatal("GATEWAY", "Failed to initialize payment gateway: "+err.Error())
	}

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, !cfg.Kafka.Enabled, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()

	var bookingCache services.BookingCache
	if cfg.Redis.Addr != "" {
		bc, err := newCache(cfg.Redis)
		if err != nil {
			log.Warn("CACHE", "Redis unavailable, serving listings from the store: "+err.Error())
		} else {
			defer bc.Close()
			bookingCache = bc
		}
	}

	bookingService := services.NewBookingService(
		store,
		gateway,
		newNotifier(cfg.Mail),
		kafkaProducer,
		bookingCache,
		log,
		services.BookingServiceConfig{
			Currency:      cfg.Gateway.Currency,
			NotifyEnabled: cfg.Mail.Enabled,
		},
	)
	log.LogProcess("SERVICE", "Booking service initialized")

	router := setupRouter(bookingService, store, cfg.Server.RateLimitRPS)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on port "+cfg.Server.Port)
		log.Info("STARTUP", "Health check available at: http://localhost:"+cfg.Server.Port+"/health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("SHUTDOWN", "Server forced to shutdown: "+err.Error())
		return
	}

	log.Info("SHUTDOWN", "Ticket booking service shutdown completed successfully")
}

// loadConfig applies .env files before reading the environment, so every
// setting, including the logger's, can come from them.
func loadConfig(envFiles ...string) (*config.Config, error) {
	envErr := godotenv.Load(envFiles...)
	return config.Load(), envErr
}

func openStore(cfg config.DatabaseConfig) (storage.Store, error) {
	if cfg.Driver == "memory" {
		log.Warn("DATABASE", "Using in-memory booking store - records are lost on restart")
		return storage.NewInMemoryStore(), nil
	}

	log.LogProcess("DATABASE", "Initializing "+cfg.Driver+" booking store...")
	return storage.NewSQLStore(cfg, log)
}

func newGateway(cfg config.GatewayConfig) (services.OrderGateway, error) {
	switch cfg.Provider {
	case "razorpay":
		return services.NewRazorpayService(cfg, log)
	case "stripe":
		return services.NewStripeService(cfg.StripeSecretKey, nil, log)
	case "mock":
		return services.NewMockGatewayService(log), nil
	default:
		return nil, fmt.Errorf("unknown gateway provider %q", cfg.Provider)
	}
}

// newNotifier falls back to logging confirmations when no SMTP credentials
// are configured.
func newNotifier(cfg config.MailConfig) services.Notifier {
	if cfg.Username == "" || cfg.Password == "" {
		log.Warn("MAIL", "EMAIL_USER/EMAIL_PASS not set, confirmations will only be logged")
		return mailer.NewLogMailer(log)
	}
	return mailer.NewSMTPMailer(cfg, log)
}

func newCache(cfg config.RedisConfig) (*cache.BookingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.LogProcess("CACHE", "Redis connection successful")
	return cache.NewBookingCache(client, cfg.CacheTTL), nil
}

func setupRouter(bookingService *services.BookingService, store handlers.Pinger, rps int) *gin.Engine {
	bookingHandler := handlers.NewBookingHandler(bookingService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders(log))
	router.Use(middleware.RateLimit(log, rps))

	router.GET("/health", handlers.Health(store, bookingService.NotifyEnabled(), serviceName, serviceVersion))

	router.POST("/create-order", bookingHandler.CreateOrder)
	router.POST("/save-booking", bookingHandler.SaveBooking)
	router.GET("/get-bookings", bookingHandler.GetBookings)

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}

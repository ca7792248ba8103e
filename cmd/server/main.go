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
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/internal/config"
	"github.com/tourvista/service-tours/internal/domain/cart"
	"github.com/tourvista/service-tours/internal/handler"
	"github.com/tourvista/service-tours/internal/repository"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/database"
	"github.com/tourvista/service-tours/pkg/health"
	"github.com/tourvista/service-tours/pkg/kafka"
	"github.com/tourvista/service-tours/pkg/logger"
	"github.com/tourvista/service-tours/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-tours")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-tours",
		zap.String("port", cfg.Port),
		zap.String("cart_backend", cfg.CartBackend),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		err := db.AutoMigrate(
			&repository.RoleModel{},
			&repository.UserModel{},
			&repository.TourPackageModel{},
			&repository.BookingModel{},
			&repository.BookingItemModel{},
			&repository.ReviewModel{},
			&repository.AgentModel{},
		)
		if err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		if err := seedRoles(db); err != nil {
			log.Fatal("failed to seed roles", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := cfg.DBConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize cart store
	var cartStore cart.Store
	if cfg.CartBackend == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = redisClient.Close() }()
		cartStore = repository.NewRedisCartStore(redisClient)
	} else {
		cartStore = repository.NewMemoryCartStore()
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	tourRepo := repository.NewGormTourRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	roleRepo := repository.NewGormRoleRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	agentRepo := repository.NewGormAgentRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, cartStore, kafkaProducer, log)
	cartService := application.NewCartService(cartStore, tourRepo, log)
	catalogService := application.NewCatalogService(tourRepo, bookingRepo, log)
	userService := application.NewUserService(userRepo, roleRepo, jwtManager, kafkaProducer, log)
	reviewService := application.NewReviewService(reviewRepo, tourRepo, log)
	agentService := application.NewAgentService(agentRepo, log)
	statsService := application.NewStatisticsService(userRepo, bookingRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService, reviewService)
	cartHandler := handler.NewCartHandler(cartService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	agentHandler := handler.NewAgentHandler(agentService)
	adminHandler := handler.NewAdminHandler(userService, bookingService, statsService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-tours")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	catalogHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	cartHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	agentHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-tours...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-tours stopped")
}

// seedRoles makes sure the three fixed roles exist. Production environments
// get them from the SQL migrations instead.
func seedRoles(db *gorm.DB) error {
	for _, name := range []string{auth.RoleUser, auth.RoleAgent, auth.RoleAdmin} {
		role := repository.RoleModel{ID: uuid.New(), Name: name}
		err := db.Where("name = ?", name).FirstOrCreate(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}

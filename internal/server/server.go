package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"hogar-conectado/internal/config"
	"hogar-conectado/internal/database"
	custommiddleware "hogar-conectado/internal/middleware"
	"hogar-conectado/internal/money"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/repository"
	"hogar-conectado/internal/service"
	"hogar-conectado/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service) *Server {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Basic middleware stack
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env != "production"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"database": dbService.Health(r.Context()),
		})
	})

	// Redis client for rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Pricing policy shared by products and quotations
	calculator := pricing.NewCalculator(pricing.Factors{
		ThreeInstallments: cfg.Pricing.FactorThreeInstallments,
		SixInstallments:   cfg.Pricing.FactorSixInstallments,
	})
	formatter := money.NewFormatter(
		cfg.Currency.Symbol,
		cfg.Currency.GroupSeparator,
		cfg.Currency.DecimalSeparator,
		cfg.Currency.FractionDigits,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, calculator)
	quotationService := service.NewQuotationService(
		quotationRepo,
		productRepo,
		categoryRepo,
		calculator,
		formatter,
		cfg.Pricing.DefaultMarkupPercent,
	)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	productHandler := transport.NewProductHandler(productService, cfg.Pricing.DefaultMarkupPercent, logger)
	quotationHandler := transport.NewQuotationHandler(quotationService, formatter, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	rateLimitMiddleware := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		KeyPrefix:         "ratelimit",
	}, logger)

	// Register routes. The quotation routes carry the rate limiter since the
	// cotizador endpoints take unauthenticated storefront traffic.
	userHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	categoryHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	router.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware)
		quotationHandler.RegisterRoutes(r, authMiddleware)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

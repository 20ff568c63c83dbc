package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khiemnguyen2004/walking-guide-sub001/internal/config"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/database"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/handlers"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/middleware"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/services"
	"github.com/khiemnguyen2004/walking-guide-sub001/internal/utils"
	"github.com/khiemnguyen2004/walking-guide-sub001/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Walking Guide API")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Tour writes are transactional, so the tour repository needs the
	// underlying *sqlx.DB rather than the DB interface
	postgresDB, ok := db.(*database.PostgresDB)
	if !ok {
		logger.Fatal("Failed to cast database connection to PostgresDB")
	}

	// Initialize repositories
	placeRepo := database.NewPlaceRepository(db)
	tourRepo := database.NewTourRepository(postgresDB.DB)
	hotelRepo := database.NewHotelRepository(db)
	restaurantRepo := database.NewRestaurantRepository(db)
	userRepo := database.NewUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	plannerService := services.NewPlannerService(placeRepo, tourRepo, cfg.Planner, logger)
	suggestionService := services.NewSuggestionService(placeRepo, tourRepo, hotelRepo, restaurantRepo, logger)
	authService := services.NewAuthService(userRepo, jwtService, logger)

	// Initialize handlers
	placeHandler := handlers.NewPlaceHandler(placeRepo, plannerService, logger)
	tourHandler := handlers.NewTourHandler(tourRepo, plannerService, suggestionService, logger)
	plannerHandler := handlers.NewPlannerHandler(plannerService, logger)
	stayHandler := handlers.NewStayHandler(hotelRepo, restaurantRepo, suggestionService, logger)
	authHandler := handlers.NewAuthHandler(authService, userRepo, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// User routes (protected)
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware(jwtService))
		{
			user.GET("/profile", authHandler.GetProfile)
			user.PUT("/profile", authHandler.UpdateProfile)
		}

		// Place catalog routes
		places := v1.Group("/places")
		{
			places.GET("", placeHandler.List)
			places.GET("/autocomplete", placeHandler.Autocomplete)
			places.GET("/:id", placeHandler.Get)
			places.GET("/:id/nearest-route", placeHandler.GetNearestRoute)

			placesProtected := places.Group("")
			placesProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				placesProtected.POST("", placeHandler.Create)
				placesProtected.PUT("/:id", placeHandler.Update)
				placesProtected.DELETE("/:id", placeHandler.Delete)
			}
		}

		// Tour routes
		tours := v1.Group("/tours")
		{
			tours.GET("", tourHandler.List)
			tours.GET("/:id", tourHandler.Get)
			tours.GET("/:id/suggestions", tourHandler.Suggestions)

			toursProtected := tours.Group("")
			toursProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				toursProtected.POST("", tourHandler.Create)
				toursProtected.PUT("/:id", tourHandler.Update)
				toursProtected.DELETE("/:id", tourHandler.Delete)
			}
		}

		// Tour step routes
		v1.GET("/tour-steps/by-tour/:tourId", tourHandler.GetSteps)

		// Planner routes (protected)
		planner := v1.Group("/planner")
		planner.Use(middleware.AuthMiddleware(jwtService))
		{
			planner.POST("/auto", plannerHandler.AutoPlan)
			planner.POST("/partition", plannerHandler.Partition)
		}

		// Stay routes
		hotels := v1.Group("/hotels")
		{
			hotels.GET("", stayHandler.ListHotels)

			hotelsProtected := hotels.Group("")
			hotelsProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				hotelsProtected.POST("", stayHandler.CreateHotel)
				hotelsProtected.PUT("/:id", stayHandler.UpdateHotel)
				hotelsProtected.DELETE("/:id", stayHandler.DeleteHotel)
			}
		}

		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", stayHandler.ListRestaurants)

			restaurantsProtected := restaurants.Group("")
			restaurantsProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				restaurantsProtected.POST("", stayHandler.CreateRestaurant)
				restaurantsProtected.PUT("/:id", stayHandler.UpdateRestaurant)
				restaurantsProtected.DELETE("/:id", stayHandler.DeleteRestaurant)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  version,
			"database": "connected",
		})
	}
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		device := utils.ParseUserAgent(c.Request.UserAgent())

		fields := logrus.Fields{
			"status":      c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        path,
			"query":       query,
			"ip":          c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
			"device_type": device.DeviceType,
			"os":          device.OS,
			"browser":     device.Browser,
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request completed with errors")
			return
		}

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

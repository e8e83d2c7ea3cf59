package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ua "github.com/mssola/user_agent"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/railbook/railway-booking-backend/internal/config"
	"github.com/railbook/railway-booking-backend/internal/database"
	"github.com/railbook/railway-booking-backend/internal/handlers"
	"github.com/railbook/railway-booking-backend/internal/middleware"
	"github.com/railbook/railway-booking-backend/internal/services"
	"github.com/railbook/railway-booking-backend/internal/storage"
	"github.com/railbook/railway-booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
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

	logger.Info("Starting Railway Booking Backend")
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
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize repositories
	stationRepo := database.NewStationRepository(db)
	routeRepo := database.NewRouteRepository(db)
	trainTypeRepo := database.NewTrainTypeRepository(db)
	trainRepo := database.NewTrainRepository(db)
	crewRepo := database.NewCrewRepository(db)
	journeyRepo := database.NewJourneyRepository(db)
	ticketRepo := database.NewTicketRepository(db)
	userRepo := database.NewUserRepository(db)

	// Order placement needs transactions, so it works on the underlying
	// sqlx handle rather than the DB interface
	orderRepo := database.NewOrderRepository(db.DB)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(userRepo, jwtService, cfg.Security.BcryptCost)
	orderService := services.NewOrderService(orderRepo, journeyRepo)
	stationValidator := services.NewStationValidator(stationRepo)
	routeValidator := services.NewRouteValidator()
	trainValidator := services.NewTrainValidator()
	journeyValidator := services.NewJourneyValidator(journeyRepo)

	media := storage.NewMediaStore(cfg.Media.Root, cfg.Media.MaxUploadMB)

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	stationHandler := handlers.NewStationHandler(stationRepo, stationValidator, media)
	routeHandler := handlers.NewRouteHandler(routeRepo, routeValidator)
	trainTypeHandler := handlers.NewTrainTypeHandler(trainTypeRepo)
	trainHandler := handlers.NewTrainHandler(trainRepo, trainValidator, media)
	crewHandler := handlers.NewCrewHandler(crewRepo, journeyRepo, media)
	journeyHandler := handlers.NewJourneyHandler(journeyRepo, journeyValidator)
	orderHandler := handlers.NewOrderHandler(orderService, orderRepo)
	ticketHandler := handlers.NewTicketHandler(ticketRepo)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}
	router.Use(middleware.PrometheusMiddleware())

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

	// Health check and metrics endpoints
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded images are served straight from the media root
	router.Static("/uploads", filepath.Join(media.Root(), "uploads"))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Account routes
		users := v1.Group("/users")
		{
			// Public routes (no authentication required)
			users.POST("", authHandler.Register)
			users.POST("/token", authHandler.Token)
			users.POST("/token/refresh", authHandler.RefreshToken)

			// Protected routes (require JWT authentication)
			me := users.Group("/me")
			me.Use(middleware.AuthMiddleware(jwtService))
			{
				me.GET("", authHandler.Me)
				me.PUT("", authHandler.UpdateMe)
			}
		}

		// Catalog routes: anyone authenticated can read, staff can write
		catalog := v1.Group("")
		catalog.Use(middleware.AuthMiddleware(jwtService))
		catalog.Use(middleware.StaffOrReadOnly())
		{
			stations := catalog.Group("/stations")
			{
				stations.GET("", stationHandler.ListStations)
				stations.GET("/:id", stationHandler.GetStation)
				stations.POST("", stationHandler.CreateStation)
				stations.PUT("/:id", stationHandler.UpdateStation)
				stations.DELETE("/:id", stationHandler.DeleteStation)
				stations.POST("/:id/upload-image", stationHandler.UploadStationImage)
			}

			routes := catalog.Group("/routes")
			{
				routes.GET("", routeHandler.ListRoutes)
				routes.GET("/:id", routeHandler.GetRoute)
				routes.POST("", routeHandler.CreateRoute)
				routes.PUT("/:id", routeHandler.UpdateRoute)
				routes.DELETE("/:id", routeHandler.DeleteRoute)
			}

			trains := catalog.Group("/trains")
			{
				// static /types segments take priority over the :id wildcard
				trains.GET("/types", trainTypeHandler.ListTrainTypes)
				trains.GET("/types/:id", trainTypeHandler.GetTrainType)
				trains.POST("/types", trainTypeHandler.CreateTrainType)
				trains.PUT("/types/:id", trainTypeHandler.UpdateTrainType)
				trains.DELETE("/types/:id", trainTypeHandler.DeleteTrainType)

				trains.GET("", trainHandler.ListTrains)
				trains.GET("/:id", trainHandler.GetTrain)
				trains.POST("", trainHandler.CreateTrain)
				trains.PUT("/:id", trainHandler.UpdateTrain)
				trains.DELETE("/:id", trainHandler.DeleteTrain)
				trains.POST("/:id/upload-image", trainHandler.UploadTrainImage)
			}

			crew := catalog.Group("/crew")
			{
				crew.GET("", crewHandler.ListCrew)
				crew.GET("/:id", crewHandler.GetCrew)
				crew.POST("", crewHandler.CreateCrew)
				crew.PUT("/:id", crewHandler.UpdateCrew)
				crew.DELETE("/:id", crewHandler.DeleteCrew)
				crew.POST("/:id/upload-image", crewHandler.UploadCrewImage)
			}

			journeys := catalog.Group("/journeys")
			{
				journeys.GET("", journeyHandler.ListJourneys)
				journeys.GET("/:id", journeyHandler.GetJourney)
				journeys.POST("", journeyHandler.CreateJourney)
				journeys.PUT("/:id", journeyHandler.UpdateJourney)
				journeys.DELETE("/:id", journeyHandler.DeleteJourney)
			}
		}

		// Booking routes: every authenticated user manages their own orders
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthMiddleware(jwtService))
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("", orderHandler.CreateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		tickets := v1.Group("/tickets")
		tickets.Use(middleware.AuthMiddleware(jwtService))
		{
			tickets.GET("", ticketHandler.ListTickets)
			tickets.GET("/:id", ticketHandler.GetTicket)
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

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
		}

		// Parse the user agent so log queries can slice traffic by client
		if rawUA := c.Request.UserAgent(); rawUA != "" {
			parser := ua.New(rawUA)
			browser, browserVersion := parser.Browser()
			fields["browser"] = browser
			fields["browser_version"] = browserVersion
			fields["os"] = parser.OSInfo().Name
			fields["mobile"] = parser.Mobile()
			if parser.Bot() {
				fields["bot"] = true
			}
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

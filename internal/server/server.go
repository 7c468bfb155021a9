package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hearthloaf/hearthloaf/internal/config"
	"github.com/hearthloaf/hearthloaf/internal/middleware"
	"github.com/hearthloaf/hearthloaf/internal/server/handlers"
	"github.com/hearthloaf/hearthloaf/internal/services"
)

// HTTPServer represents the HTTP server
type HTTPServer struct {
	config    *config.Config
	container *services.Container
	router    *gin.Engine
	server    *http.Server
	logger    *logrus.Logger
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(cfg *config.Config, container *services.Container) *HTTPServer {
	// Set Gin mode based on configuration
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	logger := container.GetLogger()

	server := &HTTPServer{
		config:    cfg,
		container: container,
		router:    router,
		logger:    logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	return server
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	s.logger.Infof("Starting HTTP server on port %d", s.config.Server.Port)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// setupMiddleware configures middleware
func (s *HTTPServer) setupMiddleware() {
	// Logger middleware
	s.router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.TimeStamp.Format("2006-01-02 15:04:05"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	// Recovery middleware
	s.router.Use(gin.Recovery())

	// CORS middleware
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Request ID middleware
	s.router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("%d", time.Now().UnixNano())
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	})
}

// setupRoutes configures all API routes
func (s *HTTPServer) setupRoutes() {
	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheckHandler)

	jwtManager := s.container.GetJWTManager()

	// API v1 routes
	v1 := s.router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(s.container)

	// Authentication routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.GET("/me", middleware.AuthRequired(jwtManager), authHandler.Me)
	}

	// Admin routes
	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(jwtManager), middleware.AdminRequired())
	{
		adminGroup.POST("/users", authHandler.CreateUser)
	}

	// Search suggestion routes work for anonymous visitors too; a token,
	// when present, unlocks the telemetry-gated features.
	searchGroup := v1.Group("/search")
	searchGroup.Use(middleware.OptionalAuth(jwtManager))
	{
		searchHandler := handlers.NewSearchHandler(s.container)
		searchGroup.GET("/suggestions", searchHandler.Suggestions)
		searchGroup.POST("/submissions", searchHandler.RecordSubmission)
		searchGroup.POST("/clicks", searchHandler.RecordClick)
		searchGroup.GET("/recent", searchHandler.Recent)
		searchGroup.GET("/popular", searchHandler.Popular)
	}
}

// healthCheckHandler reports infrastructure health
func (s *HTTPServer) healthCheckHandler(c *gin.Context) {
	health := s.container.Health(c.Request.Context())

	status := http.StatusOK
	for _, v := range health {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, gin.H{
		"status":     http.StatusText(status),
		"components": health,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

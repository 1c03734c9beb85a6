package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/gravadigital/community-api/internal/auth"
	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/domain/calendar"
	"github.com/gravadigital/community-api/internal/handlers"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/metrics"
	"github.com/gravadigital/community-api/internal/middleware/requestlog"
	"github.com/gravadigital/community-api/internal/response"
	"github.com/gravadigital/community-api/internal/services"
	"github.com/gravadigital/community-api/internal/storage"
)

// Deps are the collaborators the router is built from. Verifier, Avatars and
// Metrics may be nil.
type Deps struct {
	Repos     *storage.Repositories
	Verifier  *auth.Verifier
	Metrics   *metrics.Metrics
	Avatars   services.AvatarResolver
	Assistant handlers.Asker
	Clock     calendar.Clock
	Locale    language.Tag
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	deps       Deps
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Clock == nil {
		deps.Clock = calendar.SystemClock{}
	}
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.Router(),

		// Timeouts seguros según estándares de Go
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.config.Assistant.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.HTTP().Info("Starting HTTP server", "port", s.config.Server.Port, "storage", s.config.Storage.Type)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.HTTP().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes
func (s *Server) Router() *gin.Engine {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware básico
	router.Use(requestlog.New())
	router.Use(gin.Recovery())
	if s.deps.Metrics != nil {
		router.Use(s.deps.Metrics.Middleware())
	}
	router.Use(cors.New(s.corsConfig()))

	// Inicializar servicios
	var observer attendance.Observer
	var projectionObserver services.ProjectionObserver
	if s.deps.Metrics != nil {
		observer = s.deps.Metrics
		projectionObserver = s.deps.Metrics
	}

	eventService := services.NewEventService(s.deps.Repos.Events, s.deps.Clock)
	engine := attendance.NewEngine(s.deps.Repos.Attendance, auth.ContextIdentity{}, observer)
	attendanceService := services.NewAttendanceService(eventService, engine)
	birthdayService := services.NewBirthdayService(s.deps.Repos.Profiles, s.deps.Avatars, projectionObserver, s.deps.Clock, s.deps.Locale)

	// Inicializar handlers
	eventHandler := handlers.NewEventHandler(eventService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	birthdayHandler := handlers.NewBirthdayHandler(birthdayService)

	// Health check
	router.GET("/ping", s.ping)

	if s.deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := router.Group("/api")
	api.Use(auth.Middleware(s.deps.Verifier))
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/attendance", attendanceHandler.GetAttendance)
			events.POST("/:id/attendance", attendanceHandler.ToggleAttendance)
		}

		birthdays := api.Group("/birthdays")
		{
			birthdays.GET("", birthdayHandler.GetBirthdays)
			birthdays.GET("/calendar.ics", birthdayHandler.GetCalendar)
		}

		if s.deps.Assistant != nil {
			api.POST("/assistant", handlers.NewAssistantHandler(s.deps.Assistant).Ask)
		}
	}

	return router
}

func (s *Server) ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.deps.Repos.Health(ctx); err != nil {
		logger.HTTP().Warn("Health check failed", "error", err)
		response.ErrorResponseWithMessage(c, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Community API is running",
		"status":  "healthy",
	})
}

// corsConfig builds the CORS policy. A "*" origin allows every origin but
// then credentials cannot be sent.
func (s *Server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = s.config.AllowedMethods()
	corsConfig.AllowHeaders = s.config.AllowedHeaders()
	corsConfig.ExposeHeaders = []string{requestlog.HeaderRequestID}

	origins := s.config.AllowedOrigins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}

	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	return corsConfig
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/internal/dashboard"
	"github.com/skycast-io/skycast/internal/geolocate"
	"github.com/skycast-io/skycast/internal/location"
	"github.com/skycast-io/skycast/internal/server/handlers"
	"github.com/skycast-io/skycast/internal/server/middlewares"
	"github.com/skycast-io/skycast/internal/weather"
	"github.com/skycast-io/skycast/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine    *gin.Engine
	server    *http.Server
	orch      *dashboard.Orchestrator
	search    *dashboard.SearchController
	locations *location.Client
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

// New builds the server with explicitly constructed clients; everything the
// orchestrator depends on is injected so tests can substitute doubles.
func New(logger *zap.Logger, tele *telemetry.Telemetry) (*Server, error) {
	cfg := config.GetConfig()

	if cfg.Weather.APIKey == "" {
		logger.Warn("Weather API key is not configured; upstream calls will fail")
	}

	weatherClient := weather.NewClient(cfg.Weather, logger, tele)
	locationClient := location.NewClient(cfg.Geocoding, logger, tele)
	geoProvider := geolocate.NewStatic(cfg.Dashboard.DefaultLatitude, cfg.Dashboard.DefaultLongitude)

	orch := dashboard.New(weatherClient, locationClient, geoProvider, cfg.Dashboard, logger, tele)
	search := dashboard.NewSearchController(locationClient, cfg.Dashboard.SearchDebounceMS, cfg.Geocoding.SearchLimit, logger)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	httpMetrics := middlewares.NewHTTPMetrics()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(tele))
	engine.Use(middlewares.MetricsMiddleware(httpMetrics))

	s := &Server{
		engine:    engine,
		orch:      orch,
		search:    search,
		locations: locationClient,
		logger:    logger,
		tele:      tele,
	}

	s.setupRoutes(httpMetrics)

	return s, nil
}

func (s *Server) setupRoutes(httpMetrics *middlewares.HTTPMetrics) {
	metricsHandler := handlers.NewMetricsHandler(httpMetrics, s.logger)
	dashboardHandler := handlers.NewDashboardHandler(s.orch, s.search, s.logger)
	dashboardHandler.SetCycleRecorder(metricsHandler)
	locationsHandler := handlers.NewLocationsHandler(s.locations, s.logger)

	// Dashboard endpoints
	s.engine.GET("/dashboard", dashboardHandler.GetState)
	s.engine.POST("/dashboard/refresh", dashboardHandler.Refresh)
	s.engine.POST("/dashboard/location", dashboardHandler.SelectLocation)
	s.engine.POST("/dashboard/location/current", dashboardHandler.UseCurrentLocation)
	s.engine.POST("/dashboard/alerts/:id/dismiss", dashboardHandler.DismissAlert)
	s.engine.POST("/dashboard/search", dashboardHandler.SetSearchQuery)
	s.engine.GET("/dashboard/search/results", dashboardHandler.GetSearchResults)

	// Location endpoints
	s.engine.GET("/locations/search", locationsHandler.Search)
	s.engine.GET("/locations/popular", locationsHandler.Popular)

	// Health endpoints (Kubernetes friendly)
	healthHandler := handlers.NewHealthHandler(s.logger)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", metricsHandler.ServeMetrics)
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	// Resolve the initial position and fetch the first dashboard state in
	// the background; a failed first cycle just leaves the dashboard idle.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.orch.Start(ctx); err != nil {
			s.logger.Warn("Initial dashboard cycle failed", zap.Error(err))
		}
	}()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	s.search.Close()
	s.orch.Close()

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

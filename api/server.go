package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/api/middleware"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/api/routes"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/config"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// Services bundles the service dependencies the API surfaces
type Services struct {
	Delivery      service.DeliveryService
	Schedule      service.ScheduleService
	Attachment    service.AttachmentService
	Client        service.ClientService
	Contamination service.ContaminationService
	Report        service.ReportService
}

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer creates a new HTTP server. loc is the business timezone used
// to interpret date-only query parameters.
func NewServer(
	cfg *config.Config,
	log *logrus.Logger,
	nrApp *newrelic.Application,
	svcs Services,
	loc *time.Location,
) *Server {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Create router
	router := gin.New()

	// Set up middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))

	// Add New Relic middleware if enabled
	if nrApp != nil {
		router.Use(middleware.NewRelicMiddleware(nrApp))
	}

	routes.SetupRoutes(router, svcs.Delivery, svcs.Schedule, svcs.Attachment, svcs.Client, svcs.Contamination, svcs.Report, loc, log)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Infof("Starting server on port %d", s.config.Server.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

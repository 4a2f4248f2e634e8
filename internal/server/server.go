package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/emilythestrangee/nexus/backend/internal/handlers"
	"github.com/emilythestrangee/nexus/backend/internal/middleware"
	"github.com/emilythestrangee/nexus/backend/internal/readiness"
	"github.com/emilythestrangee/nexus/backend/internal/telemetry"
)

const searchWindow = time.Minute

// StatusReporter reports whether the backend finished initializing.
type StatusReporter interface {
	Status() readiness.Status
}

// HealthChecker is satisfied by database.Service in postgres mode.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Options struct {
	Port            string
	Handler         *handlers.Handler
	Backend         StatusReporter
	Database        HealthChecker
	Registry        *prometheus.Registry
	Limiter         middleware.Limiter
	SearchRateLimit int64
}

type Server struct {
	opts Options
}

// NewServer creates and configures a new server
func NewServer(opts Options) *http.Server {
	s := &Server{opts: opts}

	router := s.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + opts.Port,
		Handler:      otelhttp.NewHandler(router, "http.server"),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", opts.Port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * 3600,
	}))

	r.GET("/health", s.health)

	if s.opts.Registry != nil {
		r.GET("/metrics", gin.WrapH(telemetry.MetricsHandler(s.opts.Registry)))
	}

	h := s.opts.Handler
	searchLimit := s.searchLimit()

	api := r.Group("/api")
	{
		api.GET("/community", searchLimit, h.Post.GetPosts)
		api.GET("/community/:id", h.Post.GetPost)

		api.GET("/lost-found", searchLimit, h.LostItem.GetItems)
		api.GET("/lost-found/:id", h.LostItem.GetItem)

		api.GET("/categories/:resource", handlers.GetCategories)
		api.GET("/overview", h.Overview.GetOverview)
		api.GET("/help", h.Help.GetFAQ)
	}

	widgets := r.Group("/widgets")
	{
		widgets.GET("/community", searchLimit, h.Widget.Community)
		widgets.GET("/lost-found", searchLimit, h.Widget.LostFound)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	backend := readiness.Pending
	if s.opts.Backend != nil {
		backend = s.opts.Backend.Status()
	}
	body := gin.H{"status": "ok", "backend": backend.String()}
	if s.opts.Database != nil {
		body["database"] = s.opts.Database.Health(c.Request.Context())
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) searchLimit() gin.HandlerFunc {
	if s.opts.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.SearchRateLimit(s.opts.Limiter, s.opts.SearchRateLimit, searchWindow)
}

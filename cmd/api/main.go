package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emilythestrangee/nexus/backend/internal/config"
	"github.com/emilythestrangee/nexus/backend/internal/database"
	"github.com/emilythestrangee/nexus/backend/internal/gateway"
	"github.com/emilythestrangee/nexus/backend/internal/handlers"
	"github.com/emilythestrangee/nexus/backend/internal/normalize"
	"github.com/emilythestrangee/nexus/backend/internal/ratelimit"
	"github.com/emilythestrangee/nexus/backend/internal/readiness"
	"github.com/emilythestrangee/nexus/backend/internal/render"
	"github.com/emilythestrangee/nexus/backend/internal/server"
	"github.com/emilythestrangee/nexus/backend/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdownTracing, err := telemetry.InitOTEL(ctx, cfg.OTELEndpoint, cfg.OTELServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	backend, db, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer closeBackend()

	handle := readiness.New[gateway.Gateway]()
	go gateway.Initialize(ctx, handle, backend, cfg.ReadinessTimeout)

	reg := telemetry.NewRegistry()
	remote := gateway.NewRemote(handle, cfg.GatewayTimeout)
	gw := gateway.Instrument(remote, gateway.NewMetrics(reg))

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	limiter := ratelimit.NewFromAddr(cfg.RedisAddr)
	defer limiter.Close()
	if limiter.Enabled() {
		if err := limiter.Ping(ctx); err != nil {
			log.Printf("⚠️ Redis not reachable, searches will not be limited until it is: %v", err)
		}
	}

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		Handler:         handlers.NewHandler(gw, normalize.New(cfg.CloudinaryCloudName, cfg.Location()), renderer),
		Backend:         remote,
		Database:        db,
		Registry:        reg,
		Limiter:         limiter,
		SearchRateLimit: cfg.SearchRateLimit,
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
}

// openBackend builds the configured data backend and its cleanup. The
// database service is nil in REST mode.
func openBackend(cfg *config.Config) (gateway.Backend, database.Service, func(), error) {
	if cfg.Backend == config.BackendPostgres {
		db, err := database.New(cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		log.Println("✅ Using direct Postgres backend")
		return gateway.NewPostgresGateway(db.GetDB()), db, func() { _ = db.Close() }, nil
	}

	log.Printf("✅ Using REST backend at %s", cfg.SupabaseURL)
	client := gateway.NewRESTClient(cfg.SupabaseURL, cfg.SupabaseKey, &http.Client{Timeout: cfg.GatewayTimeout})
	return client, nil, func() {}, nil
}

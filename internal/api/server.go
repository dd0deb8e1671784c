package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/huongpham911/cloudwin-sub002/internal/aggregate"
	"github.com/huongpham911/cloudwin-sub002/internal/api/handler"
	mw "github.com/huongpham911/cloudwin-sub002/internal/api/middleware"
	"github.com/huongpham911/cloudwin-sub002/internal/config"
	"github.com/huongpham911/cloudwin-sub002/internal/directory"
	"github.com/huongpham911/cloudwin-sub002/internal/provider"
)

type Server struct {
	router chi.Router
	logger zerolog.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
	dir    *directory.Service
	agg    *aggregate.Service
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	dir := directory.NewService(pool)
	engine := aggregate.NewEngine(dir, logger, cfg.FanoutConcurrency, cfg.TenantCallTimeout)
	agg := aggregate.NewService(engine,
		provider.NewClient(cfg.ProviderAPIURL),
		provider.NewObjectStore(cfg.SpacesEndpoint))

	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		pool:   pool,
		cfg:    cfg,
		dir:    dir,
		agg:    agg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Unified cross-account views
		space := handler.NewSpace(s.agg)
		r.Get("/spaces", space.ListAll)

		bucket := handler.NewBucket(s.agg)
		r.Get("/buckets", bucket.ListAll)

		// Dashboard
		dashboard := handler.NewDashboard(s.dir, s.agg)
		r.Get("/dashboard/stats", dashboard.Stats)

		// Tenant credential directory
		tenant := handler.NewTenant(s.dir, s.agg)
		r.Get("/tenants", tenant.List)
		r.Post("/tenants", tenant.Create)
		r.Get("/tenants/{tenantID}", tenant.Get)
		r.Put("/tenants/{tenantID}", tenant.Update)
		r.Delete("/tenants/{tenantID}", tenant.Delete)
		r.Post("/tenants/{tenantID}/verify", tenant.Verify)

		// Per-tenant bucket operations
		r.Post("/tenants/{tenantID}/buckets", bucket.Create)
		r.Delete("/tenants/{tenantID}/buckets/{bucket}", bucket.Delete)

		// Per-tenant file operations
		file := handler.NewFile(s.agg)
		r.Get("/tenants/{tenantID}/buckets/{bucket}/files", file.List)
		r.Put("/tenants/{tenantID}/buckets/{bucket}/files/*", file.Upload)
		r.Delete("/tenants/{tenantID}/buckets/{bucket}/files/*", file.Delete)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("readiness check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/spaceai-threatboard/internal/console/handler"
	"github.com/xela07ax/spaceai-threatboard/internal/engine"
	"github.com/xela07ax/spaceai-threatboard/internal/infra"
)

// GatewayServer — HTTP-поверхность шлюза метрик.
// Публичная часть намеренно крошечная: один снапшот-эндпоинт под /api,
// плюс служебные /health и /metrics для мониторинга самого шлюза.
type GatewayServer struct {
	router   *chi.Mux
	logger   *zap.Logger
	cfg      *infra.Config
	registry *prometheus.Registry
	limiter  *rate.Limiter

	metricsHandler *handler.MetricsHandler
}

// NewGatewayServer инициализирует сервер шлюза со всеми зависимостями
func NewGatewayServer(
	cfg *infra.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
	metricsH *handler.MetricsHandler,
) *GatewayServer {
	s := &GatewayServer{
		router:         chi.NewRouter(),
		logger:         logger.Named("metrics-gateway"),
		cfg:            cfg,
		registry:       registry,
		limiter:        rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst),
		metricsHandler: metricsH,
	}

	s.routes()
	return s
}

func (s *GatewayServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(engine.TracingMiddleware)

	// --- 2. Служебные роуты (мониторинг самого шлюза) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// --- 3. Публичный API для дашбордов ---
	r.Group(func(r chi.Router) {
		r.Use(engine.RateLimitMiddleware(s.limiter))

		r.Route("/api", func(r chi.Router) {
			r.Get("/metrics/current", s.metricsHandler.GetCurrent)
		})
	})
}

// ServeHTTP позволяет использовать GatewayServer как стандартный http.Handler
func (s *GatewayServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/console/handler"
	"github.com/xela07ax/spaceai-threatboard/internal/console/server"
	"github.com/xela07ax/spaceai-threatboard/internal/console/service"
	"github.com/xela07ax/spaceai-threatboard/internal/engine"
	"github.com/xela07ax/spaceai-threatboard/internal/infra"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Инфраструктура и ресурсы
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Контекст жизненного цикла фоновых горутин: SIGTERM останавливает слушателя
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ждем Redis с бэкоффом: при старте всего стека он может подниматься дольше нас
	r := retry.New(
		retry.Context(appCtx),
		retry.Attempts(10),
		retry.DelayType(retry.BackOffDelay),
	)
	if err := r.Do(func() error {
		pingCtx, pingCancel := context.WithTimeout(appCtx, 2*time.Second)
		defer pingCancel()
		return rdb.Ping(pingCtx).Err()
	}); err != nil {
		logger.Fatal("Redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	// 3. Метрики самого шлюза
	registry := prometheus.NewRegistry()
	stats := engine.NewMetrics(registry)

	// 4. Сборщик угроз: прогрев L1 из Redis + живая подписка на сигналы
	collector := engine.NewThreatCollector(rdb, stats, logger)
	if err := collector.Init(appCtx); err != nil {
		logger.Fatal("failed to init threat collector", zap.Error(err))
	}
	go collector.StartListener(appCtx)

	// 5. Слои HTTP API (Dependency Injection)
	metricsService := service.NewMetricsService(collector, logger)
	metricsHandler := handler.NewMetricsHandler(metricsService, stats)
	gateway := server.NewGatewayServer(cfg, logger, registry, metricsHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      gateway,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("metrics gateway started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop // Ждем сигнал
	logger.Info("metrics gateway stopping...")

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("metrics gateway exited properly")
}

package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"github.com/xela07ax/spaceai-threatboard/internal/infra"
)

// ThreatCollector держит L1-кэш (RAM) текущих счетчиков угроз.
// Источник правды на рестарте — Redis-хэш, который пишут детекторы шлюзов;
// дальше кэш живет на сигналах Pub/Sub. Истории нет: только текущий срез.
type ThreatCollector struct {
	mu     sync.RWMutex
	counts map[domain.ThreatKind]int

	rdb     *redis.Client
	logger  *zap.Logger
	metrics *Metrics
}

func NewThreatCollector(rdb *redis.Client, m *Metrics, logger *zap.Logger) *ThreatCollector {
	return &ThreatCollector{
		counts:  make(map[domain.ThreatKind]int),
		rdb:     rdb,
		metrics: m,
		logger:  logger.With(zap.String("mod", "threat-collector")),
	}
}

// Init прогревает локальный кэш из Redis при старте сервиса.
// Битые значения в хэше пропускаем с предупреждением, а не падаем:
// частично прогретый кэш лучше мертвого шлюза.
func (c *ThreatCollector) Init(ctx context.Context) error {
	vals, err := c.rdb.HGetAll(ctx, infra.RedisKeyThreatCounts).Result()
	if err != nil {
		return fmt.Errorf("failed to warm threat counters from Redis: %w", err)
	}

	fresh := make(map[domain.ThreatKind]int, len(vals))
	for k, v := range vals {
		kind := domain.ThreatKind(k)
		if !kind.Valid() {
			c.logger.Warn("unknown threat kind in warmup hash", zap.String("kind", k))
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			c.logger.Warn("malformed counter value in warmup hash",
				zap.String("kind", k), zap.String("value", v))
			continue
		}
		fresh[kind] = n
		c.metrics.CurrentThreats.WithLabelValues(string(kind)).Set(float64(n))
	}

	c.mu.Lock()
	c.counts = fresh
	c.mu.Unlock()

	c.logger.Info("threat counters warmed up", zap.Int("kinds", len(fresh)))
	return nil
}

// Apply применяет дельту сигнала к кэшу. Неизвестные виды отбрасываются,
// счетчики не уходят ниже нуля.
func (c *ThreatCollector) Apply(kind domain.ThreatKind, delta int) {
	if !kind.Valid() {
		c.logger.Warn("dropping signal with unknown threat kind", zap.String("kind", string(kind)))
		return
	}

	c.mu.Lock()
	c.counts[kind] += delta
	if c.counts[kind] < 0 {
		c.counts[kind] = 0
	}
	current := c.counts[kind]
	c.mu.Unlock()

	c.metrics.ThreatSignals.WithLabelValues(string(kind)).Inc()
	c.metrics.CurrentThreats.WithLabelValues(string(kind)).Set(float64(current))
}

// Snapshot собирает текущий срез счетчиков для выдачи наружу.
// Секция security присутствует всегда, даже если все счетчики нулевые.
func (c *ThreatCollector) Snapshot() *domain.MetricsSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return &domain.MetricsSnapshot{
		Security: &domain.SecurityStats{
			PIIFindings:       c.counts[domain.ThreatPII],
			InjectionAttempts: c.counts[domain.ThreatInjection],
			Anomalies:         c.counts[domain.ThreatAnomaly],
			CriticalAlerts:    c.counts[domain.ThreatCritical],
		},
	}
}

// StartListener подписывается на сигналы угроз в реальном времени.
// Блокируется до отмены контекста, запускать в отдельной горутине.
func (c *ThreatCollector) StartListener(ctx context.Context) {
	ListenThreatSignals(ctx, c.rdb, c.logger, c.metrics,
		func() error { return c.Init(ctx) }, // Синхронизация при переподключении
		c.Apply,
	)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
)

// ThreatStatsProvider описывает требования сервиса к источнику счетчиков угроз
type ThreatStatsProvider interface {
	Snapshot() *domain.MetricsSnapshot
}

type MetricsService struct {
	collector ThreatStatsProvider
	logger    *zap.Logger
}

func NewMetricsService(collector ThreatStatsProvider, logger *zap.Logger) *MetricsService {
	return &MetricsService{
		collector: collector,
		logger:    logger.Named("metrics-service"),
	}
}

// CurrentSnapshot отдает текущий срез счетчиков угроз.
// Гарантируем фронтенду непустой объект, а не null, даже если сборщик
// еще ничего не успел накопить.
func (s *MetricsService) CurrentSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error) {
	snap := s.collector.Snapshot()
	if snap == nil {
		return &domain.MetricsSnapshot{}, nil
	}
	return snap, nil
}

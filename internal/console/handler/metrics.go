package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"github.com/xela07ax/spaceai-threatboard/internal/engine"
)

// MetricsProvider Описываем, что нам нужно от сервиса
type MetricsProvider interface {
	CurrentSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error)
}

type MetricsHandler struct {
	service MetricsProvider
	stats   *engine.Metrics
}

func NewMetricsHandler(s MetricsProvider, stats *engine.Metrics) *MetricsHandler {
	return &MetricsHandler{service: s, stats: stats}
}

// GetCurrent возвращает текущий снапшот метрик безопасности
// GET /api/metrics/current
func (h *MetricsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	h.stats.SnapshotRequests.Inc()

	snap, err := h.service.CurrentSnapshot(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch security metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Traffic: сколько раз дашборды запросили текущий снапшот
	SnapshotRequests prometheus.Counter

	// Сигналы угроз из Pub/Sub, по видам
	ThreatSignals *prometheus.CounterVec

	// Текущее значение каждого счетчика угроз (зеркало L1-кэша)
	CurrentThreats *prometheus.GaugeVec

	// Живучесть подписки: сколько раз слушатель переподключался к Redis
	ListenerReconnects prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		SnapshotRequests: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "threatboard_snapshot_requests_total",
			Help: "Total number of snapshot requests served.",
		}),

		ThreatSignals: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "threatboard_threat_signals_total",
			Help: "Total number of threat signals received from Pub/Sub.",
		}, []string{"kind"}), // виды: pii, injection, anomaly, critical

		CurrentThreats: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "threatboard_current_threats",
			Help: "Current value of each threat counter.",
		}, []string{"kind"}),

		ListenerReconnects: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "threatboard_listener_reconnects_total",
			Help: "Total number of Redis listener reconnects.",
		}),
	}
}

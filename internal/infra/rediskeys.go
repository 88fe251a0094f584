package infra

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "devit"
)

// Ключи состояния (Hash/Lock)
const (
	// RedisKeyThreatCounts — HASH kind -> count с текущими счетчиками угроз.
	// Его пишут детекторы шлюзов, metricsd читает только при прогреве.
	RedisKeyThreatCounts = RedisNamespace + ":security:threat_counts"

	RedisKeyLockThreatWarmup = RedisNamespace + ":lock:warmup:threats"
)

// Каналы Pub/Sub (события)
const (
	// RedisChanThreatSignal — канал сигналов угроз в реальном времени.
	// Формат payload: "kind:delta", например "pii:3" или "critical:1".
	RedisChanThreatSignal = RedisNamespace + ":security:threat-signal"
)

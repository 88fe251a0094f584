package domain

// SecurityStats — текущие счетчики угроз, которые шлюз отдает наружу.
// Имена JSON-полей зафиксированы контрактом фронтенда, менять нельзя.
type SecurityStats struct {
	PIIFindings       int `json:"piiFindings"`
	InjectionAttempts int `json:"injectionAttempts"`
	Anomalies         int `json:"anomalies"`
	CriticalAlerts    int `json:"criticalAlerts"`
}

// MetricsSnapshot — снимок метрик на текущий момент.
// Поле security опционально: шлюз может еще не успеть собрать данные,
// и это валидное состояние, а не ошибка.
type MetricsSnapshot struct {
	Security *SecurityStats `json:"security,omitempty"`
}

// ChartRow — одна подписанная колонка на графике дашборда.
type ChartRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Фиксированные подписи графика "Security Threats"
const (
	SeriesThreats = "Threats Detected"

	RowPIIFindings       = "PII Findings"
	RowInjectionAttempts = "Injection Attempts"
	RowAnomalies         = "Anomalies"
	RowCriticalAlerts    = "Critical Alerts"
)

// ThreatRows превращает снапшот (или его отсутствие) в ровно четыре строки
// графика в фиксированном порядке. Функция тотальна: отсутствие снапшота,
// секции security или отдельного счетчика дает 0, но никогда не ошибку.
func ThreatRows(s *MetricsSnapshot) []ChartRow {
	var sec SecurityStats
	if s != nil && s.Security != nil {
		sec = *s.Security
	}

	return []ChartRow{
		{Name: RowPIIFindings, Count: sec.PIIFindings},
		{Name: RowInjectionAttempts, Count: sec.InjectionAttempts},
		{Name: RowAnomalies, Count: sec.Anomalies},
		{Name: RowCriticalAlerts, Count: sec.CriticalAlerts},
	}
}

// ThreatKind — тип сигнала угрозы в канале Pub/Sub.
type ThreatKind string

const (
	ThreatPII       ThreatKind = "pii"
	ThreatInjection ThreatKind = "injection"
	ThreatAnomaly   ThreatKind = "anomaly"
	ThreatCritical  ThreatKind = "critical"
)

// Valid проверяет, что вид угрозы известен шлюзу.
// Неизвестные сигналы отбрасываются, чтобы битый продюсер не раздувал кэш.
func (k ThreatKind) Valid() bool {
	switch k {
	case ThreatPII, ThreatInjection, ThreatAnomaly, ThreatCritical:
		return true
	}
	return false
}

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"go.uber.org/zap"
)

// DefaultPollInterval — штатная частота обновления дашборда.
const DefaultPollInterval = 10 * time.Second

// SnapshotFetcher описывает, что опросчику нужно от клиента шлюза.
type SnapshotFetcher interface {
	FetchCurrent(ctx context.Context) (*domain.MetricsSnapshot, error)
}

// Update — результат одного тика опроса: либо снапшот, либо ошибка.
type Update struct {
	Snapshot *domain.MetricsSnapshot
	Err      error
}

// Poller — явная периодическая задача опроса шлюза метрик.
// Запускается на контексте и полностью останавливается его отменой:
// после отмены новые запросы не стартуют, незавершенный не ожидается.
// Ретраев и дедупликации нет: сбой просто доезжает до потребителя,
// следующий тик сам по себе дает повторную попытку.
type Poller struct {
	fetcher  SnapshotFetcher
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	latest *domain.MetricsSnapshot
	ready  bool

	updates chan Update
}

func NewPoller(fetcher SnapshotFetcher, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger.Named("poller"),
		updates:  make(chan Update, 1),
	}
}

// Start запускает цикл опроса в фоне: немедленный первый запрос, далее по тикеру.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Updates отдает канал обновлений. Каждый тик кладет сюда ровно один результат;
// если потребитель отстал, старое обновление вытесняется свежим.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Latest возвращает последний успешный снапшот и флаг готовности.
// До первого успешного запроса флаг false — это состояние "скелетона".
func (p *Poller) Latest() (*domain.MetricsSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.ready
}

func (p *Poller) run(ctx context.Context) {
	// Первый запрос сразу при старте, не дожидаясь тикера
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll выполняется синхронно внутри цикла: если запрос висит дольше интервала,
// пропущенные тики не накапливаются в очередь — тикер их просто роняет.
func (p *Poller) poll(ctx context.Context) {
	snap, err := p.fetcher.FetchCurrent(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("metrics fetch failed", zap.Error(err))
		}
		p.publish(Update{Err: err})
		return
	}

	p.mu.Lock()
	p.latest = snap
	p.ready = true
	p.mu.Unlock()

	p.publish(Update{Snapshot: snap})
}

// publish не блокирует цикл опроса: при занятом буфере вытесняет устаревшее обновление.
func (p *Poller) publish(u Update) {
	for {
		select {
		case p.updates <- u:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

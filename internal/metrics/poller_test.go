package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
)

// stubFetcher сигналит в канал на каждый вызов, чтобы тесты
// синхронизировались по фактам запросов, а не по sleep-ам
type stubFetcher struct {
	mu    sync.Mutex
	calls int

	snap *domain.MetricsSnapshot
	err  error

	called chan struct{}
}

func newStubFetcher(snap *domain.MetricsSnapshot, err error) *stubFetcher {
	return &stubFetcher{snap: snap, err: err, called: make(chan struct{}, 16)}
}

func (f *stubFetcher) FetchCurrent(ctx context.Context) (*domain.MetricsSnapshot, error) {
	f.mu.Lock()
	f.calls++
	snap, err := f.snap, f.err
	f.mu.Unlock()

	f.called <- struct{}{}
	return snap, err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitCall(t *testing.T, f *stubFetcher) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch")
	}
}

func TestPollerFetchesImmediatelyOnStart(t *testing.T) {
	fetcher := newStubFetcher(&domain.MetricsSnapshot{Security: &domain.SecurityStats{PIIFindings: 1}}, nil)
	// Интервал заведомо больше теста: единственный запрос — стартовый
	p := NewPoller(fetcher, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitCall(t, fetcher)

	u := <-p.Updates()
	require.NoError(t, u.Err)
	require.NotNil(t, u.Snapshot)

	snap, ready := p.Latest()
	assert.True(t, ready)
	assert.Equal(t, 1, snap.Security.PIIFindings)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestPollerCadenceAndStop(t *testing.T) {
	fetcher := newStubFetcher(&domain.MetricsSnapshot{}, nil)
	p := NewPoller(fetcher, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	// Стартовый запрос + два тика
	waitCall(t, fetcher)
	waitCall(t, fetcher)
	waitCall(t, fetcher)

	cancel()

	// После остановки цикл может дожать максимум уже начатый запрос,
	// но новые тики не стреляют
	time.Sleep(50 * time.Millisecond)
	settled := fetcher.callCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, fetcher.callCount(), "fetches continued after shutdown")
}

func TestPollerNotReadyBeforeFirstSuccess(t *testing.T) {
	fetcher := newStubFetcher(nil, &FetchError{Message: "Failed to fetch security metrics", Status: 503})
	p := NewPoller(fetcher, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitCall(t, fetcher)

	u := <-p.Updates()
	require.Error(t, u.Err)
	assert.Nil(t, u.Snapshot)

	// Ошибка не делает опросчик "готовым": дашборд продолжает показывать скелетон
	snap, ready := p.Latest()
	assert.False(t, ready)
	assert.Nil(t, snap)
}

func TestPollerErrorPassesThroughVerbatim(t *testing.T) {
	wantErr := &FetchError{Message: "Failed to fetch security metrics", Status: 500}
	fetcher := newStubFetcher(nil, wantErr)
	p := NewPoller(fetcher, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitCall(t, fetcher)

	u := <-p.Updates()
	var fetchErr *FetchError
	require.ErrorAs(t, u.Err, &fetchErr)
	assert.Equal(t, "Failed to fetch security metrics", fetchErr.Message)
}

func TestPollerKeepsLastSnapshotAcrossFailures(t *testing.T) {
	fetcher := newStubFetcher(&domain.MetricsSnapshot{Security: &domain.SecurityStats{CriticalAlerts: 2}}, nil)
	p := NewPoller(fetcher, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	// Успешный стартовый запрос
	waitCall(t, fetcher)
	u := <-p.Updates()
	require.NoError(t, u.Err)

	// Дальше шлюз "падает"
	fetcher.mu.Lock()
	fetcher.snap = nil
	fetcher.err = &FetchError{Message: "Failed to fetch security metrics", Status: 502}
	fetcher.mu.Unlock()

	waitCall(t, fetcher)

	// Кэшированный снапшот переживает сбой
	snap, ready := p.Latest()
	assert.True(t, ready)
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.Security.CriticalAlerts)
}

func TestPollerDefaultInterval(t *testing.T) {
	p := NewPoller(newStubFetcher(nil, nil), 0, zap.NewNop())
	assert.Equal(t, DefaultPollInterval, p.interval)
}

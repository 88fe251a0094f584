package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"github.com/xela07ax/spaceai-threatboard/internal/metrics"
)

func testSnapshot() *domain.MetricsSnapshot {
	return &domain.MetricsSnapshot{Security: &domain.SecurityStats{
		PIIFindings:       3,
		InjectionAttempts: 1,
		Anomalies:         0,
		CriticalAlerts:    7,
	}}
}

func TestViewShowsLoadingBeforeFirstSnapshot(t *testing.T) {
	m := NewModel(nil)

	view := m.View()

	// Пока данных нет — только скелетон, независимо от остального состояния
	assert.Contains(t, view, "Loading security metrics")
	assert.NotContains(t, view, domain.RowPIIFindings)
	assert.NotContains(t, view, domain.SeriesThreats)
}

func TestViewRendersChartAfterSnapshot(t *testing.T) {
	m := NewModel(make(chan metrics.Update))

	next, _ := m.Update(updateMsg{Snapshot: testSnapshot()})
	m = next.(Model)

	view := m.View()

	assert.Contains(t, view, dashboardTitle)
	assert.Contains(t, view, domain.RowPIIFindings)
	assert.Contains(t, view, domain.RowInjectionAttempts)
	assert.Contains(t, view, domain.RowAnomalies)
	assert.Contains(t, view, domain.RowCriticalAlerts)
	assert.Contains(t, view, domain.SeriesThreats)
	assert.NotContains(t, view, "Loading security metrics")
}

func TestFirstFetchFailureQuitsWithError(t *testing.T) {
	m := NewModel(make(chan metrics.Update))
	wantErr := &metrics.FetchError{Message: "Failed to fetch security metrics", Status: 500}

	next, cmd := m.Update(updateMsg{Err: wantErr})
	m = next.(Model)

	// Модель не обрабатывает ошибку сама: завершается и отдает ее встраивающему коду
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, wantErr, m.Err())
}

func TestBackgroundFailureKeepsLastSnapshot(t *testing.T) {
	m := NewModel(make(chan metrics.Update))

	next, _ := m.Update(updateMsg{Snapshot: testSnapshot()})
	m = next.(Model)

	next, cmd := m.Update(updateMsg{Err: &metrics.FetchError{Message: "Failed to fetch security metrics", Status: 502}})
	m = next.(Model)

	// Фоновый сбой не роняет дашборд: ждем следующего обновления, график на месте
	require.NotNil(t, cmd)
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), domain.RowCriticalAlerts)
}

func TestUpdateHandlesWindowResize(t *testing.T) {
	m := NewModel(make(chan metrics.Update))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	assert.Equal(t, 120, m.width)
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel(make(chan metrics.Update))

			var msg tea.KeyMsg
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			next, cmd := m.Update(msg)
			m = next.(Model)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestWaitForUpdateDeliversPollerResult(t *testing.T) {
	ch := make(chan metrics.Update, 1)
	ch <- metrics.Update{Snapshot: testSnapshot()}

	msg := waitForUpdate(ch)()

	u, ok := msg.(updateMsg)
	require.True(t, ok)
	assert.Equal(t, 3, u.Snapshot.Security.PIIFindings)
}

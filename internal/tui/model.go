package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"github.com/xela07ax/spaceai-threatboard/internal/metrics"
)

const dashboardTitle = "Security Threats"

// Ширина по умолчанию, пока терминал не сообщил свои размеры
const defaultWidth = 72

// updateMsg — результат тика опроса, доставленный в событийный цикл bubbletea
type updateMsg metrics.Update

// Model — состояние дашборда. До первого снапшота показывается заглушка
// со спиннером; после — карточка с бар-чартом, пересобираемым на каждом
// обновлении из последнего снапшота. Сама модель данные не запрашивает
// и ошибки не обрабатывает — только читает то, что принес опросчик.
type Model struct {
	updates <-chan metrics.Update

	spinner  spinner.Model
	snapshot *domain.MetricsSnapshot
	err      error

	width    int
	quitting bool
}

func NewModel(updates <-chan metrics.Update) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		updates: updates,
		spinner: s,
		width:   defaultWidth,
	}
}

// Err возвращает ошибку, из-за которой дашборд завершился.
// Решение, как показать ее пользователю, принимает встраивающее приложение.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

// waitForUpdate блокируется до следующего результата опроса
func waitForUpdate(ch <-chan metrics.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return updateMsg(u)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case updateMsg:
		if msg.Err != nil {
			if m.snapshot == nil {
				// Первый же запрос провалился: данных для отрисовки нет,
				// отдаем ошибку наружу и завершаемся
				m.err = msg.Err
				m.quitting = true
				return m, tea.Quit
			}
			// Фоновый сбой: на экране остается последний полученный снапшот
			return m, waitForUpdate(m.updates)
		}
		m.snapshot = msg.Snapshot
		return m, waitForUpdate(m.updates)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Скелетон: первый снапшот еще не приехал
	if m.snapshot == nil {
		return cardStyle.Render(
			titleStyle.Render(dashboardTitle) + "\n\n" +
				m.spinner.View() + legendStyle.Render(" Loading security metrics..."),
		)
	}

	rows := domain.ThreatRows(m.snapshot)
	chart := renderBars(rows, m.chartWidth())

	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(dashboardTitle),
		"",
		chart,
		"",
		legendStyle.Render("■ "+domain.SeriesThreats),
	))

	return card + "\n" + footerStyle.Render("q: quit")
}

// chartWidth — ширина зоны графика внутри карточки (рамка + паддинги)
func (m Model) chartWidth() int {
	w := m.width - 8
	if w < 30 {
		w = 30
	}
	return w
}

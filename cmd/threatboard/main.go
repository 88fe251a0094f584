package main

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/infra"
	"github.com/xela07ax/spaceai-threatboard/internal/metrics"
	"github.com/xela07ax/spaceai-threatboard/internal/tui"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Клиент шлюза и периодический опрос
	// Базовый URL инжектируется здесь, а не читается клиентом из окружения
	client := metrics.NewClient(cfg.API.BaseURL, nil)
	poller := metrics.NewPoller(client, cfg.API.PollInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx)

	// 3. TUI
	model := tui.NewModel(poller.Updates())
	program := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := program.Run()

	// Выход из TUI гасит опрос; незавершенный запрос не ожидаем
	cancel()

	if err != nil {
		logger.Fatal("dashboard terminated", zap.Error(err))
	}

	// 4. Ошибки данных модель не обрабатывает сама — решаем здесь
	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		logger.Fatal("security metrics unavailable",
			zap.String("base_url", cfg.API.BaseURL),
			zap.Error(m.Err()))
	}
}

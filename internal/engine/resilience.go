package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
	"github.com/xela07ax/spaceai-threatboard/internal/infra"
)

// ListenThreatSignals — "живучая" подписка на канал сигналов угроз.
// Обрабатывает переподключения, логирование и разбор сигналов.
// При каждом успешном коннекте вызывает onReconnect (повторный прогрев из Redis),
// чтобы не потерять сигналы, пришедшие за время обрыва.
func ListenThreatSignals(
	ctx context.Context,
	rdb *redis.Client,
	logger *zap.Logger,
	metrics *Metrics,
	onReconnect func() error,
	onSignal func(kind domain.ThreatKind, delta int),
) {
	first := true
	for {
		if ctx.Err() != nil {
			return
		}

		pubsub := rdb.Subscribe(ctx, infra.RedisChanThreatSignal)

		// Проверка успешности подписки
		if _, err := pubsub.Receive(ctx); err != nil {
			pubsub.Close()
			if ctx.Err() != nil {
				return
			}
			logger.Error("failed to subscribe", zap.String("chan", infra.RedisChanThreatSignal), zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		if !first {
			metrics.ListenerReconnects.Inc()
		}
		first = false

		// Синхронизация (Init) при каждом успешном коннекте
		if err := onReconnect(); err != nil {
			logger.Error("sync failed on reconnect", zap.Error(err))
		}

		ch := pubsub.Channel()

	loop:
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break loop // Канал закрыт, идем на переподключение
				}

				kind, delta, ok := parseThreatSignal(msg.Payload)
				if !ok {
					logger.Error("invalid signal format", zap.String("payload", msg.Payload))
					continue
				}

				onSignal(kind, delta)
			}
		}

		pubsub.Close()
		time.Sleep(1 * time.Second)
	}
}

// parseThreatSignal разбирает payload формата "kind:delta".
// Дельта обязана быть целым числом; валидность вида проверяет потребитель.
func parseThreatSignal(payload string) (domain.ThreatKind, int, bool) {
	parts := strings.Split(payload, ":")
	if len(parts) != 2 {
		return "", 0, false
	}

	delta, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}

	return domain.ThreatKind(parts[0]), delta, true
}

package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
)

// HTTPClient позволяет подменять транспорт в тестах (мок вместо реальной сети)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client — клиент шлюза метрик. Базовый URL задается один раз при сборке,
// без обращения к глобальному окружению из самого клиента.
type Client struct {
	baseURL string
	http    HTTPClient
}

// NewClient создает клиент. Если httpClient не передан, используется
// стандартный с таймаутом короче интервала опроса, чтобы зависший запрос
// не съедал несколько тиков подряд.
func NewClient(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// FetchCurrent выполняет один GET <base>/metrics/current.
// Неуспешный статус и сетевой сбой дают *FetchError; тело успешного ответа
// декодируется в MetricsSnapshot как есть, без дополнительной валидации схемы.
func (c *Client) FetchCurrent(ctx context.Context) (*domain.MetricsSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metrics/current", nil)
	if err != nil {
		return nil, &FetchError{Message: fetchFailedMessage, Cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Message: fetchFailedMessage, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{Message: fetchFailedMessage, Status: resp.StatusCode}
	}

	var snap domain.MetricsSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &FetchError{Message: fetchFailedMessage, Cause: err}
	}

	return &snap, nil
}

package metrics

import "fmt"

// Текст зафиксирован контрактом дашборда: фронтовые тесты сверяют его дословно
const fetchFailedMessage = "Failed to fetch security metrics"

// FetchError описывает сбой запроса к шлюзу метрик: неуспешный HTTP-статус
// или сетевую ошибку. Клиент его не обрабатывает и не ретраит — ошибка
// уходит наверх, в обработчик вызывающего приложения.
type FetchError struct {
	Message string
	Status  int   // HTTP-статус ответа; 0 если до ответа не дошло
	Cause   error // сетевая причина или ошибка разбора тела
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

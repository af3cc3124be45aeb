package telegram

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Bot API
	ErrInvalidResponse = errors.New("telegram client: invalid response")

	// ErrAPI возвращается, когда Bot API ответил ok=false
	ErrAPI = errors.New("telegram client: api error")

	// ErrUnavailable возвращается, когда уведомление не удалось доставить ни в один чат администратора.
	// Вызывающий код логирует ошибку и продолжает работу.
	ErrUnavailable = errors.New("telegram unavailable: notification not delivered")
)

package redisqueue

import "errors"

var (
	// ErrEmpty возвращается, когда в очереди нет сообщений
	ErrEmpty = errors.New("redisqueue: queue is empty")

	// ErrQueue возвращается при ошибках Redis
	ErrQueue = errors.New("redisqueue: redis error")

	// ErrDecode возвращается, когда сообщение из очереди не удалось разобрать
	ErrDecode = errors.New("redisqueue: failed to decode message")
)

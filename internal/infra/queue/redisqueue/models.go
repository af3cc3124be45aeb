package redisqueue

import "time"

// Message уведомление администратору, ожидающее повторной отправки
type Message struct {
	Text       string    `json:"text"`
	Attempts   int       `json:"attempts"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

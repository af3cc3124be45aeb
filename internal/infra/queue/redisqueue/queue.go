package redisqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultKey ключ списка Redis с неотправленными уведомлениями
const DefaultKey = "room-booking:notifications:retry"

// Queue FIFO-очередь сообщений на списке Redis (RPUSH/LPOP)
type Queue struct {
	client *redis.Client
	key    string
}

// New создает очередь. Пустой key заменяется на DefaultKey.
func New(client *redis.Client, key string) *Queue {
	if key == "" {
		key = DefaultKey
	}
	return &Queue{client: client, key: key}
}

// Push кладет сообщение в конец очереди
func (q *Queue) Push(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}

	if err := q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("%w: Push: %w", ErrQueue, err)
	}

	return nil
}

// Pop забирает сообщение из начала очереди. ErrEmpty, если очередь пуста.
func (q *Queue) Pop(ctx context.Context) (*Message, error) {
	payload, err := q.client.LPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Pop: %w", ErrQueue, err)
	}

	return decode(payload)
}

// Len возвращает количество сообщений в очереди
func (q *Queue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: Len: %w", ErrQueue, err)
	}
	return n, nil
}

func encode(msg Message) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrQueue, err)
	}
	return payload, nil
}

func decode(payload []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &msg, nil
}

package worker

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/queue/redisqueue"
)

// PendingExpirer удаление просроченных заявок
type PendingExpirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// RetryQueue очередь недоставленных уведомлений
type RetryQueue interface {
	Pop(ctx context.Context) (*redisqueue.Message, error)
	Push(ctx context.Context, msg redisqueue.Message) error
	Len(ctx context.Context) (int64, error)
}

// AdminNotifier канал уведомлений администратора
type AdminNotifier interface {
	Notify(ctx context.Context, text string) error
}

// Metrics интерфейс для метрик уведомлений
type Metrics interface {
	ObserveNotification(result string)
	SetNotificationQueueSize(n int64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

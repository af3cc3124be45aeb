package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/queue/redisqueue"
)

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

// PendingRepository интерфейс репозитория заявок
type PendingRepository interface {
	Create(ctx context.Context, req *domain.PendingRequest) (*domain.PendingRequest, error)
}

// AdminNotifier канал уведомлений администратора
type AdminNotifier interface {
	Notify(ctx context.Context, text string) error
}

// RetryQueue очередь недоставленных уведомлений
type RetryQueue interface {
	Push(ctx context.Context, msg redisqueue.Message) error
}

// Metrics интерфейс для метрик заявок
type Metrics interface {
	ObserveBookingRequest(result string)
	ObserveNotification(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

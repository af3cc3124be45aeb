package pending

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// PendingRepository интерфейс репозитория заявок
type PendingRepository interface {
	List(ctx context.Context, limit int) ([]*domain.PendingRequest, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.PendingRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdminNotifier канал уведомлений администратора
type AdminNotifier interface {
	Notify(ctx context.Context, text string) error
}

// Metrics интерфейс для метрик решений по заявкам
type Metrics interface {
	ObserveDecision(decision, result string)
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

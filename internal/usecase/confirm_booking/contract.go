package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	MarkBooked(ctx context.Context, roomID string, nights []types.Date) error
}

// PendingRepository интерфейс репозитория заявок
type PendingRepository interface {
	Find(ctx context.Context, filter domain.PendingFilter) (*domain.PendingRequest, error)
	Delete(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик решений по заявкам
type Metrics interface {
	ObserveDecision(decision, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

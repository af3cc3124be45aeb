package backend

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// RoomStore общий набор методов хранилищ номеров (PostgreSQL, MongoDB, память)
type RoomStore interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	FindAvailable(ctx context.Context, minCapacity int, nights []types.Date) ([]*domain.Room, error)
	MarkBooked(ctx context.Context, roomID string, nights []types.Date) error
	Upsert(ctx context.Context, room *domain.Room) error
}

// PendingStore общий набор методов хранилищ заявок
type PendingStore interface {
	Create(ctx context.Context, req *domain.PendingRequest) (*domain.PendingRequest, error)
	Find(ctx context.Context, filter domain.PendingFilter) (*domain.PendingRequest, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]*domain.PendingRequest, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.PendingRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/telegram"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	rejectBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reject_booking"
)

// TelegramClient long polling и ответы в чат
type TelegramClient interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

type RejectBookingUseCase interface {
	Execute(ctx context.Context, req *rejectBooking.Request) (*rejectBooking.Response, error)
}

// PendingService список заявок для команды /pending
type PendingService interface {
	ListDomain(ctx context.Context, limit int) ([]*domain.PendingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

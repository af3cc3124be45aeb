package list_pending

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending/models"
)

type PendingService interface {
	List(ctx context.Context, limit int) (*models.PendingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

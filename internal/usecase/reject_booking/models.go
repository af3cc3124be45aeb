package reject_booking

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request команда отклонения: номер и дата заезда, для диапазона также дата выезда
type Request struct {
	RoomID   string
	CheckIn  types.Date
	CheckOut *types.Date // nil для формы с одной датой
}

// Response отклоненная заявка
type Response struct {
	Request *domain.PendingRequest
}

// Результаты для метрик
const (
	resultSuccess     = "success"
	resultInvalid     = "invalid"
	resultNotFound    = "not_found"
	resultUnavailable = "unavailable"
)

package confirm_booking

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request команда подтверждения: номер и дата заезда, для диапазона также дата выезда
type Request struct {
	RoomID   string
	CheckIn  types.Date
	CheckOut *types.Date // nil для формы с одной датой
}

// Response подтвержденная заявка
type Response struct {
	Request     *domain.PendingRequest
	BookedDates []types.Date // Ночи, добавленные в занятые даты номера
}

// Результаты для метрик
const (
	resultSuccess     = "success"
	resultInvalid     = "invalid"
	resultNotFound    = "not_found"
	resultConflict    = "conflict"
	resultUnavailable = "unavailable"
)

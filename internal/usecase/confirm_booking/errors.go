package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("confirm_booking: room not found")

	// ErrPendingNotFound возвращается, когда нет заявки на этот номер и дату
	ErrPendingNotFound = errors.New("confirm_booking: pending request not found")

	// ErrAlreadyBooked возвращается, когда хотя бы одна ночь уже забронирована
	ErrAlreadyBooked = errors.New("confirm_booking: date already booked")

	// ErrUnavailable возвращается, когда хранилище недоступно или не ответило вовремя
	ErrUnavailable = errors.New("confirm_booking: storage unavailable")
)

package reject_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_booking: invalid input data")

	// ErrPendingNotFound возвращается, когда нет заявки на этот номер и дату
	ErrPendingNotFound = errors.New("reject_booking: pending request not found")

	// ErrUnavailable возвращается, когда хранилище недоступно или не ответило вовремя
	ErrUnavailable = errors.New("reject_booking: storage unavailable")
)

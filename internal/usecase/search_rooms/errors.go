package search_rooms

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных вместе с конкретной причиной
	ErrInvalidInput = errors.New("search_rooms: invalid input data")

	// ErrInvalidGuests возвращается, когда гостей меньше одного
	ErrInvalidGuests = errors.New("guests must be at least 1")

	// ErrInvalidDates возвращается, когда даты не разобраны или выезд не позже заезда
	ErrInvalidDates = errors.New("invalid stay dates")

	// ErrStayTooLong возвращается, когда проживание длиннее domain.MaxStayNights
	ErrStayTooLong = errors.New("stay is too long")

	// ErrDateInPast возвращается, когда дата заезда раньше сегодняшнего дня
	ErrDateInPast = errors.New("check-in date is in the past")

	// ErrUnavailable возвращается, когда хранилище недоступно или не ответило вовремя
	ErrUnavailable = errors.New("search_rooms: storage unavailable")
)

package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных.
	// Конкретная причина оборачивается вместе с ним: ErrInvalidName, ErrInvalidPhone и т.д.
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInvalidName возвращается, когда имя гостя короче или длиннее допустимого
	ErrInvalidName = errors.New("invalid guest name")

	// ErrInvalidPhone возвращается при некорректном формате телефона
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidRoomID возвращается при пустом или некорректном идентификаторе номера
	ErrInvalidRoomID = errors.New("invalid room id")

	// ErrInvalidDates возвращается, когда даты не разобраны или выезд не позже заезда
	ErrInvalidDates = errors.New("invalid stay dates")

	// ErrStayTooLong возвращается, когда проживание длиннее domain.MaxStayNights
	ErrStayTooLong = errors.New("stay is too long")

	// ErrDateInPast возвращается, когда дата заезда раньше сегодняшнего дня
	ErrDateInPast = errors.New("check-in date is in the past")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("submit_booking: room not found")

	// ErrAlreadyBooked возвращается, когда хотя бы одна ночь уже забронирована
	ErrAlreadyBooked = errors.New("submit_booking: date already booked")

	// ErrUnavailable возвращается, когда хранилище недоступно или не ответило вовремя
	ErrUnavailable = errors.New("submit_booking: storage unavailable")
)

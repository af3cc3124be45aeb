package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	// ErrInvalidStay возвращается, когда дата выезда не позже даты заезда
	ErrInvalidStay = errors.New("domain: checkOut must be after checkIn")

	// ErrStayTooLong возвращается, когда проживание длиннее MaxStayNights
	ErrStayTooLong = errors.New("domain: stay is too long")
)

// StayVariant форма запроса: одна ночь по полю date или диапазон checkIn/checkOut
type StayVariant string

const (
	SingleNight StayVariant = "single_night"
	RangeStay   StayVariant = "range"
)

// Stay полуоткрытый интервал ночей [CheckIn, CheckOut).
// Одна ночь выражается как CheckOut = CheckIn + 1 день.
type Stay struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// NewStay создает интервал проживания. Если checkOut == nil, это одна ночь.
func NewStay(checkIn types.Date, checkOut *types.Date) (Stay, error) {
	if checkIn.IsZero() {
		return Stay{}, fmt.Errorf("%w: checkIn is required", ErrInvalidStay)
	}
	if checkOut == nil {
		return SingleNightStay(checkIn), nil
	}
	if !checkOut.After(checkIn) {
		return Stay{}, fmt.Errorf("%w: checkIn=%s, checkOut=%s", ErrInvalidStay, checkIn, *checkOut)
	}
	if nights := checkIn.DaysUntil(*checkOut); nights > MaxStayNights {
		return Stay{}, fmt.Errorf("%w: %d nights, max %d", ErrStayTooLong, nights, MaxStayNights)
	}
	return Stay{CheckIn: checkIn, CheckOut: *checkOut}, nil
}

// SingleNightStay интервал из одной ночи
func SingleNightStay(date types.Date) Stay {
	return Stay{CheckIn: date, CheckOut: date.AddDays(1)}
}

// Nights разворачивает интервал по календарным дням: CheckIn, CheckIn+1, ..., CheckOut-1
func (s Stay) Nights() []types.Date {
	n := s.CheckIn.DaysUntil(s.CheckOut)
	if n <= 0 {
		return nil
	}
	nights := make([]types.Date, 0, n)
	for d := s.CheckIn; d.Before(s.CheckOut); d = d.AddDays(1) {
		nights = append(nights, d)
	}
	return nights
}

// Variant возвращает форму интервала
func (s Stay) Variant() StayVariant {
	if s.CheckOut.Equal(s.CheckIn.AddDays(1)) {
		return SingleNight
	}
	return RangeStay
}

// String "2024-06-01" для одной ночи, "2024-06-01..2024-06-03" для диапазона
func (s Stay) String() string {
	if s.Variant() == SingleNight {
		return s.CheckIn.String()
	}
	return s.CheckIn.String() + ".." + s.CheckOut.String()
}

// ParseStay собирает интервал из полей запроса: либо date (одна ночь), либо пара checkIn/checkOut.
// Смешивать формы нельзя, даты только в формате YYYY-MM-DD.
func ParseStay(date, checkIn, checkOut string) (Stay, error) {
	switch {
	case date != "" && (checkIn != "" || checkOut != ""):
		return Stay{}, fmt.Errorf("%w: use either date or checkIn/checkOut", ErrInvalidStay)
	case date != "":
		d, err := types.ParseDate(date)
		if err != nil {
			return Stay{}, fmt.Errorf("%w: date: %v", ErrInvalidStay, err)
		}
		return SingleNightStay(d), nil
	case checkIn == "" || checkOut == "":
		return Stay{}, fmt.Errorf("%w: date or checkIn/checkOut is required", ErrInvalidStay)
	}

	in, err := types.ParseDate(checkIn)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: checkIn: %v", ErrInvalidStay, err)
	}
	out, err := types.ParseDate(checkOut)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: checkOut: %v", ErrInvalidStay, err)
	}

	return NewStay(in, &out)
}

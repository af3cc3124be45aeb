package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// ErrDateBooked возвращается, когда хотя бы одна ночь интервала уже забронирована
var ErrDateBooked = errors.New("availability: date already booked")

// ConflictError первая занятая ночь, найденная при проверке
type ConflictError struct {
	RoomID string
	Date   types.Date
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: room=%s, date=%s", ErrDateBooked, e.RoomID, e.Date)
}

func (e *ConflictError) Unwrap() error {
	return ErrDateBooked
}

// FirstConflict разворачивает [CheckIn, CheckOut) по дням и возвращает первую занятую ночь
func FirstConflict(booked domain.DateSet, stay domain.Stay) (types.Date, bool) {
	for d := stay.CheckIn; d.Before(stay.CheckOut); d = d.AddDays(1) {
		if booked.Contains(d) {
			return d, true
		}
	}
	return types.Date{}, false
}

// IsAvailable проверяет, что ни одна ночь интервала не забронирована
func IsAvailable(room *domain.Room, stay domain.Stay) bool {
	_, conflict := FirstConflict(room.BookedDates, stay)
	return !conflict
}

// Check как IsAvailable, но возвращает *ConflictError с первой занятой датой
func Check(room *domain.Room, stay domain.Stay) error {
	if d, conflict := FirstConflict(room.BookedDates, stay); conflict {
		return &ConflictError{RoomID: room.ID, Date: d}
	}
	return nil
}

// Matches полный предикат поиска: вместимость и свободные даты
func Matches(room *domain.Room, guests int, stay domain.Stay) bool {
	return room.Fits(guests) && IsAvailable(room, stay)
}

package search_rooms

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// validateRequest валидирует поля запроса и собирает интервал проживания
func validateRequest(v *validator.Validate, req *Request) (domain.Stay, error) {
	if err := v.Struct(req); err != nil {
		return domain.Stay{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrInvalidGuests, validation.Describe(err))
	}

	stay, err := domain.ParseStay(req.Date, req.CheckIn, req.CheckOut)
	if err != nil {
		cause := ErrInvalidDates
		if errors.Is(err, domain.ErrStayTooLong) {
			cause = ErrStayTooLong
		}
		return domain.Stay{}, fmt.Errorf("%w: %w: %v", ErrInvalidInput, cause, err)
	}

	return stay, nil
}

// validateNotInPast проверяет, что заезд не раньше сегодняшнего дня
func validateNotInPast(stay domain.Stay, now time.Time) error {
	if stay.CheckIn.Before(types.DateOf(now)) {
		return fmt.Errorf("%w: %w: checkIn %s", ErrInvalidInput, ErrDateInPast, stay.CheckIn)
	}
	return nil
}

package submit_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// normalizeRequest убирает пробелы по краям полей
func normalizeRequest(req *Request) Request {
	return Request{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		RoomID:   strings.TrimSpace(req.RoomID),
		Date:     strings.TrimSpace(req.Date),
		CheckIn:  strings.TrimSpace(req.CheckIn),
		CheckOut: strings.TrimSpace(req.CheckOut),
	}
}

// validateRequest валидирует поля заявки и собирает интервал проживания.
// Ошибка оборачивает ErrInvalidInput и причину по первому неверному полю.
func validateRequest(v *validator.Validate, req *Request) (domain.Stay, error) {
	if err := v.Struct(req); err != nil {
		return domain.Stay{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, fieldError(err), validation.Describe(err))
	}

	stay, err := domain.ParseStay(req.Date, req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("%w: %w: %v", ErrInvalidInput, stayError(err), err)
	}

	return stay, nil
}

// fieldError причина по первому полю, не прошедшему валидатор
func fieldError(err error) error {
	switch validation.FirstField(err) {
	case "Name":
		return ErrInvalidName
	case "Phone":
		return ErrInvalidPhone
	default:
		// Кроме Name и Phone тегами проверяется только RoomID
		return ErrInvalidRoomID
	}
}

func stayError(err error) error {
	if errors.Is(err, domain.ErrStayTooLong) {
		return ErrStayTooLong
	}
	return ErrInvalidDates
}

// validateNotInPast проверяет, что заезд не раньше сегодняшнего дня
func validateNotInPast(stay domain.Stay, now time.Time) error {
	if stay.CheckIn.Before(types.DateOf(now)) {
		return fmt.Errorf("%w: %w: checkIn %s", ErrInvalidInput, ErrDateInPast, stay.CheckIn)
	}
	return nil
}

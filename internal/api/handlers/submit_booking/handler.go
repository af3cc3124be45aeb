package submit_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	submitBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
	msgInvalidName        = "имя гостя должно содержать от 2 до 100 символов"
	msgInvalidPhone       = "некорректный телефон, ожидается международный формат, например +998901234567"
	msgInvalidRoomID      = "некорректный идентификатор номера"
	msgInvalidDates       = "укажите date или checkIn и checkOut в формате YYYY-MM-DD, дата выезда позже даты заезда"
	msgStayTooLong        = "слишком долгое проживание, максимум %d ночей"
	msgDateInPast         = "дата заезда не может быть в прошлом"
	msgRoomNotFound       = "номер не найден"
	msgAlreadyBooked      = "номер уже забронирован на выбранные даты"
	msgAccepted           = "заявка принята и ожидает подтверждения администратора"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondBadRequest(w, invalidInputMessage(err))

		case errors.Is(err, submitBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, submitBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondBadRequest(w, msgAlreadyBooked)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking request accepted: id=%s, room_id=%s", result.ID, result.RoomID)
	handlers.RespondJSON(w, http.StatusAccepted, FromUseCaseResponse(result))
}

// invalidInputMessage сообщение по конкретной причине ошибки валидации
func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, submitBooking.ErrInvalidName):
		return msgInvalidName
	case errors.Is(err, submitBooking.ErrInvalidPhone):
		return msgInvalidPhone
	case errors.Is(err, submitBooking.ErrInvalidRoomID):
		return msgInvalidRoomID
	case errors.Is(err, submitBooking.ErrInvalidDates):
		return msgInvalidDates
	case errors.Is(err, submitBooking.ErrStayTooLong):
		return fmt.Sprintf(msgStayTooLong, domain.MaxStayNights)
	case errors.Is(err, submitBooking.ErrDateInPast):
		return msgDateInPast
	default:
		return msgInvalidInput
	}
}

package search_rooms

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	searchRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/search_rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры поиска"
	msgInvalidGuests      = "количество гостей должно быть не меньше 1"
	msgInvalidDates       = "укажите date или checkIn и checkOut в формате YYYY-MM-DD, дата выезда позже даты заезда"
	msgStayTooLong        = "слишком долгое проживание, максимум %d ночей"
	msgDateInPast         = "дата заезда не может быть в прошлом"
)

type Handler struct {
	useCase SearchRoomsUseCase
	logger  Logger
}

func NewHandler(useCase SearchRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchRoomsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, searchRooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, invalidInputMessage(err))

		default:
			h.logger.Error("POST /rooms/search - Failed to search rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/search - Found %d rooms: guests=%d", len(result.Rooms), req.Guests)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, searchRooms.ErrInvalidGuests):
		return msgInvalidGuests
	case errors.Is(err, searchRooms.ErrInvalidDates):
		return msgInvalidDates
	case errors.Is(err, searchRooms.ErrStayTooLong):
		return fmt.Sprintf(msgStayTooLong, domain.MaxStayNights)
	case errors.Is(err, searchRooms.ErrDateInPast):
		return msgDateInPast
	default:
		return msgInvalidInput
	}
}

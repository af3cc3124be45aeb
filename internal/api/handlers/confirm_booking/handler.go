package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите roomId и date или checkIn/checkOut в формате YYYY-MM-DD"
	msgRoomNotFound       = "номер не найден"
	msgPendingNotFound    = "заявка на этот номер и дату не найдена"
	msgAlreadyBooked      = "номер уже забронирован на эти даты, заявку можно только отклонить"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/pending/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.DecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/pending/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	checkIn, checkOut, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /admin/pending/confirm - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/pending/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmBooking.ErrRoomNotFound):
			h.logger.Warn("POST /admin/pending/confirm - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, confirmBooking.ErrPendingNotFound):
			h.logger.Warn("POST /admin/pending/confirm - Pending request not found: room_id=%s, check_in=%s", req.RoomID, checkIn)
			handlers.RespondNotFound(w, msgPendingNotFound)

		case errors.Is(err, confirmBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /admin/pending/confirm - Conflict: %v", err)
			handlers.RespondConflict(w, msgAlreadyBooked)

		default:
			h.logger.Error("POST /admin/pending/confirm - Failed to confirm: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/pending/confirm - Confirmed: id=%s, room_id=%s", result.Request.ID, result.Request.RoomID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewDecisionResponse(result.Request, domain.DecisionConfirmed, result.BookedDates))
}

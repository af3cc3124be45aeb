package reject_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	rejectBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reject_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите roomId и date или checkIn/checkOut в формате YYYY-MM-DD"
	msgPendingNotFound    = "заявка на этот номер и дату не найдена"
)

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/pending/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.DecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/pending/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	checkIn, checkOut, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /admin/pending/reject - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectBooking.Request{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/pending/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rejectBooking.ErrPendingNotFound):
			h.logger.Warn("POST /admin/pending/reject - Pending request not found: room_id=%s, check_in=%s", req.RoomID, checkIn)
			handlers.RespondNotFound(w, msgPendingNotFound)

		default:
			h.logger.Error("POST /admin/pending/reject - Failed to reject: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/pending/reject - Rejected: id=%s, room_id=%s", result.Request.ID, result.Request.RoomID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewDecisionResponse(result.Request, domain.DecisionRejected, nil))
}

package list_pending

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending"
)

const msgInvalidLimit = "некорректный параметр limit"

type Handler struct {
	service PendingService
	logger  Logger
}

func NewHandler(service PendingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/pending?limit=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /admin/pending - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.List(r.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, pending.ErrInvalidInput):
			h.logger.Warn("GET /admin/pending - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("GET /admin/pending - Failed to list pending requests: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

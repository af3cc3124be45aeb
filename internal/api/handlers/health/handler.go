package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

const msgStorageUnavailable = "хранилище недоступно"

// Pinger проверка доступности хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc адаптер функции к Pinger
type PingerFunc func(ctx context.Context) error

// PingContext вызывает f(ctx)
func (f PingerFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Error(format string, v ...interface{})
}

// Response ответ health-check
type Response struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Time    string `json:"time"`
}

type Handler struct {
	storage Pinger
	driver  string
	logger  Logger
}

func NewHandler(storage Pinger, driver string, logger Logger) *Handler {
	return &Handler{
		storage: storage,
		driver:  driver,
		logger:  logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.storage.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Storage %s unavailable: %v", h.driver, err)
		handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:  "OK",
		Storage: h.driver,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

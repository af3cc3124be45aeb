package list_pending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) error { return nil }

func TestHandler_Handle(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Pending().Create(context.Background(), &domain.PendingRequest{
		Name:   "Ann",
		Phone:  "+998901234567",
		RoomID: "1",
		Stay:   domain.SingleNightStay(types.MustParseDate("2024-06-01")),
	})
	require.NoError(t, err)

	svc := pending.NewService(store.Pending(), store.TxManager(), nopNotifier{}, (*metrics.Metrics)(nil), time.Hour, logger.Nop())
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/pending", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmCommand":"/confirm 1 2024-06-01"`)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/pending?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/pending?limit=100000", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package confirm_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	june1 = types.MustParseDate("2024-06-01")
	june2 = types.MustParseDate("2024-06-02")
	june3 = types.MustParseDate("2024-06-03")
)

type fixture struct {
	uc      *UseCase
	store   *memory.Store
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Rooms().Upsert(context.Background(), &domain.Room{ID: "1", Capacity: 2}))

	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	return &fixture{
		uc:      NewUseCase(store.Rooms(), store.Pending(), store.TxManager(), m, time.Second, logger.Nop()),
		store:   store,
		metrics: m,
	}
}

func (f *fixture) submit(t *testing.T, name string, stay domain.Stay) *domain.PendingRequest {
	t.Helper()
	req, err := f.store.Pending().Create(context.Background(), &domain.PendingRequest{
		Name:   name,
		Phone:  "+998901234567",
		RoomID: "1",
		Stay:   stay,
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) bookedDates(t *testing.T) []types.Date {
	t.Helper()
	room, err := f.store.Rooms().GetByID(context.Background(), "1")
	require.NoError(t, err)
	return room.BookedDates.Sorted()
}

func (f *fixture) pendingCount(t *testing.T) int {
	t.Helper()
	list, err := f.store.Pending().List(context.Background(), 100)
	require.NoError(t, err)
	return len(list)
}

func TestExecute_RoundTrip(t *testing.T) {
	f := newFixture(t)
	submitted := f.submit(t, "Ann", domain.SingleNightStay(june1))

	resp, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	require.NoError(t, err)

	assert.Equal(t, submitted.ID, resp.Request.ID)
	assert.Equal(t, []types.Date{june1}, resp.BookedDates)
	assert.Equal(t, []types.Date{june1}, f.bookedDates(t))
	assert.Equal(t, 0, f.pendingCount(t))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingDecisionsTotal.WithLabelValues("confirmed", resultSuccess)))
}

func TestExecute_SecondConfirmConflicts(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.SingleNightStay(june1))
	second := f.submit(t, "Bob", domain.SingleNightStay(june1))

	_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Contains(t, err.Error(), "2024-06-01")

	// Устаревшая заявка остается, администратор может её отклонить
	remaining, err := f.store.Pending().Find(context.Background(), domain.PendingFilter{RoomID: "1", CheckIn: june1})
	require.NoError(t, err)
	assert.Equal(t, second.ID, remaining.ID)
	assert.Equal(t, []types.Date{june1}, f.bookedDates(t))
}

func TestExecute_RangeByCheckIn(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.Stay{CheckIn: june1, CheckOut: june3})

	resp, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	require.NoError(t, err)

	assert.Equal(t, []types.Date{june1, june2}, resp.BookedDates)
	assert.Equal(t, []types.Date{june1, june2}, f.bookedDates(t))
}

func TestExecute_RangeNightAlreadyBooked(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.Stay{CheckIn: june1, CheckOut: june3})
	require.NoError(t, f.store.Rooms().MarkBooked(context.Background(), "1", []types.Date{june2}))

	_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Contains(t, err.Error(), "2024-06-02")

	assert.Equal(t, []types.Date{june2}, f.bookedDates(t), "no partial booking")
	assert.Equal(t, 1, f.pendingCount(t))
}

func TestExecute_CheckOutNarrowsLookup(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.SingleNightStay(june1))
	ranged := f.submit(t, "Bob", domain.Stay{CheckIn: june1, CheckOut: june3})

	resp, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1, CheckOut: ptr.Ptr(june3)})
	require.NoError(t, err)
	assert.Equal(t, ranged.ID, resp.Request.ID)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrPendingNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{RoomID: "404", CheckIn: june1})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.Empty(t, f.bookedDates(t))
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "empty room", req: Request{CheckIn: june1}},
		{name: "room id with spaces", req: Request{RoomID: "1 2", CheckIn: june1}},
		{name: "zero date", req: Request{RoomID: "1"}},
		{name: "checkOut equals checkIn", req: Request{RoomID: "1", CheckIn: june1, CheckOut: ptr.Ptr(june1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentConfirms(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 8; i++ {
		f.submit(t, "Guest", domain.SingleNightStay(june1))
	}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]int)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				results["ok"]++
			case errors.Is(err, ErrAlreadyBooked), errors.Is(err, ErrPendingNotFound):
				results["rejected"]++
			default:
				results["other"]++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, results["ok"])
	assert.Equal(t, workers-1, results["rejected"])
	assert.Equal(t, []types.Date{june1}, f.bookedDates(t))
}

// racingRooms имитирует параллельное подтверждение, записавшее дату между проверкой и MarkBooked
type racingRooms struct {
	RoomRepository
}

func (r racingRooms) MarkBooked(ctx context.Context, roomID string, nights []types.Date) error {
	return storage.ErrDateAlreadyBooked
}

func TestExecute_StoreRejectsRace(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.SingleNightStay(june1))
	f.uc.roomRepo = racingRooms{RoomRepository: f.store.Rooms()}

	_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Equal(t, 1, f.pendingCount(t), "pending request must survive a failed confirm")
}

// failingDelete ломает удаление заявки после записи дат
type failingDelete struct {
	PendingRepository
}

func (p failingDelete) Delete(ctx context.Context, id string) error {
	return errors.New("connection reset")
}

func TestExecute_RollbackOnDeleteFailure(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.SingleNightStay(june1))
	f.uc.pendingRepo = failingDelete{PendingRepository: f.store.Pending()}

	_, err := f.uc.Execute(context.Background(), &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.Empty(t, f.bookedDates(t), "booked dates must roll back together with the failed delete")
	assert.Equal(t, 1, f.pendingCount(t))
}

func TestExecute_CanceledContext(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "Ann", domain.SingleNightStay(june1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, &Request{RoomID: "1", CheckIn: june1})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, f.bookedDates(t))
}

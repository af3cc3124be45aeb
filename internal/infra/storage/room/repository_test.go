package room

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const selectRoom = "SELECT id, name, description, capacity, created_at, updated_at FROM rooms"

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func roomRows() *sqlmock.Rows {
	return sqlmock.NewRows(roomColumns)
}

func nights(dates ...string) []types.Date {
	result := make([]types.Date, 0, len(dates))
	for _, d := range dates {
		result = append(result, types.MustParseDate(d))
	}
	return result
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(selectRoom+" WHERE id = $1") + "$").
		WithArgs("2").
		WillReturnRows(roomRows().AddRow("2", []byte(`{"ru":"Двухместный"}`), []byte(`{}`), 2, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id, booked_date FROM room_booked_dates WHERE room_id IN ($1)")).
		WithArgs("2").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "booked_date"}).
			AddRow("2", "2024-06-02").
			AddRow("2", "2024-06-01"))

	room, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, "2", room.ID)
	assert.Equal(t, "Двухместный", room.Name.In("ru"))
	assert.Equal(t, 2, room.Capacity)
	assert.Equal(t, nights("2024-06-01", "2024-06-02"), room.BookedDates.Sorted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksRowInTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectRoom + " WHERE id = $1 FOR UPDATE")).
		WithArgs("1").
		WillReturnRows(roomRows().AddRow("1", []byte(`{}`), []byte(`{}`), 1, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM room_booked_dates")).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "booked_date"}))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	room, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, room.BookedDates.Sorted())

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectRoom)).
		WithArgs("404").
		WillReturnRows(roomRows())

	_, err := repo.GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAvailable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		selectRoom+" WHERE capacity >= $1 AND NOT EXISTS (SELECT 1 FROM room_booked_dates d "+
			"WHERE d.room_id = rooms.id AND d.booked_date = ANY($2::date[])) ORDER BY id ASC",
	)).
		WithArgs(2, `{"2024-06-01","2024-06-02"}`).
		WillReturnRows(roomRows().
			AddRow("2", []byte(`{}`), []byte(`{}`), 2, now, now).
			AddRow("3", []byte(`{}`), []byte(`{}`), 4, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id, booked_date FROM room_booked_dates WHERE room_id IN ($1,$2)")).
		WithArgs("2", "3").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "booked_date"}).AddRow("3", "2024-06-05"))

	rooms, err := repo.FindAvailable(context.Background(), 2, nights("2024-06-01", "2024-06-02"))
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, "2", rooms[0].ID)
	assert.Empty(t, rooms[0].BookedDates.Sorted())
	assert.Equal(t, "3", rooms[1].ID)
	assert.True(t, rooms[1].IsBooked(types.MustParseDate("2024-06-05")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAvailable_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ANY($2::date[])")).
		WillReturnRows(roomRows())

	rooms, err := repo.FindAvailable(context.Background(), 5, nights("2024-06-01"))
	require.NoError(t, err)

	// пустой список, а не nil: сериализуется как []
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkBooked(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms SET updated_at = NOW() WHERE id = $1")).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_booked_dates (room_id,booked_date) VALUES ($1,$2),($3,$4)")).
		WithArgs("1", "2024-06-01", "1", "2024-06-02").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.MarkBooked(context.Background(), "1", nights("2024-06-01", "2024-06-02"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkBooked_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "room not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: storage.ErrRoomNotFound,
		},
		{
			name: "unique violation",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_booked_dates")).
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			wantErr: storage.ErrDateAlreadyBooked,
		},
		{
			name: "other insert error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_booked_dates")).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: storage.ErrExecQuery,
		},
		{
			name: "update error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: storage.ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)
			tt.setup(mock)

			err := repo.MarkBooked(context.Background(), "1", nights("2024-06-01"))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_MarkBooked_NoNights(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	require.NoError(t, repo.MarkBooked(context.Background(), "1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms (id,name,description,capacity) VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO UPDATE SET")).
		WithArgs("1", []byte(`{"en":"Single"}`), []byte(`{"en":"One bed"}`), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Room{
		ID:          "1",
		Name:        domain.LocalizedText{"en": "Single"},
		Description: domain.LocalizedText{"en": "One bed"},
		Capacity:    1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

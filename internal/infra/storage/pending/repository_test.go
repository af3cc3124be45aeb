package pending

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const selectPending = "SELECT id, name, phone, room_id, check_in, check_out, created_at FROM pending_requests"

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func pendingRows() *sqlmock.Rows {
	return sqlmock.NewRows(pendingColumns)
}

func stay(checkIn, checkOut string) domain.Stay {
	return domain.Stay{CheckIn: types.MustParseDate(checkIn), CheckOut: types.MustParseDate(checkOut)}
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	createdAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO pending_requests (name,phone,room_id,check_in,check_out) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at",
	)).
		WithArgs("Ali", "+998901234567", "1", "2024-06-01", "2024-06-03").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", createdAt))

	req := &domain.PendingRequest{Name: "Ali", Phone: "+998901234567", RoomID: "1", Stay: stay("2024-06-01", "2024-06-03")}

	created, err := repo.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "42", created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.Equal(t, "Ali", created.Name)
	assert.Empty(t, req.ID, "исходная заявка не меняется")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Find(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	checkOut := types.MustParseDate("2024-06-03")

	tests := []struct {
		name      string
		filter    domain.PendingFilter
		inTx      bool
		wantQuery string
		wantArgs  []driver.Value
	}{
		{
			name:      "by check-in",
			filter:    domain.PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01")},
			wantQuery: " WHERE room_id = $1 AND check_in = $2 ORDER BY created_at ASC, id ASC LIMIT 1",
			wantArgs:  []driver.Value{"1", "2024-06-01"},
		},
		{
			name:      "by range",
			filter:    domain.PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01"), CheckOut: &checkOut},
			wantQuery: " WHERE room_id = $1 AND check_in = $2 AND check_out = $3 ORDER BY created_at ASC, id ASC LIMIT 1",
			wantArgs:  []driver.Value{"1", "2024-06-01", "2024-06-03"},
		},
		{
			name:      "locked in transaction",
			filter:    domain.PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01")},
			inTx:      true,
			wantQuery: " WHERE room_id = $1 AND check_in = $2 ORDER BY created_at ASC, id ASC LIMIT 1 FOR UPDATE",
			wantArgs:  []driver.Value{"1", "2024-06-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)
			ctx := context.Background()

			if tt.inTx {
				mock.ExpectBegin()
			}
			mock.ExpectQuery(regexp.QuoteMeta(selectPending+tt.wantQuery) + "$").
				WithArgs(tt.wantArgs...).
				WillReturnRows(pendingRows().AddRow("7", "Ali", "+998901234567", "1", "2024-06-01", "2024-06-03", createdAt))
			if tt.inTx {
				mock.ExpectRollback()
				tx, err := db.BeginTx(ctx, nil)
				require.NoError(t, err)
				defer func() { _ = tx.Rollback() }()
				ctx = dbmetrics.WithTx(ctx, tx)
			}

			req, err := repo.Find(ctx, tt.filter)
			require.NoError(t, err)

			assert.Equal(t, "7", req.ID)
			assert.Equal(t, stay("2024-06-01", "2024-06-03"), req.Stay)
			assert.Equal(t, createdAt, req.CreatedAt)
		})
	}
}

func TestRepository_Find_Args(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	checkOut := types.MustParseDate("2024-06-03")

	mock.ExpectQuery(regexp.QuoteMeta(selectPending)).
		WithArgs("1", "2024-06-01", "2024-06-03").
		WillReturnRows(pendingRows())

	_, err := repo.Find(context.Background(), domain.PendingFilter{
		RoomID:   "1",
		CheckIn:  types.MustParseDate("2024-06-01"),
		CheckOut: &checkOut,
	})
	assert.ErrorIs(t, err, storage.ErrPendingRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		wantErr error
	}{
		{
			name:   "deleted",
			result: sqlmock.NewResult(0, 1),
		},
		{
			name:    "already gone",
			result:  sqlmock.NewResult(0, 0),
			wantErr: storage.ErrPendingRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_requests WHERE id = $1")).
				WithArgs("7").
				WillReturnResult(tt.result)

			err := repo.Delete(context.Background(), "7")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	createdAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectPending + " ORDER BY created_at ASC, id ASC LIMIT 20")).
		WillReturnRows(pendingRows().
			AddRow("1", "Ali", "+998901234567", "1", "2024-06-01", "2024-06-02", createdAt).
			AddRow("2", "Vali", "+998907654321", "2", "2024-06-05", "2024-06-08", createdAt.Add(time.Minute)))

	list, err := repo.List(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
	assert.Equal(t, stay("2024-06-05", "2024-06-08"), list[1].Stay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteCreatedBefore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"DELETE FROM pending_requests WHERE created_at < $1 RETURNING id, name, phone, room_id, check_in, check_out, created_at",
	)).
		WithArgs(cutoff).
		WillReturnRows(pendingRows().
			AddRow("3", "Ali", "+998901234567", "1", "2024-05-20", "2024-05-21", cutoff.Add(-48*time.Hour)))

	expired, err := repo.DeleteCreatedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, expired, 1)

	assert.Equal(t, "3", expired[0].ID)
	assert.Equal(t, "1", expired[0].RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteCreatedBefore_Nothing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("RETURNING")).
		WillReturnRows(pendingRows())

	expired, err := repo.DeleteCreatedBefore(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, expired)
	assert.Empty(t, expired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

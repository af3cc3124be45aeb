package pending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var pendingColumns = []string{
	"id",
	"name",
	"phone",
	"room_id",
	"check_in",
	"check_out",
	"created_at",
}

// Repository заявки, ожидающие решения администратора, в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку. ID и время создания назначает БД.
// Существование номера не проверяется.
func (r *Repository) Create(ctx context.Context, req *domain.PendingRequest) (*domain.PendingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pending_requests").
		Columns("name", "phone", "room_id", "check_in", "check_out").
		Values(req.Name, req.Phone, req.RoomID, req.Stay.CheckIn, req.Stay.CheckOut).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", storage.ErrBuildQuery, err)
	}

	created := *req
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", storage.ErrExecQuery, err)
	}

	return &created, nil
}

// Find возвращает самую старую заявку, подходящую под фильтр.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) Find(ctx context.Context, filter domain.PendingFilter) (*domain.PendingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(pendingColumns...).
		From("pending_requests").
		Where(squirrel.Eq{"room_id": filter.RoomID}).
		Where(squirrel.Eq{"check_in": filter.CheckIn})

	if filter.CheckOut != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"check_out": *filter.CheckOut})
	}

	selectBuilder = selectBuilder.OrderBy("created_at ASC", "id ASC").Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %w", storage.ErrBuildQuery, err)
	}

	req, err := scanPending(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrPendingRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Find - scan pending request: %w", storage.ErrScanRow, err)
	}

	return req, nil
}

// Delete удаляет заявку
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pending_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", storage.ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", storage.ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", storage.ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return storage.ErrPendingRequestNotFound
	}

	return nil
}

// List возвращает заявки от старых к новым
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.PendingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(pendingColumns...).
		From("pending_requests").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPendingRows(rows, "List")
}

// DeleteCreatedBefore удаляет заявки, созданные раньше cutoff, и возвращает их
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.PendingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pending_requests").
		Where(squirrel.Lt{"created_at": cutoff}).
		Suffix("RETURNING id, name, phone, room_id, check_in, check_out, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteCreatedBefore - build delete query: %w", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteCreatedBefore - execute delete: %w", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPendingRows(rows, "DeleteCreatedBefore")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPending(row rowScanner) (*domain.PendingRequest, error) {
	var req domain.PendingRequest
	if err := row.Scan(
		&req.ID,
		&req.Name,
		&req.Phone,
		&req.RoomID,
		&req.Stay.CheckIn,
		&req.Stay.CheckOut,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanPendingRows(rows *sql.Rows, method string) ([]*domain.PendingRequest, error) {
	result := make([]*domain.PendingRequest, 0)
	for rows.Next() {
		req, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan pending request: %w", storage.ErrScanRow, method, err)
		}
		result = append(result, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", storage.ErrScanRow, method, err)
	}

	return result, nil
}

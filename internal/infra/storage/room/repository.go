package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

var roomColumns = []string{
	"id",
	"name",
	"description",
	"capacity",
	"created_at",
	"updated_at",
}

// Repository каталог номеров в PostgreSQL.
// Занятые даты хранятся в room_booked_dates с первичным ключом (room_id, booked_date),
// поэтому одну и ту же дату нельзя записать дважды даже при гонке транзакций.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает номер вместе с занятыми датами.
// Внутри транзакции строка номера блокируется (FOR UPDATE), чтобы подтверждения по одному номеру шли последовательно.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", storage.ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", storage.ErrScanRow, err)
	}

	booked, err := r.loadBookedDates(ctx, executor, []string{room.ID})
	if err != nil {
		return nil, err
	}
	room.BookedDates = booked[room.ID]

	return room, nil
}

// FindAvailable возвращает номера вместимостью не меньше minCapacity, у которых свободны все ночи nights.
// Порядок - по id номера.
func (r *Repository) FindAvailable(ctx context.Context, minCapacity int, nights []types.Date) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.GtOrEq{"capacity": minCapacity}).
		OrderBy("id ASC")

	if len(nights) > 0 {
		selectBuilder = selectBuilder.Where(
			"NOT EXISTS (SELECT 1 FROM room_booked_dates d WHERE d.room_id = rooms.id AND d.booked_date = ANY(?::date[]))",
			pq.Array(types.DateStrings(nights)),
		)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - build select query: %w", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - execute query: %w", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	ids := make([]string, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindAvailable - scan room: %w", storage.ErrScanRow, err)
		}
		rooms = append(rooms, room)
		ids = append(ids, room.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - rows error: %w", storage.ErrScanRow, err)
	}

	if len(rooms) == 0 {
		return rooms, nil
	}

	booked, err := r.loadBookedDates(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		room.BookedDates = booked[room.ID]
	}

	return rooms, nil
}

// MarkBooked добавляет ночи в список занятых дат номера.
// Вставка одним INSERT без ON CONFLICT: если хотя бы одна дата уже занята, оператор падает целиком
// и возвращается storage.ErrDateAlreadyBooked. Внутри транзакции ошибка откатывает и остальные изменения.
func (r *Repository) MarkBooked(ctx context.Context, roomID string, nights []types.Date) error {
	if len(nights) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Обновление строки номера: проверка существования + конфликт сериализации для параллельной транзакции
	query, args, err := psqlbuilder.Update("rooms").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %w", storage.ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %w", storage.ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %w", storage.ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return storage.ErrRoomNotFound
	}

	insertBuilder := psqlbuilder.Insert("room_booked_dates").Columns("room_id", "booked_date")
	for _, night := range nights {
		insertBuilder = insertBuilder.Values(roomID, night)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build insert query: %w", storage.ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: room=%s", storage.ErrDateAlreadyBooked, roomID)
		}
		return fmt.Errorf("%w: MarkBooked - execute insert: %w", storage.ErrExecQuery, err)
	}

	return nil
}

// Upsert создает номер или обновляет его описание и вместимость. Занятые даты не затрагиваются.
func (r *Repository) Upsert(ctx context.Context, room *domain.Room) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	name, err := json.Marshal(room.Name)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal name: %w", storage.ErrEncode, err)
	}
	description, err := json.Marshal(room.Description)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal description: %w", storage.ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("id", "name", "description", "capacity").
		Values(room.ID, name, description, room.Capacity).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			capacity = EXCLUDED.capacity,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", storage.ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", storage.ErrExecQuery, err)
	}

	return nil
}

// loadBookedDates загружает занятые даты для набора номеров
func (r *Repository) loadBookedDates(ctx context.Context, executor DBExecutor, roomIDs []string) (map[string]domain.DateSet, error) {
	query, args, err := psqlbuilder.Select("room_id", "booked_date").
		From("room_booked_dates").
		Where(squirrel.Eq{"room_id": roomIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookedDates - build select query: %w", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookedDates - execute query: %w", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]domain.DateSet, len(roomIDs))
	for _, id := range roomIDs {
		result[id] = domain.NewDateSet()
	}

	for rows.Next() {
		var (
			roomID string
			date   types.Date
		)
		if err := rows.Scan(&roomID, &date); err != nil {
			return nil, fmt.Errorf("%w: loadBookedDates - scan row: %w", storage.ErrScanRow, err)
		}
		if set, ok := result[roomID]; ok {
			set.Add(date)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadBookedDates - rows error: %w", storage.ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRoom читает строку rooms (без занятых дат)
func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room                 domain.Room
		name, description    []byte
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&room.ID,
		&name,
		&description,
		&room.Capacity,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(name, &room.Name); err != nil {
		return nil, fmt.Errorf("decode name: %w", err)
	}
	if err := json.Unmarshal(description, &room.Description); err != nil {
		return nil, fmt.Errorf("decode description: %w", err)
	}

	room.BookedDates = domain.NewDateSet()
	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

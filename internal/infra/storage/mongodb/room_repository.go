package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// RoomRepository каталог номеров в MongoDB: один документ на номер, занятые даты - массив booked_dates
type RoomRepository struct {
	coll *mongo.Collection
}

// NewRoomRepository создает репозиторий номеров
func NewRoomRepository(coll *mongo.Collection) *RoomRepository {
	return &RoomRepository{coll: coll}
}

// GetByID получает номер по идентификатору
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var doc roomDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find room: %w", storage.ErrExecQuery, err)
	}

	room, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode room: %w", storage.ErrScanRow, err)
	}

	return room, nil
}

// FindAvailable возвращает номера вместимостью не меньше minCapacity без занятых ночей из nights
func (r *RoomRepository) FindAvailable(ctx context.Context, minCapacity int, nights []types.Date) ([]*domain.Room, error) {
	filter := bson.M{"capacity": bson.M{"$gte": minCapacity}}
	if len(nights) > 0 {
		filter["booked_dates"] = bson.M{"$nin": types.DateStrings(nights)}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - find rooms: %w", storage.ErrExecQuery, err)
	}
	defer cursor.Close(ctx)

	rooms := make([]*domain.Room, 0)
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: FindAvailable - decode document: %w", storage.ErrScanRow, err)
		}
		room, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: FindAvailable - decode room: %w", storage.ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - cursor error: %w", storage.ErrScanRow, err)
	}

	return rooms, nil
}

// MarkBooked добавляет ночи в booked_dates одной атомарной операцией.
// Фильтр $nin срабатывает только если ни одна из ночей еще не занята (compare-and-swap).
func (r *RoomRepository) MarkBooked(ctx context.Context, roomID string, nights []types.Date) error {
	if len(nights) == 0 {
		return nil
	}

	dates := types.DateStrings(nights)

	result, err := r.coll.UpdateOne(ctx, markBookedFilter(roomID, dates), markBookedUpdate(dates, now()))
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - update room: %w", storage.ErrExecQuery, err)
	}

	if result.MatchedCount > 0 {
		return nil
	}

	// Документ не подошел под фильтр: либо номера нет, либо дата уже занята
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": roomID})
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - count rooms: %w", storage.ErrExecQuery, err)
	}
	if count == 0 {
		return storage.ErrRoomNotFound
	}

	return fmt.Errorf("%w: room=%s", storage.ErrDateAlreadyBooked, roomID)
}

// markBookedFilter номер roomID, у которого ни одна из dates еще не занята
func markBookedFilter(roomID string, dates []string) bson.M {
	return bson.M{
		"id":           roomID,
		"booked_dates": bson.M{"$nin": dates},
	}
}

func markBookedUpdate(dates []string, ts time.Time) bson.M {
	return bson.M{
		"$addToSet": bson.M{"booked_dates": bson.M{"$each": dates}},
		"$set":      bson.M{"updated_at": ts},
	}
}

// Upsert создает номер или обновляет описание и вместимость. booked_dates не затрагивается.
func (r *RoomRepository) Upsert(ctx context.Context, room *domain.Room) error {
	ts := now()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": room.ID},
		bson.M{
			"$set": bson.M{
				"name":        map[string]string(room.Name),
				"description": map[string]string(room.Description),
				"capacity":    room.Capacity,
				"updated_at":  ts,
			},
			"$setOnInsert": bson.M{
				"booked_dates": []string{},
				"created_at":   ts,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: Upsert - update room: %w", storage.ErrExecQuery, err)
	}

	return nil
}

// now время с точностью BSON (миллисекунды)
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

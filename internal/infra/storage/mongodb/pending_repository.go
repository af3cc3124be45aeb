package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

var oldestFirst = bson.D{
	{Key: "created_at", Value: 1},
	{Key: "_id", Value: 1},
}

// PendingRepository заявки, ожидающие решения, в MongoDB
type PendingRepository struct {
	coll *mongo.Collection
}

// NewPendingRepository создает репозиторий заявок
func NewPendingRepository(coll *mongo.Collection) *PendingRepository {
	return &PendingRepository{coll: coll}
}

// Create сохраняет заявку с новым UUID
func (r *PendingRepository) Create(ctx context.Context, req *domain.PendingRequest) (*domain.PendingRequest, error) {
	created := *req
	created.ID = uuid.NewString()
	created.CreatedAt = now()

	if _, err := r.coll.InsertOne(ctx, newPendingDocument(&created)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert pending request: %w", storage.ErrExecQuery, err)
	}

	return &created, nil
}

// Find возвращает самую старую заявку, подходящую под фильтр
func (r *PendingRepository) Find(ctx context.Context, filter domain.PendingFilter) (*domain.PendingRequest, error) {
	query := bson.M{
		"room_id":  filter.RoomID,
		"check_in": filter.CheckIn.String(),
	}
	if filter.CheckOut != nil {
		query["check_out"] = filter.CheckOut.String()
	}

	var doc pendingDocument
	err := r.coll.FindOne(ctx, query, options.FindOne().SetSort(oldestFirst)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrPendingRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Find - find pending request: %w", storage.ErrExecQuery, err)
	}

	req, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - decode pending request: %w", storage.ErrScanRow, err)
	}

	return req, nil
}

// Delete удаляет заявку
func (r *PendingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete pending request: %w", storage.ErrExecQuery, err)
	}

	if result.DeletedCount == 0 {
		return storage.ErrPendingRequestNotFound
	}

	return nil
}

// List возвращает заявки от старых к новым
func (r *PendingRepository) List(ctx context.Context, limit int) ([]*domain.PendingRequest, error) {
	opts := options.Find().SetSort(oldestFirst).SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts, "List")
}

// DeleteCreatedBefore удаляет заявки старше cutoff и возвращает их.
// Выбор и удаление - две операции, для атомарности вызывать внутри транзакции.
func (r *PendingRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.PendingRequest, error) {
	stale, err := r.find(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}}, options.Find().SetSort(oldestFirst), "DeleteCreatedBefore")
	if err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return stale, nil
	}

	ids := make([]string, 0, len(stale))
	for _, req := range stale {
		ids = append(ids, req.ID)
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, fmt.Errorf("%w: DeleteCreatedBefore - delete pending requests: %w", storage.ErrExecQuery, err)
	}

	return stale, nil
}

func (r *PendingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions, method string) ([]*domain.PendingRequest, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find pending requests: %w", storage.ErrExecQuery, method, err)
	}
	defer cursor.Close(ctx)

	result := make([]*domain.PendingRequest, 0)
	for cursor.Next(ctx) {
		var doc pendingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s - decode document: %w", storage.ErrScanRow, method, err)
		}
		req, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - decode pending request: %w", storage.ErrScanRow, method, err)
		}
		result = append(result, req)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - cursor error: %w", storage.ErrScanRow, method, err)
	}

	return result, nil
}

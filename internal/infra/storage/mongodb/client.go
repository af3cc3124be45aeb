package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

const (
	roomsCollection   = "rooms"
	pendingCollection = "pending_requests"
)

// Config параметры подключения к MongoDB
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	RetryAttempts  int // 0 - пробовать бесконечно
	RetryInterval  time.Duration
}

// Client подключение к базе MongoDB
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect подключается к MongoDB, повторяя попытки каждые cfg.RetryInterval
func Connect(ctx context.Context, cfg Config, logger Logger) (*Client, error) {
	for attempt := 1; ; attempt++ {
		client, err := connectOnce(ctx, cfg)
		if err == nil {
			logger.Info("Connected to MongoDB: database=%s", cfg.Database)
			return &Client{client: client, db: client.Database(cfg.Database)}, nil
		}

		if cfg.RetryAttempts > 0 && attempt >= cfg.RetryAttempts {
			return nil, fmt.Errorf("%w: after %d attempts: %w", ErrConnect, attempt, err)
		}

		logger.Warn("MongoDB connection failed (attempt %d): %v. Retrying in %s", attempt, err, cfg.RetryInterval)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
}

func connectOnce(ctx context.Context, cfg Config) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// EnsureIndexes создает индексы коллекций (идемпотентно)
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(roomsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "capacity", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - rooms: %w", storage.ErrExecQuery, err)
	}

	_, err = c.db.Collection(pendingCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "check_in", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - pending_requests: %w", storage.ErrExecQuery, err)
	}

	return nil
}

// Ping проверяет доступность сервера
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Disconnect закрывает подключение
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Rooms возвращает хранилище номеров
func (c *Client) Rooms() *RoomRepository {
	return NewRoomRepository(c.db.Collection(roomsCollection))
}

// Pending возвращает хранилище заявок
func (c *Client) Pending() *PendingRepository {
	return NewPendingRepository(c.db.Collection(pendingCollection))
}

// TxManager возвращает менеджер транзакций на сессиях этого клиента
func (c *Client) TxManager() *TxManager {
	return NewTxManager(c.client)
}

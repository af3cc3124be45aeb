package backend

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/mongodb"
	pendingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/pending"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// Backend хранилища номеров и заявок с общим менеджером транзакций
type Backend struct {
	Driver    string
	Rooms     RoomStore
	Pending   PendingStore
	TxManager TransactionManager

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// PingContext проверяет доступность хранилища
func (b *Backend) PingContext(ctx context.Context) error {
	return b.ping(ctx)
}

// Close освобождает подключения
func (b *Backend) Close(ctx context.Context) error {
	return b.close(ctx)
}

// Open подключается к хранилищу cfg.Storage.Driver.
// m может быть nil; тогда PostgreSQL работает без обертки метрик. stopCh останавливает сбор статистики пула.
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database, m, stopCh, log)
	case config.DriverMongoDB:
		return openMongo(ctx, cfg.Mongo, log)
	case config.DriverMemory:
		log.Warn("Using in-memory storage: data is lost on restart")
		return openMemory(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, stopCh <-chan struct{}, log Logger) (*Backend, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(config.Seconds(cfg.ConnMaxLifetime))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("Successfully connected to PostgreSQL (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	b := &Backend{
		Driver: config.DriverPostgres,
		close:  func(context.Context) error { return db.Close() },
	}

	if m != nil {
		wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")

		b.Rooms = roomRepo.NewRepository(wrapped)
		b.Pending = pendingRepo.NewRepository(wrapped)
		b.TxManager = txmanager.NewTransactionManager(wrapped)
		b.ping = wrapped.PingContext
		return b, nil
	}

	b.Rooms = roomRepo.NewRepository(db)
	b.Pending = pendingRepo.NewRepository(db)
	b.TxManager = simpletxmanager.NewTransactionManager(db)
	b.ping = db.PingContext
	return b, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, log Logger) (*Backend, error) {
	client, err := mongodb.Connect(ctx, mongodb.Config{
		URI:            cfg.URI,
		Database:       cfg.Database,
		ConnectTimeout: config.Seconds(cfg.ConnectTimeout),
		RetryAttempts:  cfg.RetryAttempts,
		RetryInterval:  config.Seconds(cfg.RetryInterval),
	}, log)
	if err != nil {
		return nil, err
	}

	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}

	return &Backend{
		Driver:    config.DriverMongoDB,
		Rooms:     client.Rooms(),
		Pending:   client.Pending(),
		TxManager: client.TxManager(),
		ping:      client.Ping,
		close:     client.Disconnect,
	}, nil
}

func openMemory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Driver:    config.DriverMemory,
		Rooms:     store.Rooms(),
		Pending:   store.Pending(),
		TxManager: store.TxManager(),
		ping:      func(context.Context) error { return nil },
		close:     func(context.Context) error { return nil },
	}
}

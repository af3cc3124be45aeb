package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// TxManager выполняет функцию в транзакции MongoDB (нужен replica set).
// Сессия передается через контекст: операции коллекций с этим контекстом входят в транзакцию.
type TxManager struct {
	client *mongo.Client
}

// NewTxManager создает менеджер транзакций
func NewTxManager(client *mongo.Client) *TxManager {
	return &TxManager{client: client}
}

// DoSerializable выполняет fn в snapshot-транзакции с majority write concern.
// Конфликт записи в параллельной транзакции - TransientTransactionError, драйвер повторяет fn целиком.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов присоединяется к внешней транзакции
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %w", storage.ErrTransaction, err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txOpts)

	return err
}

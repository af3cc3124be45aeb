package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// TxManager транзакции хранилища в памяти: эксклюзивная блокировка + откат к снимку при ошибке
type TxManager struct {
	store *Store
}

// DoSerializable выполняет fn эксклюзивно. Вложенный вызов присоединяется к внешней транзакции.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := m.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransaction, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

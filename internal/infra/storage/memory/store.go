package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// Store хранилище номеров и заявок в памяти процесса.
// Все операции выполняются под одной блокировкой; транзакция держит её до конца и
// при ошибке откатывает состояние к снимку.
type Store struct {
	mu      sync.Mutex
	rooms   map[string]*domain.Room
	pending map[string]*pendingEntry
	seq     int64
	now     func() time.Time
}

type pendingEntry struct {
	req *domain.PendingRequest
	seq int64
}

// Option настройка хранилища
type Option func(*Store)

// WithClock подменяет источник времени для CreatedAt заявок
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore создает пустое хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		rooms:   make(map[string]*domain.Room),
		pending: make(map[string]*pendingEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rooms возвращает хранилище номеров
func (s *Store) Rooms() *RoomRepository {
	return &RoomRepository{store: s}
}

// Pending возвращает хранилище заявок
func (s *Store) Pending() *PendingRepository {
	return &PendingRepository{store: s}
}

// TxManager возвращает менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// do выполняет fn под блокировкой хранилища. Внутри транзакции блокировка уже взята.
func (s *Store) do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransaction, err)
	}

	if s.inTx(ctx) {
		return fn()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn()
}

type snapshot struct {
	rooms   map[string]*domain.Room
	pending map[string]*pendingEntry
}

func (s *Store) snapshot() snapshot {
	rooms := make(map[string]*domain.Room, len(s.rooms))
	for id, room := range s.rooms {
		rooms[id] = cloneRoom(room)
	}
	pending := make(map[string]*pendingEntry, len(s.pending))
	for id, entry := range s.pending {
		pending[id] = entry
	}
	return snapshot{rooms: rooms, pending: pending}
}

func (s *Store) restore(snap snapshot) {
	s.rooms = snap.rooms
	s.pending = snap.pending
}

func cloneRoom(room *domain.Room) *domain.Room {
	clone := *room
	clone.Name = cloneText(room.Name)
	clone.Description = cloneText(room.Description)
	if room.BookedDates != nil {
		clone.BookedDates = room.BookedDates.Clone()
	} else {
		clone.BookedDates = domain.NewDateSet()
	}
	return &clone
}

func cloneText(text domain.LocalizedText) domain.LocalizedText {
	if text == nil {
		return nil
	}
	clone := make(domain.LocalizedText, len(text))
	for k, v := range text {
		clone[k] = v
	}
	return clone
}

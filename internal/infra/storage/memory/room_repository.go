package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// RoomRepository номера в памяти. Наружу отдаются копии.
type RoomRepository struct {
	store *Store
}

// GetByID получает номер по идентификатору
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room *domain.Room
	err := r.store.do(ctx, func() error {
		stored, ok := r.store.rooms[id]
		if !ok {
			return storage.ErrRoomNotFound
		}
		room = cloneRoom(stored)
		return nil
	})
	return room, err
}

// FindAvailable возвращает номера вместимостью не меньше minCapacity без занятых ночей из nights, по id
func (r *RoomRepository) FindAvailable(ctx context.Context, minCapacity int, nights []types.Date) ([]*domain.Room, error) {
	rooms := make([]*domain.Room, 0)
	err := r.store.do(ctx, func() error {
		for _, stored := range r.store.rooms {
			if !stored.Fits(minCapacity) || anyBooked(stored, nights) {
				continue
			}
			rooms = append(rooms, cloneRoom(stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// MarkBooked добавляет все ночи или ни одной
func (r *RoomRepository) MarkBooked(ctx context.Context, roomID string, nights []types.Date) error {
	return r.store.do(ctx, func() error {
		stored, ok := r.store.rooms[roomID]
		if !ok {
			return storage.ErrRoomNotFound
		}
		if anyBooked(stored, nights) {
			return fmt.Errorf("%w: room=%s", storage.ErrDateAlreadyBooked, roomID)
		}
		if len(nights) == 0 {
			return nil
		}
		for _, night := range nights {
			stored.BookedDates.Add(night)
		}
		stored.UpdatedAt = r.store.now()
		return nil
	})
}

// Upsert создает номер или обновляет описание и вместимость, сохраняя занятые даты
func (r *RoomRepository) Upsert(ctx context.Context, room *domain.Room) error {
	return r.store.do(ctx, func() error {
		ts := r.store.now()
		next := cloneRoom(room)
		if stored, ok := r.store.rooms[room.ID]; ok {
			next.BookedDates = stored.BookedDates
			next.CreatedAt = stored.CreatedAt
		} else {
			next.CreatedAt = ts
		}
		next.UpdatedAt = ts
		r.store.rooms[room.ID] = next
		return nil
	})
}

func anyBooked(room *domain.Room, nights []types.Date) bool {
	for _, night := range nights {
		if room.IsBooked(night) {
			return true
		}
	}
	return false
}

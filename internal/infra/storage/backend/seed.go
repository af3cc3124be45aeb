package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

var ErrInvalidSeed = errors.New("backend: invalid seed file")

type seedFile struct {
	Rooms []seedRoom `toml:"rooms"`
}

type seedRoom struct {
	ID          string            `toml:"id" validate:"required,room_id"`
	Capacity    int               `toml:"capacity" validate:"min=1"`
	Name        map[string]string `toml:"name" validate:"required,min=1"`
	Description map[string]string `toml:"description"`
}

// LoadRooms читает каталог номеров из TOML файла
func LoadRooms(path string) ([]*domain.Room, error) {
	var file seedFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, path, err)
	}

	v := validation.New()
	seen := make(map[string]struct{}, len(file.Rooms))
	rooms := make([]*domain.Room, 0, len(file.Rooms))
	for i, r := range file.Rooms {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: room #%d: %s", ErrInvalidSeed, i+1, validation.Describe(err))
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate room id %q", ErrInvalidSeed, r.ID)
		}
		seen[r.ID] = struct{}{}

		rooms = append(rooms, &domain.Room{
			ID:          r.ID,
			Name:        domain.LocalizedText(r.Name),
			Description: domain.LocalizedText(r.Description),
			Capacity:    r.Capacity,
		})
	}

	return rooms, nil
}

// SeedRooms загружает каталог и сохраняет каждый номер через Upsert. Занятые даты не трогаются.
func SeedRooms(ctx context.Context, store RoomStore, path string) (int, error) {
	rooms, err := LoadRooms(path)
	if err != nil {
		return 0, err
	}

	for _, room := range rooms {
		if err := store.Upsert(ctx, room); err != nil {
			return 0, fmt.Errorf("upsert room %s: %w", room.ID, err)
		}
	}

	return len(rooms), nil
}

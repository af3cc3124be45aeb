package search_rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// UseCase use case поиска свободных номеров
type UseCase struct {
	roomRepo     RoomRepository
	validate     *validator.Validate
	allowPast    bool
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. allowPast разрешает поиск по прошедшим датам.
func NewUseCase(roomRepo RoomRepository, allowPast bool, timeout time.Duration, logger Logger) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		validate:     validation.New(),
		allowPast:    allowPast,
		timeout:      timeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает номера, которые вмещают гостей и свободны на все ночи интервала.
// Пустой список не ошибка. Только чтение, повторный вызов без подтверждений между ними дает тот же результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchRooms: guests=%d, date=%q, checkIn=%q, checkOut=%q",
		req.Guests, req.Date, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	stay, err := validateRequest(uc.validate, req)
	if err != nil {
		uc.logger.Warn("SearchRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Даты в прошлом не ищем, если это не разрешено настройкой
	if !uc.allowPast {
		if err := validateNotInPast(stay, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("SearchRooms: %v", err)
			return nil, err
		}
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	// 3. Ищем номера по вместимости и занятым датам
	rooms, err := uc.roomRepo.FindAvailable(ctx, req.Guests, stay.Nights())
	if err != nil {
		uc.logger.Error("SearchRooms: failed to find rooms for stay=%s: %v", stay, err)
		return nil, fmt.Errorf("%w: failed to find rooms: %w", ErrUnavailable, err)
	}

	resp := &Response{
		Stay:  stay,
		Rooms: make([]Room, 0, len(rooms)),
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, Room{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			Capacity:    room.Capacity,
		})
	}

	uc.logger.Info("SearchRooms: found %d rooms for guests=%d, stay=%s", len(resp.Rooms), req.Guests, stay)
	return resp, nil
}

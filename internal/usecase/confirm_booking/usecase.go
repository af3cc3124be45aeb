package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
)

// UseCase use case подтверждения заявки администратором
type UseCase struct {
	roomRepo    RoomRepository
	pendingRepo PendingRepository
	txManager   TransactionManager
	metrics     Metrics
	timeout     time.Duration
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	pendingRepo PendingRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		pendingRepo: pendingRepo,
		txManager:   txManager,
		metrics:     metrics,
		timeout:     timeout,
		logger:      logger,
	}
}

// Execute подтверждает заявку: повторно проверяет текущие занятые даты номера,
// добавляет ночи заявки в занятые и удаляет заявку одной транзакцией.
// Для пары (номер, дата) успешным может быть только одно подтверждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, result, err := uc.execute(ctx, req)
	uc.metrics.ObserveDecision(string(domain.DecisionConfirmed), result)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, string, error) {
	// 1. Валидация команды
	stay, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, resultInvalid, err
	}

	uc.logger.Info("ConfirmBooking: room=%s, stay=%s", req.RoomID, stay)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	var confirmed *domain.PendingRequest

	// 2. Проверка и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем номер (в PostgreSQL строка блокируется до конца транзакции)
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, storage.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to get room: %w", ErrUnavailable, err)
		}

		// 2.2. Проверяем даты команды по текущему состоянию, а не по снимку на момент заявки
		if err := availability.Check(room, stay); err != nil {
			return fmt.Errorf("%w: %v", ErrAlreadyBooked, err)
		}

		// 2.3. Ищем заявку
		pending, err := uc.pendingRepo.Find(txCtx, filter(req))
		if err != nil {
			if errors.Is(err, storage.ErrPendingRequestNotFound) {
				return ErrPendingNotFound
			}
			return fmt.Errorf("%w: failed to find pending request: %w", ErrUnavailable, err)
		}

		// 2.4. Команда с одной датой находит заявку по дате заезда, проверяем весь её интервал
		if err := availability.Check(room, pending.Stay); err != nil {
			return fmt.Errorf("%w: %v", ErrAlreadyBooked, err)
		}

		// 2.5. Записываем ночи. Хранилище повторно проверяет их атомарно (insert-if-absent)
		if err := uc.roomRepo.MarkBooked(txCtx, room.ID, pending.Stay.Nights()); err != nil {
			switch {
			case errors.Is(err, storage.ErrDateAlreadyBooked):
				return fmt.Errorf("%w: %v", ErrAlreadyBooked, err)
			case errors.Is(err, storage.ErrRoomNotFound):
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to mark dates booked: %w", ErrUnavailable, err)
		}

		// 2.6. Удаляем заявку
		if err := uc.pendingRepo.Delete(txCtx, pending.ID); err != nil {
			if errors.Is(err, storage.ErrPendingRequestNotFound) {
				return ErrPendingNotFound
			}
			return fmt.Errorf("%w: failed to delete pending request: %w", ErrUnavailable, err)
		}

		confirmed = pending
		return nil
	})

	if err != nil {
		result := classify(err)
		if result == resultUnavailable {
			uc.logger.Error("ConfirmBooking: room=%s, stay=%s: %v", req.RoomID, stay, err)
			if !errors.Is(err, ErrUnavailable) {
				err = fmt.Errorf("%w: %w", ErrUnavailable, err)
			}
		} else {
			uc.logger.Warn("ConfirmBooking: room=%s, stay=%s: %v", req.RoomID, stay, err)
		}
		return nil, result, err
	}

	uc.logger.Info("ConfirmBooking: confirmed pending request id=%s, room=%s, stay=%s",
		confirmed.ID, confirmed.RoomID, confirmed.Stay)

	return &Response{
		Request:     confirmed,
		BookedDates: confirmed.Stay.Nights(),
	}, resultSuccess, nil
}

// classify результат для метрик. Ошибки менеджера транзакций (begin, commit, отмена контекста) - недоступность.
func classify(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPendingNotFound):
		return resultNotFound
	case errors.Is(err, ErrAlreadyBooked):
		return resultConflict
	default:
		return resultUnavailable
	}
}

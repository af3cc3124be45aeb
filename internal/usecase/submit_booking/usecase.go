package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/queue/redisqueue"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notification"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// UseCase use case приема заявки на бронирование
type UseCase struct {
	roomRepo     RoomRepository
	pendingRepo  PendingRepository
	notifier     AdminNotifier
	retryQueue   RetryQueue
	metrics      Metrics
	validate     *validator.Validate
	allowPast    bool
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// retryQueue может быть nil: тогда недоставленное уведомление только логируется.
// allowPast разрешает заявки с датой заезда раньше сегодняшнего дня.
func NewUseCase(
	roomRepo RoomRepository,
	pendingRepo PendingRepository,
	notifier AdminNotifier,
	retryQueue RetryQueue,
	metrics Metrics,
	allowPast bool,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		pendingRepo:  pendingRepo,
		notifier:     notifier,
		retryQueue:   retryQueue,
		metrics:      metrics,
		validate:     validation.New(),
		allowPast:    allowPast,
		timeout:      timeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute принимает заявку: проверяет номер и свободные даты, сохраняет заявку и уведомляет администратора.
// Проверка дат здесь предварительная, окончательная выполняется при подтверждении.
// Ошибка доставки уведомления не отменяет сохраненную заявку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, result, err := uc.execute(ctx, req)
	uc.metrics.ObserveBookingRequest(result)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, raw *Request) (*Response, string, error) {
	req := normalizeRequest(raw)

	uc.logger.Info("SubmitBooking: room=%s, date=%q, checkIn=%q, checkOut=%q",
		req.RoomID, req.Date, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	stay, err := validateRequest(uc.validate, &req)
	if err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, resultInvalid, err
	}

	// 2. Даты в прошлом не принимаем, если это не разрешено настройкой
	if !uc.allowPast {
		if err := validateNotInPast(stay, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("SubmitBooking: %v", err)
			return nil, resultInvalid, err
		}
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	// 3. Получаем номер
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			uc.logger.Warn("SubmitBooking: room id=%s not found", req.RoomID)
			return nil, resultNotFound, ErrRoomNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get room id=%s: %v", req.RoomID, err)
		return nil, resultUnavailable, fmt.Errorf("%w: failed to get room: %w", ErrUnavailable, err)
	}

	// 4. Предварительная проверка занятых дат
	if err := availability.Check(room, stay); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, resultConflict, fmt.Errorf("%w: %v", ErrAlreadyBooked, err)
	}

	// 5. Сохраняем заявку
	created, err := uc.pendingRepo.Create(ctx, &domain.PendingRequest{
		Name:   req.Name,
		Phone:  req.Phone,
		RoomID: room.ID,
		Stay:   stay,
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to create pending request: %v", err)
		return nil, resultUnavailable, fmt.Errorf("%w: failed to create pending request: %w", ErrUnavailable, err)
	}

	uc.logger.Info("SubmitBooking: created pending request id=%s, room=%s, stay=%s", created.ID, created.RoomID, created.Stay)

	// 6. Уведомляем администратора (вне транзакции, ошибка не отменяет заявку)
	notified := uc.notify(ctx, notification.NewRequest(room, created))

	return &Response{
		ID:        created.ID,
		RoomID:    created.RoomID,
		Stay:      created.Stay,
		Status:    StatusPending,
		Notified:  notified,
		CreatedAt: created.CreatedAt,
	}, resultAccepted, nil
}

// notify отправляет уведомление, при неудаче кладет его в очередь повторной отправки
func (uc *UseCase) notify(ctx context.Context, text string) bool {
	err := uc.notifier.Notify(ctx, text)
	if err == nil {
		uc.metrics.ObserveNotification(notificationSent)
		return true
	}

	uc.logger.Error("SubmitBooking: admin notification failed: %v", err)

	if uc.retryQueue == nil {
		uc.metrics.ObserveNotification(notificationFailed)
		return false
	}

	msg := redisqueue.Message{Text: text, Attempts: 1, EnqueuedAt: uc.timeProvider.Now()}
	if err := uc.retryQueue.Push(context.WithoutCancel(ctx), msg); err != nil {
		uc.logger.Error("SubmitBooking: failed to enqueue notification for retry: %v", err)
		uc.metrics.ObserveNotification(notificationFailed)
		return false
	}

	uc.logger.Warn("SubmitBooking: notification queued for retry")
	uc.metrics.ObserveNotification(notificationQueued)
	return false
}

package reject_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// UseCase use case отклонения заявки администратором
type UseCase struct {
	pendingRepo PendingRepository
	txManager   TransactionManager
	metrics     Metrics
	timeout     time.Duration
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pendingRepo PendingRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		pendingRepo: pendingRepo,
		txManager:   txManager,
		metrics:     metrics,
		timeout:     timeout,
		logger:      logger,
	}
}

// Execute удаляет самую старую подходящую заявку. Занятые даты номера не меняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, result, err := uc.execute(ctx, req)
	uc.metrics.ObserveDecision(string(domain.DecisionRejected), result)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, string, error) {
	// 1. Валидация команды
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectBooking: validation failed: %v", err)
		return nil, resultInvalid, err
	}

	uc.logger.Info("RejectBooking: room=%s, checkIn=%s", req.RoomID, req.CheckIn)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	var rejected *domain.PendingRequest

	// 2. Поиск и удаление заявки в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pending, err := uc.pendingRepo.Find(txCtx, domain.PendingFilter{
			RoomID:   req.RoomID,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
		})
		if err != nil {
			if errors.Is(err, storage.ErrPendingRequestNotFound) {
				return ErrPendingNotFound
			}
			return fmt.Errorf("%w: failed to find pending request: %w", ErrUnavailable, err)
		}

		if err := uc.pendingRepo.Delete(txCtx, pending.ID); err != nil {
			if errors.Is(err, storage.ErrPendingRequestNotFound) {
				return ErrPendingNotFound
			}
			return fmt.Errorf("%w: failed to delete pending request: %w", ErrUnavailable, err)
		}

		rejected = pending
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrPendingNotFound) {
			uc.logger.Warn("RejectBooking: no pending request for room=%s, checkIn=%s", req.RoomID, req.CheckIn)
			return nil, resultNotFound, err
		}
		uc.logger.Error("RejectBooking: room=%s, checkIn=%s: %v", req.RoomID, req.CheckIn, err)
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, resultUnavailable, err
	}

	uc.logger.Info("RejectBooking: rejected pending request id=%s, room=%s, stay=%s",
		rejected.ID, rejected.RoomID, rejected.Stay)

	return &Response{Request: rejected}, resultSuccess, nil
}

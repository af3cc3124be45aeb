package pending

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notification"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending/models"
)

// Service сервис для работы с заявками, ожидающими решения
type Service struct {
	pendingRepo  PendingRepository
	txManager    TransactionManager
	notifier     AdminNotifier
	metrics      Metrics
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок.
// ttl = 0 отключает истечение срока заявок.
func NewService(
	pendingRepo PendingRepository,
	txManager TransactionManager,
	notifier AdminNotifier,
	metrics Metrics,
	ttl time.Duration,
	logger Logger,
) *Service {
	return &Service{
		pendingRepo:  pendingRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List возвращает заявки от старых к новым. limit <= 0 заменяется значением по умолчанию.
func (s *Service) List(ctx context.Context, limit int) (*models.PendingListResponse, error) {
	reqs, err := s.list(ctx, limit)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPendingRequests(reqs), nil
}

// ListDomain как List, но возвращает доменные заявки (для текстовых ответов бота)
func (s *Service) ListDomain(ctx context.Context, limit int) ([]*domain.PendingRequest, error) {
	return s.list(ctx, limit)
}

func (s *Service) list(ctx context.Context, limit int) ([]*domain.PendingRequest, error) {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be <= %d", ErrInvalidInput, domain.MaxListLimit)
	}

	reqs, err := s.pendingRepo.List(ctx, limit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrUnavailable, err)
	}

	s.logger.Info("List: found %d pending requests", len(reqs))
	return reqs, nil
}

// ExpireStale удаляет заявки старше ttl и уведомляет администратора (без гарантии доставки).
// Возвращает количество удаленных заявок.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	cutoff := s.timeProvider.Now().Add(-s.ttl)

	var expired []*domain.PendingRequest
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		expired, err = s.pendingRepo.DeleteCreatedBefore(txCtx, cutoff)
		return err
	})
	if err != nil {
		s.logger.Error("ExpireStale: failed to delete requests created before %s: %v", cutoff.Format(time.RFC3339), err)
		return 0, fmt.Errorf("%w: ExpireStale - repository error: %w", ErrUnavailable, err)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	for range expired {
		s.metrics.ObserveDecision(string(domain.DecisionExpired), "success")
	}

	s.logger.Info("ExpireStale: expired %d pending requests created before %s", len(expired), cutoff.Format(time.RFC3339))

	if err := s.notifier.Notify(ctx, notification.Expired(expired)); err != nil {
		s.logger.Warn("ExpireStale: failed to notify admin: %v", err)
	}

	return len(expired), nil
}

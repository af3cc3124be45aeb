package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/infra/queue/redisqueue"
)

const (
	notificationSent     = "sent"
	notificationRequeued = "requeued"
	notificationDropped  = "dropped"
)

// NotificationRetrier повторно отправляет уведомления, которые не удалось доставить при создании заявки
type NotificationRetrier struct {
	queue       RetryQueue
	notifier    AdminNotifier
	metrics     Metrics
	interval    time.Duration
	maxAttempts int
	logger      Logger
}

// NewNotificationRetrier создает воркер. Сообщение выбрасывается после maxAttempts неудачных отправок.
func NewNotificationRetrier(
	queue RetryQueue,
	notifier AdminNotifier,
	metrics Metrics,
	interval time.Duration,
	maxAttempts int,
	logger Logger,
) *NotificationRetrier {
	return &NotificationRetrier{
		queue:       queue,
		notifier:    notifier,
		metrics:     metrics,
		interval:    interval,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Run разбирает очередь раз в interval до отмены ctx
func (r *NotificationRetrier) Run(ctx context.Context) {
	r.logger.Info("NotificationRetrier: started (interval=%s, max_attempts=%d)", r.interval, r.maxAttempts)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("NotificationRetrier: stopped")
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("NotificationRetrier: %v", err)
			}
		}
	}
}

// Drain отправляет сообщения из очереди, пока она не опустеет или канал не откажет.
// При отказе сообщение возвращается в конец очереди и проход завершается. Возвращает число доставленных.
// После прохода обновляет метрику длины очереди.
func (r *NotificationRetrier) Drain(ctx context.Context) (int, error) {
	defer r.observeQueueSize(ctx)

	delivered := 0
	for {
		msg, err := r.queue.Pop(ctx)
		switch {
		case errors.Is(err, redisqueue.ErrEmpty):
			return delivered, nil
		case errors.Is(err, redisqueue.ErrDecode):
			r.logger.Error("NotificationRetrier: dropping undecodable message: %v", err)
			r.metrics.ObserveNotification(notificationDropped)
			continue
		case err != nil:
			return delivered, err
		}

		if err := r.notifier.Notify(ctx, msg.Text); err != nil {
			r.logger.Warn("NotificationRetrier: attempt %d failed: %v", msg.Attempts+1, err)
		} else {
			r.metrics.ObserveNotification(notificationSent)
			delivered++
			continue
		}

		msg.Attempts++
		if msg.Attempts >= r.maxAttempts {
			r.logger.Error("NotificationRetrier: dropping message after %d attempts (enqueued %s): %q",
				msg.Attempts, msg.EnqueuedAt.Format(time.RFC3339), msg.Text)
			r.metrics.ObserveNotification(notificationDropped)
			return delivered, nil
		}

		if err := r.queue.Push(context.WithoutCancel(ctx), *msg); err != nil {
			r.metrics.ObserveNotification(notificationDropped)
			return delivered, err
		}
		r.metrics.ObserveNotification(notificationRequeued)
		return delivered, nil
	}
}

func (r *NotificationRetrier) observeQueueSize(ctx context.Context) {
	n, err := r.queue.Len(context.WithoutCancel(ctx))
	if err != nil {
		r.logger.Warn("NotificationRetrier: failed to get queue size: %v", err)
		return
	}
	r.metrics.SetNotificationQueueSize(n)
}

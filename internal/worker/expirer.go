package worker

import (
	"context"
	"time"
)

// Expirer периодически удаляет заявки, срок ожидания которых истек
type Expirer struct {
	pending  PendingExpirer
	interval time.Duration
	logger   Logger
}

func NewExpirer(pending PendingExpirer, interval time.Duration, logger Logger) *Expirer {
	return &Expirer{
		pending:  pending,
		interval: interval,
		logger:   logger,
	}
}

// Run выполняет проход сразу и затем раз в interval до отмены ctx
func (e *Expirer) Run(ctx context.Context) {
	e.logger.Info("Expirer: started (interval=%s)", e.interval)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		e.RunOnce(ctx)

		select {
		case <-ctx.Done():
			e.logger.Info("Expirer: stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce один проход. Ошибка логируется, следующий проход повторит попытку.
func (e *Expirer) RunOnce(ctx context.Context) int {
	n, err := e.pending.ExpireStale(ctx)
	if err != nil {
		if ctx.Err() == nil {
			e.logger.Error("Expirer: failed to expire pending requests: %v", err)
		}
		return 0
	}
	if n > 0 {
		e.logger.Info("Expirer: expired %d pending requests", n)
	}
	return n
}

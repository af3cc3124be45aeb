package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage"
)

// PendingRepository заявки в памяти
type PendingRepository struct {
	store *Store
}

// Create сохраняет заявку с новым UUID
func (r *PendingRepository) Create(ctx context.Context, req *domain.PendingRequest) (*domain.PendingRequest, error) {
	var created domain.PendingRequest
	err := r.store.do(ctx, func() error {
		created = *req
		created.ID = uuid.NewString()
		created.CreatedAt = r.store.now()

		r.store.seq++
		stored := created
		r.store.pending[created.ID] = &pendingEntry{req: &stored, seq: r.store.seq}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Find возвращает самую старую заявку, подходящую под фильтр
func (r *PendingRepository) Find(ctx context.Context, filter domain.PendingFilter) (*domain.PendingRequest, error) {
	var found *domain.PendingRequest
	err := r.store.do(ctx, func() error {
		matched := r.store.sorted(func(req *domain.PendingRequest) bool { return filter.Matches(req) })
		if len(matched) == 0 {
			return storage.ErrPendingRequestNotFound
		}
		found = matched[0]
		return nil
	})
	return found, err
}

// Delete удаляет заявку
func (r *PendingRepository) Delete(ctx context.Context, id string) error {
	return r.store.do(ctx, func() error {
		if _, ok := r.store.pending[id]; !ok {
			return storage.ErrPendingRequestNotFound
		}
		delete(r.store.pending, id)
		return nil
	})
}

// List возвращает заявки от старых к новым
func (r *PendingRepository) List(ctx context.Context, limit int) ([]*domain.PendingRequest, error) {
	var result []*domain.PendingRequest
	err := r.store.do(ctx, func() error {
		result = r.store.sorted(nil)
		if limit > 0 && len(result) > limit {
			result = result[:limit]
		}
		return nil
	})
	return result, err
}

// DeleteCreatedBefore удаляет заявки, созданные раньше cutoff, и возвращает их
func (r *PendingRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.PendingRequest, error) {
	var stale []*domain.PendingRequest
	err := r.store.do(ctx, func() error {
		stale = r.store.sorted(func(req *domain.PendingRequest) bool { return req.CreatedAt.Before(cutoff) })
		for _, req := range stale {
			delete(r.store.pending, req.ID)
		}
		return nil
	})
	return stale, err
}

// sorted возвращает копии заявок, подходящих под match, от старых к новым
func (s *Store) sorted(match func(req *domain.PendingRequest) bool) []*domain.PendingRequest {
	entries := make([]*pendingEntry, 0, len(s.pending))
	for _, entry := range s.pending {
		if match == nil || match(entry.req) {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.req.CreatedAt.Equal(b.req.CreatedAt) {
			return a.req.CreatedAt.Before(b.req.CreatedAt)
		}
		return a.seq < b.seq
	})

	result := make([]*domain.PendingRequest, 0, len(entries))
	for _, entry := range entries {
		req := *entry.req
		result = append(result, &req)
	}
	return result
}

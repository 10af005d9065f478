package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-api/internal/domain/repository"
)

type idempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
	now  func() time.Time
}

// NewIdempotencyRepository creates an in-process idempotency key store
func NewIdempotencyRepository() domainRepo.IdempotencyRepository {
	return newIdempotencyRepository(time.Now)
}

func newIdempotencyRepository(now func() time.Time) *idempotencyRepository {
	return &idempotencyRepository{keys: make(map[string]entity.IdempotencyKey), now: now}
}

func idempotencyMapKey(key, scope string) string {
	return scope + "\x00" + key
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapKey := idempotencyMapKey(ikey.Key, ikey.Scope)
	if existing, ok := r.keys[mapKey]; ok && !existing.IsExpiredAt(r.now()) {
		return &existing, false, nil
	}

	reserved := *ikey
	reserved.Pending = true
	r.keys[mapKey] = reserved
	return nil, true, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapKey := idempotencyMapKey(ikey.Key, ikey.Scope)
	if existing, ok := r.keys[mapKey]; ok && !existing.Pending && !existing.IsExpiredAt(r.now()) {
		// first response wins
		return nil
	}
	completed := *ikey
	completed.Pending = false
	r.keys[mapKey] = completed
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, key, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapKey := idempotencyMapKey(key, scope)
	if existing, ok := r.keys[mapKey]; ok && existing.Pending {
		delete(r.keys, mapKey)
	}
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, ikey := range r.keys {
		if ikey.IsExpiredAt(now) {
			delete(r.keys, k)
		}
	}
	return nil
}

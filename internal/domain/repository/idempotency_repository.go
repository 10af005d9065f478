package repository

import (
	"context"

	"github.com/sangkips/retail-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Reserve atomically claims a key for an in-flight request. When the key
	// is already held (pending or completed) it returns the existing entry
	// and false.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, bool, error)
	// Create stores the response for a key, completing its reservation
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a pending reservation so the request can be retried
	Release(ctx context.Context, key, scope string) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}

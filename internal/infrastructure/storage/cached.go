package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
)

// CachedRepository is a write-through decorator. Every successful write to
// the primary is mirrored to a secondary medium; the mirror is only read when
// the primary cannot be read. The primary stays the source of truth: a write
// the primary rejects is never reported as success.
type CachedRepository struct {
	primary repository.SnapshotRepository
	mirror  repository.SnapshotRepository
}

var _ repository.SnapshotRepository = (*CachedRepository)(nil)

// NewCachedRepository wraps primary with a write-through mirror
func NewCachedRepository(primary, mirror repository.SnapshotRepository) *CachedRepository {
	return &CachedRepository{primary: primary, mirror: mirror}
}

func (r *CachedRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	const op = "storage.CachedRepository.Load"
	log := slog.With("op", op)

	snap, err := r.primary.Load(ctx)
	if err == nil || errors.Is(err, repository.ErrSnapshotNotFound) {
		return snap, err
	}

	log.Warn("primary unreadable, falling back to mirror", "err", err)
	cached, mirrorErr := r.mirror.Load(ctx)
	if mirrorErr != nil {
		return nil, fmt.Errorf("%s: primary: %w; mirror: %w", op, err, mirrorErr)
	}
	return cached, nil
}

func (r *CachedRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	const op = "storage.CachedRepository.Save"

	if err := r.primary.Save(ctx, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.mirror.Save(ctx, s); err != nil {
		slog.Error("failed to mirror snapshot", "op", op, "err", err)
	}
	return nil
}

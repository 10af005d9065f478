package repository

import (
	"context"
	"errors"

	"github.com/sangkips/retail-api/internal/domain/entity"
)

// ErrSnapshotNotFound is returned by Load when no document has been persisted yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists the whole document. Load and Save always move
// the complete snapshot; there are no partial updates.
type SnapshotRepository interface {
	// Load reads the persisted snapshot. Returns ErrSnapshotNotFound if none exists.
	Load(ctx context.Context) (*entity.Snapshot, error)
	// Save replaces the persisted snapshot with s.
	Save(ctx context.Context, s *entity.Snapshot) error
}

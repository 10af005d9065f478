package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
)

// MemoryRepository keeps the encoded document in memory. It is used by tests
// and when persistence is switched off.
type MemoryRepository struct {
	mu   sync.Mutex
	data []byte
	err  error
}

var _ repository.SnapshotRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory snapshot repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	if r.data == nil {
		return nil, repository.ErrSnapshotNotFound
	}

	snap := entity.NewSnapshot()
	if err := json.Unmarshal(r.data, snap); err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}

func (r *MemoryRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.data = data
	return nil
}

// SetErr makes subsequent calls fail with err (nil clears it)
func (r *MemoryRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Bytes returns the last saved document
func (r *MemoryRepository) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.data...)
}

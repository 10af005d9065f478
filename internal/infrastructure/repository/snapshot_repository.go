package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sangkips/retail-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retail-api/internal/domain/repository"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a snapshot repository that keeps the whole
// document in a single database row
func NewSnapshotRepository(db *gorm.DB) domainRepo.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	var rec entity.SnapshotRecord
	err := r.db.WithContext(ctx).First(&rec, entity.SnapshotRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainRepo.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	snap := entity.NewSnapshot()
	if err := json.Unmarshal([]byte(rec.Document), snap); err != nil {
		return nil, fmt.Errorf("decode snapshot row: %w", err)
	}
	snap.Normalize()
	return snap, nil
}

func (r *snapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	rec := entity.SnapshotRecord{ID: entity.SnapshotRecordID, Document: string(data)}
	return r.db.WithContext(ctx).Save(&rec).Error
}

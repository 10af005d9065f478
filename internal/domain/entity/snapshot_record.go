package entity

import "time"

// SnapshotRecordID is the primary key of the single mirrored document row
const SnapshotRecordID uint = 1

// SnapshotRecord is the database row holding a mirrored copy of the
// encoded snapshot document.
type SnapshotRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Document  string    `gorm:"type:text;not null" json:"document"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name
func (SnapshotRecord) TableName() string {
	return "snapshots"
}

package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// unixNow is swapped in tests.
var unixNow = func() int64 { return time.Now().Unix() }

// BaseModel carries the columns every travelwise table shares: a UUID key,
// created_at/updated_at as BIGINT unix seconds and a soft-delete marker.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BeforeCreate assigns a random ID when the caller left it unset and stamps
// both timestamps with the same second, so a fresh account reads as never
// updated.
func (b *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = unixNow()
	b.UpdatedAt = b.CreatedAt
	return nil
}

// BeforeUpdate moves updated_at forward; created_at is never rewritten.
func (b *BaseModel) BeforeUpdate(_ *gorm.DB) error {
	b.UpdatedAt = unixNow()
	return nil
}

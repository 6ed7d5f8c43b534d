package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/velora-storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists slots in the storage_slots table (postgres or sqlite).
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore constructs a slot store bound to the provided gorm DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (g *GormStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var slot models.StorageSlot
	err := g.db.WithContext(ctx).
		Where("session_id = ? AND slot_key = ?", sessionID, key).
		First(&slot).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

// Set upserts the slot so concurrent writers resolve to the last write.
func (g *GormStore) Set(ctx context.Context, sessionID, key, value string) error {
	slot := models.StorageSlot{
		SessionID: sessionID,
		SlotKey:   key,
		Value:     value,
		UpdatedAt: g.now().UTC(),
	}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&slot).
		Error
}

func (g *GormStore) Clear(ctx context.Context, sessionID, key string) error {
	return g.db.WithContext(ctx).
		Where("session_id = ? AND slot_key = ?", sessionID, key).
		Delete(&models.StorageSlot{}).
		Error
}

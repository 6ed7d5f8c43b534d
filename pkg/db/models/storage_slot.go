package models

import "time"

// StorageSlot holds one serialized slot (cart or wishlist) for a shopper session.
type StorageSlot struct {
	SessionID string    `gorm:"column:session_id;type:varchar(64);primaryKey"`
	SlotKey   string    `gorm:"column:slot_key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (StorageSlot) TableName() string {
	return "storage_slots"
}

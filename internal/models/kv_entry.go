package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is a row of the SQL-backed key-value store.
type KVEntry struct {
	Key       string         `gorm:"column:entry_key;primaryKey;size:255" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	ExpiresAt *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName pins the table name independent of naming strategy.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Expired reports whether the entry has passed its expiry.
func (e KVEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/salestrain-api/internal/models"
)

// SQLStore keeps entries in the kv_entries table. Values must be valid JSON.
type SQLStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLStore wraps a gorm connection. Call Migrate before first use.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates or updates the backing table.
func (s *SQLStore) Migrate() error {
	return s.db.AutoMigrate(&models.KVEntry{})
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sql get %s: %w", key, err)
	}

	if entry.Expired(s.now()) {
		_ = s.Delete(ctx, key)
		return nil, ErrNotFound
	}

	return []byte(entry.Value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	entry := models.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		ExpiresAt: expiryFrom(now, ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sql set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("sql delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := s.db.WithContext(ctx).
		Model(&models.KVEntry{}).
		Where("entry_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Where("(expires_at IS NULL OR expires_at > ?)", s.now()).
		Order("entry_key ASC").
		Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("sql keys %s: %w", prefix, err)
	}
	return keys, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

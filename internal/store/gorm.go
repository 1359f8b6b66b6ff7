package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry is one stored document
type kvEntry struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for kvEntry
func (kvEntry) TableName() string {
	return "kv_entries"
}

// GormStore keeps documents in a SQL table through gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates the kv table if missing and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, ErrKeyNotFound
	}

	var entry kvEntry
	err := s.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Put upserts every value inside one transaction
func (s *GormStore) Put(ctx context.Context, values map[string][]byte) error {
	if err := checkKeys(values); err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, key := range keys {
			entry := kvEntry{Key: key, Value: datatypes.JSON(values[key]), UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

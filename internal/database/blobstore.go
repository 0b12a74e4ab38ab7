package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trade-journal-go/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobStore is a key/value store of opaque byte blobs backed by one table.
type BlobStore struct {
	db *gorm.DB
}

// NewBlobStore wraps an opened database.
func NewBlobStore(db *gorm.DB) *BlobStore {
	return &BlobStore{db: db}
}

// Get returns the blob stored under key. A missing key is reported with
// found=false and no error.
func (s *BlobStore) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	var entry models.Entry
	err = s.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not read key %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Put overwrites the blob stored under key.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	entry := models.Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("could not write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", key).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("could not delete key %s: %w", key, err)
	}
	return nil
}

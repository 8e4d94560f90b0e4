package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
)

// Storage keys
const (
	KeyToken      = apiclient.TokenKey
	KeyAdminToken = apiclient.AdminTokenKey
	KeyUser       = "user"
	KeyRole       = "role"
	KeyLocation   = "location"
)

// Entry is one persisted key/value pair.
type Entry struct {
	Name      string `gorm:"primaryKey;column:name"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "session_keys"
}

// Store is the persistent key/value storage backing the operator session.
// Values are read from the database on every call.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored value, or "" when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := Entry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys; missing keys are ignored.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("name IN ?", keys).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}

// Token implements apiclient.TokenSource.
func (s *Store) Token(ctx context.Context, key string) (string, error) {
	return s.Get(ctx, key)
}

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// GormPreferenceStore implements prefs.Store on a key/value table
type GormPreferenceStore struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormPreferenceStore creates a store. If clock is nil, uses RealClock
func NewGormPreferenceStore(db *gorm.DB, clock shared.Clock) *GormPreferenceStore {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormPreferenceStore{db: db, clock: clock}
}

// Get decodes the value stored under key into v
func (s *GormPreferenceStore) Get(ctx context.Context, key string, v any) (bool, error) {
	var model PreferenceModel
	result := s.db.WithContext(ctx).Where("pref_key = ?", key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read preference %s: %w", key, result.Error)
	}
	if err := json.Unmarshal([]byte(model.Value), v); err != nil {
		return true, fmt.Errorf("failed to decode preference %s: %w", key, err)
	}
	return true, nil
}

// Set stores v under key, replacing any previous value
func (s *GormPreferenceStore) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}
	model := PreferenceModel{Key: key, Value: string(data), UpdatedAt: s.clock.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, result.Error)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *GormPreferenceStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("pref_key = ?", key).Delete(&PreferenceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, result.Error)
	}
	return nil
}

// Keys lists the stored keys starting with prefix, sorted
func (s *GormPreferenceStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix)
	result := s.db.WithContext(ctx).Model(&PreferenceModel{}).
		Where(`pref_key LIKE ? ESCAPE '\'`, escaped+"%").
		Order("pref_key").
		Pluck("pref_key", &keys)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", result.Error)
	}
	return keys, nil
}

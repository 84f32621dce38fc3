package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository reads yes/no switches from the options table
type GormSettingsRepository struct {
	db       *gorm.DB
	defaults map[string]bool
}

// NewGormSettingsRepository creates a repository. defaults supplies the value
// of options that have no row.
func NewGormSettingsRepository(db *gorm.DB, defaults map[string]bool) *GormSettingsRepository {
	if defaults == nil {
		defaults = map[string]bool{}
	}
	return &GormSettingsRepository{db: db, defaults: defaults}
}

// IsEnabled implements addresssync.SettingsReader
func (r *GormSettingsRepository) IsEnabled(ctx context.Context, key string) (bool, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, addresssync.ErrSettingNotFound) {
		return r.defaults[key], nil
	}
	if err != nil {
		return false, err
	}
	return addresssync.ParseYesNo(value), nil
}

// Get returns the raw option value
func (r *GormSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.OptionModel
	err := r.db.WithContext(ctx).Where("option_name = ?", key).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", addresssync.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to read option %s: %w", key, err)
	}
	return model.OptionValue, nil
}

// Set upserts an option value
func (r *GormSettingsRepository) Set(ctx context.Context, key, value string) error {
	model := &models.OptionModel{OptionName: key, OptionValue: value, Autoload: "yes"}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "option_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"option_value"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to write option %s: %w", key, err)
	}
	return nil
}

var _ addresssync.SettingsReader = (*GormSettingsRepository)(nil)

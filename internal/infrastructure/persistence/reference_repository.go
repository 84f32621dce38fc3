package persistence

import (
	"context"
	"fmt"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReferenceDataRepository reads the CRM country and state/province tables
type GormReferenceDataRepository struct {
	db *gorm.DB
}

// NewGormReferenceDataRepository creates a new GormReferenceDataRepository
func NewGormReferenceDataRepository(db *gorm.DB) *GormReferenceDataRepository {
	return &GormReferenceDataRepository{db: db}
}

// LoadCountries returns all countries ordered by id
func (r *GormReferenceDataRepository) LoadCountries(ctx context.Context) ([]addresssync.Country, error) {
	var rows []models.CountryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	countries := make([]addresssync.Country, 0, len(rows))
	for i := range rows {
		countries = append(countries, rows[i].ToDomain())
	}
	return countries, nil
}

// LoadStateProvinces returns all states/provinces ordered by id
func (r *GormReferenceDataRepository) LoadStateProvinces(ctx context.Context) ([]addresssync.StateProvince, error) {
	var rows []models.StateProvinceModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load states/provinces: %w", err)
	}

	states := make([]addresssync.StateProvince, 0, len(rows))
	for i := range rows {
		states = append(states, rows[i].ToDomain())
	}
	return states, nil
}

// Seed inserts countries and states that are not present yet. Existing rows
// are left untouched.
func (r *GormReferenceDataRepository) Seed(ctx context.Context, countries []addresssync.Country, states []addresssync.StateProvince) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range countries {
			row := models.CountryModel{ID: c.ID, Name: c.Name, ISOCode: c.ISOCode}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed country %s: %w", c.ISOCode, err)
			}
		}
		for _, s := range states {
			row := models.StateProvinceModel{ID: s.ID, Name: s.Name, Abbreviation: s.Abbreviation, CountryID: s.CountryID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed state/province %s: %w", s.Name, err)
			}
		}
		return nil
	})
}

var _ addresssync.ReferenceDataRepository = (*GormReferenceDataRepository)(nil)

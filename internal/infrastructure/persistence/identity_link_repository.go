package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIdentityLinkRepository reads the uf_match table
type GormIdentityLinkRepository struct {
	db *gorm.DB
}

// NewGormIdentityLinkRepository creates a new GormIdentityLinkRepository
func NewGormIdentityLinkRepository(db *gorm.DB) *GormIdentityLinkRepository {
	return &GormIdentityLinkRepository{db: db}
}

// FindByContactID returns the store user linked to a CRM contact
func (r *GormIdentityLinkRepository) FindByContactID(ctx context.Context, contactID int64) (*addresssync.LinkedIdentity, error) {
	return r.findOne(ctx, "contact_id = ?", contactID)
}

// FindByUserID returns the CRM contact linked to a store user
func (r *GormIdentityLinkRepository) FindByUserID(ctx context.Context, userID int64) (*addresssync.LinkedIdentity, error) {
	return r.findOne(ctx, "uf_id = ?", userID)
}

// Link creates or replaces the link for a store user
func (r *GormIdentityLinkRepository) Link(ctx context.Context, userID, contactID int64, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uf_id = ? OR contact_id = ?", userID, contactID).
			Delete(&models.IdentityLinkModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.IdentityLinkModel{
			DomainID:  1,
			UFID:      userID,
			UFName:    username,
			ContactID: contactID,
		}).Error
	})
}

func (r *GormIdentityLinkRepository) findOne(ctx context.Context, query string, id int64) (*addresssync.LinkedIdentity, error) {
	if id <= 0 {
		return nil, addresssync.ErrIdentityNotLinked
	}

	var model models.IdentityLinkModel
	err := r.db.WithContext(ctx).Where(query, id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, addresssync.ErrIdentityNotLinked
		}
		return nil, fmt.Errorf("failed to load identity link: %w", err)
	}
	return model.ToDomain(), nil
}

var _ addresssync.IdentityLinkRepository = (*GormIdentityLinkRepository)(nil)

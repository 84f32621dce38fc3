package models

import (
	"github.com/erp/addresssync/internal/domain/addresssync"
)

// IdentityLinkModel maps a store user to a CRM contact
type IdentityLinkModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	DomainID  int64  `gorm:"not null;default:1"`
	UFID      int64  `gorm:"column:uf_id;not null;uniqueIndex:idx_uf_match_uf_id"`
	UFName    string `gorm:"column:uf_name;type:varchar(128)"`
	ContactID int64  `gorm:"column:contact_id;not null;uniqueIndex:idx_uf_match_contact_id"`
}

// TableName returns the table name for GORM
func (IdentityLinkModel) TableName() string {
	return "uf_match"
}

// ToDomain converts the persistence model to a LinkedIdentity
func (m *IdentityLinkModel) ToDomain() *addresssync.LinkedIdentity {
	return &addresssync.LinkedIdentity{
		UserID:    m.UFID,
		ContactID: m.ContactID,
	}
}

// CountryModel is a row of the CRM country table
type CountryModel struct {
	ID      int64  `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(64);not null"`
	ISOCode string `gorm:"column:iso_code;type:char(2);uniqueIndex"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "civicrm_country"
}

// ToDomain converts the persistence model to a Country
func (m *CountryModel) ToDomain() addresssync.Country {
	return addresssync.Country{
		ID:      m.ID,
		ISOCode: m.ISOCode,
		Name:    m.Name,
	}
}

// StateProvinceModel is a row of the CRM state/province table
type StateProvinceModel struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(64);not null"`
	Abbreviation string `gorm:"type:varchar(4)"`
	CountryID    int64  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StateProvinceModel) TableName() string {
	return "civicrm_state_province"
}

// ToDomain converts the persistence model to a StateProvince
func (m *StateProvinceModel) ToDomain() addresssync.StateProvince {
	return addresssync.StateProvince{
		ID:           m.ID,
		CountryID:    m.CountryID,
		Name:         m.Name,
		Abbreviation: m.Abbreviation,
	}
}

// OptionModel is a store option (name/value setting)
type OptionModel struct {
	OptionID    int64  `gorm:"column:option_id;primaryKey;autoIncrement"`
	OptionName  string `gorm:"column:option_name;type:varchar(191);not null;uniqueIndex"`
	OptionValue string `gorm:"column:option_value;type:text;not null"`
	Autoload    string `gorm:"column:autoload;type:varchar(20);not null;default:'yes'"`
}

// TableName returns the table name for GORM
func (OptionModel) TableName() string {
	return "options"
}

// AllModels returns every model managed by this service, in migration order
func AllModels() []any {
	return []any{
		&IdentityLinkModel{},
		&CountryModel{},
		&StateProvinceModel{},
		&OptionModel{},
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NamedField is an ordered name/value pair used for profile and
// template custom fields.
type NamedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompanyProfile holds the identity and branding block rendered at the
// top of an invoice. LogoURL may be a data-URI.
type CompanyProfile struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"size:255;not null" json:"email"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	LogoURL      *string        `gorm:"type:text" json:"logo_url,omitempty"`
	Tagline      *string        `gorm:"size:255" json:"tagline,omitempty"`
	CustomFields []NamedField   `gorm:"type:jsonb;serializer:json" json:"custom_fields"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company profile
func (p *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanyProfile model
func (CompanyProfile) TableName() string {
	return "company_profiles"
}

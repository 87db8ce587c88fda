package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a reusable catalog item with a unit price. Invoices copy
// its name and price at add time; later edits never touch existing
// invoices.
type Service struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// PackageService describes one bundled service inside a package. It is
// a denormalized snapshot, not a reference to a Service row.
type PackageService struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Package is a fixed-price bundle of described services. The bundle
// list is informational; only Price participates in invoice math.
type Package struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"price"`
	Services  []PackageService `gorm:"type:jsonb;serializer:json" json:"services"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new package
func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Package model
func (Package) TableName() string {
	return "packages"
}

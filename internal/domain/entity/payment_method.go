package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PaymentMethod is an opaque labeled field set shown on invoices. No
// payment execution happens through it.
type PaymentMethod struct {
	ID        uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"owner_id"`
	Type      enum.PaymentMethodType `gorm:"size:20;not null" json:"type"`
	Name      string                 `gorm:"size:255;not null" json:"name"`
	Fields    map[string]string      `gorm:"type:jsonb;serializer:json" json:"fields"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	DeletedAt gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a composed, priced document. All monetary fields are
// decimals persisted to 4 places and serialized as JSON strings.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	InvoiceNumber string     `gorm:"size:100;unique;not null" json:"invoice_number"`

	ClientName         string       `gorm:"size:255;not null" json:"client_name"`
	ClientPhone        *string      `gorm:"size:50" json:"client_phone,omitempty"`
	ClientAddress      *string      `gorm:"type:text" json:"client_address,omitempty"`
	ClientEmail        *string      `gorm:"size:255" json:"client_email,omitempty"`
	ClientCustomFields []NamedField `gorm:"type:jsonb;serializer:json" json:"client_custom_fields"`

	TaxPercentage  decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"tax_percentage"`
	DiscountType   enum.DiscountType `gorm:"size:20;default:'flat'" json:"discount_type"`
	DiscountValue  decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"discount_value"`
	Subtotal       decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	Total          decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total"`

	Platform          *string    `gorm:"size:100" json:"platform,omitempty"`
	CompanyProfileID  *uuid.UUID `gorm:"type:uuid;index" json:"company_profile_id,omitempty"`
	PaymentMethodID   *uuid.UUID `gorm:"type:uuid;index" json:"payment_method_id,omitempty"`
	PaymentReceivedBy *string    `gorm:"size:255" json:"payment_received_by,omitempty"`
	TemplateID        *uuid.UUID `gorm:"type:uuid;index" json:"template_id,omitempty"`
	Notes             *string    `gorm:"type:text" json:"notes,omitempty"`
	Terms             *string    `gorm:"type:text" json:"terms,omitempty"`

	Status    enum.InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Owner          User              `gorm:"foreignKey:OwnerID" json:"-"`
	CompanyProfile *CompanyProfile   `gorm:"foreignKey:CompanyProfileID" json:"company_profile,omitempty"`
	PaymentMethod  *PaymentMethod    `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Template       *TemplateConfig   `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Items          []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLineItem is one priced row, snapshotted from a catalog
// service or package at composition time. Total is always
// unit_price * quantity * time_period.
type InvoiceLineItem struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Type            enum.LineItemType `gorm:"size:20;not null" json:"type"`
	Name            string            `gorm:"size:255;not null" json:"name"`
	UnitPrice       decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Quantity        int               `gorm:"not null;default:1" json:"quantity"`
	TimePeriod      int               `gorm:"not null;default:1" json:"time_period"`
	Total           decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"total"`
	PackageServices []PackageService  `gorm:"type:jsonb;serializer:json" json:"package_services,omitempty"`
	Position        int               `gorm:"not null;default:0" json:"position"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLineItem model
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// InvoiceSequence issues per-owner invoice numbers. The row is
// incremented inside the same transaction that inserts the invoice, so
// two concurrent finalizes can never be handed the same number.
type InvoiceSequence struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primary_key" json:"owner_id"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

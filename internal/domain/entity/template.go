package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TemplateField configures one line-item column: whether it shows and
// under which label. Order within the slice is the column order.
type TemplateField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Visible     bool   `json:"visible"`
	CustomLabel string `json:"custom_label,omitempty"`
}

// TemplateConfig describes the visual and structural layout options of
// an invoice. The layout algorithm is selected by Family, never by the
// display name.
type TemplateConfig struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Description  string              `gorm:"type:text" json:"description"`
	Family       enum.TemplateFamily `gorm:"size:30;not null;default:'professional'" json:"family"`
	IsDefault    bool                `gorm:"default:false" json:"is_default"`
	PrimaryColor string              `gorm:"size:20" json:"primary_color"`
	TextColor    string              `gorm:"size:20" json:"text_color"`
	BorderColor  string              `gorm:"size:20" json:"border_color"`
	FontFamily   string              `gorm:"size:100" json:"font_family"`
	LogoVisible  bool                `gorm:"default:true" json:"logo_visible"`
	Fields       []TemplateField     `gorm:"type:jsonb;serializer:json" json:"fields"`
	ShowNotes    bool                `gorm:"default:true" json:"show_notes"`
	ShowTerms    bool                `gorm:"default:true" json:"show_terms"`
	ShowPayment  bool                `gorm:"default:true" json:"show_payment"`
	Notes        string              `gorm:"type:text" json:"notes"`
	Terms        string              `gorm:"type:text" json:"terms"`
	CustomFields []NamedField        `gorm:"type:jsonb;serializer:json" json:"custom_fields"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new template
func (t *TemplateConfig) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TemplateConfig model
func (TemplateConfig) TableName() string {
	return "templates"
}

// BuiltinTemplates returns the two stock template configurations
// seeded for every new account. The professional variant starts as the
// default.
func BuiltinTemplates() []TemplateConfig {
	return []TemplateConfig{
		{
			Name:         "Professional",
			Description:  "Flat banner header with a structured line-item table",
			Family:       enum.TemplateFamilyProfessional,
			IsDefault:    true,
			PrimaryColor: "#1f2a44",
			TextColor:    "#111827",
			BorderColor:  "#e5e7eb",
			FontFamily:   "Helvetica Neue",
			LogoVisible:  true,
			Fields:       DefaultLineItemFields(),
			ShowNotes:    true,
			ShowTerms:    true,
			ShowPayment:  true,
		},
		{
			Name:         "Minimalist",
			Description:  "Diagonal accent banner with light table chrome",
			Family:       enum.TemplateFamilyMinimalist,
			PrimaryColor: "#b91c1c",
			TextColor:    "#1f2937",
			BorderColor:  "#f3f4f6",
			FontFamily:   "Georgia",
			LogoVisible:  true,
			Fields:       DefaultLineItemFields(),
			ShowNotes:    true,
			ShowTerms:    false,
			ShowPayment:  true,
		},
	}
}

// DefaultLineItemFields returns the built-in line-item column set used
// when a template is created without explicit field configuration.
func DefaultLineItemFields() []TemplateField {
	return []TemplateField{
		{ID: "description", Name: "description", Label: "Description", Visible: true},
		{ID: "quantity", Name: "quantity", Label: "Qty", Visible: true},
		{ID: "time_period", Name: "time_period", Label: "Period", Visible: false},
		{ID: "unit_price", Name: "unit_price", Label: "Unit Price", Visible: true},
		{ID: "total", Name: "total", Label: "Amount", Visible: true},
	}
}

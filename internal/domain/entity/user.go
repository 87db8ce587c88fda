package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account owner. All catalog items, profiles,
// templates and invoices are scoped to a user.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FullName        string         `gorm:"size:255;not null" json:"full_name"`
	Email           string         `gorm:"size:255;unique;not null" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID      *string        `gorm:"size:255" json:"-"`
	Photo           *string        `gorm:"size:255" json:"photo,omitempty"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Services        []Service        `gorm:"foreignKey:OwnerID" json:"-"`
	Packages        []Package        `gorm:"foreignKey:OwnerID" json:"-"`
	CompanyProfiles []CompanyProfile `gorm:"foreignKey:OwnerID" json:"-"`
	PaymentMethods  []PaymentMethod  `gorm:"foreignKey:OwnerID" json:"-"`
	Templates       []TemplateConfig `gorm:"foreignKey:OwnerID" json:"-"`
	Invoices        []Invoice        `gorm:"foreignKey:OwnerID" json:"-"`
	TeamMembers     []TeamMember     `gorm:"foreignKey:AdminID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

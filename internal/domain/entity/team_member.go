package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Capabilities is the boolean capability map gating what a team member
// may do inside the owning account.
type Capabilities struct {
	CanCreateInvoices           bool `gorm:"default:false" json:"can_create_invoices"`
	CanEditInvoices             bool `gorm:"default:false" json:"can_edit_invoices"`
	CanDeleteInvoices           bool `gorm:"default:false" json:"can_delete_invoices"`
	CanViewOnlyAssignedInvoices bool `gorm:"default:false" json:"can_view_only_assigned_invoices"`
	CanManageCatalog            bool `gorm:"default:false" json:"can_manage_catalog"`
	CanManageProfiles           bool `gorm:"default:false" json:"can_manage_profiles"`
	CanManageTemplates          bool `gorm:"default:false" json:"can_manage_templates"`
	CanManageTeam               bool `gorm:"default:false" json:"can_manage_team"`
}

// TeamMember is a scoped credential record under an owning account. It
// is not a User: it exists to gate actions and tag Invoice.CreatedBy.
type TeamMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AdminID  uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Email    string    `gorm:"size:255;unique;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"`
	FullName *string   `gorm:"size:255" json:"full_name,omitempty"`
	Role     string    `gorm:"size:100;default:'member'" json:"role"`
	Capabilities
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Admin User `gorm:"foreignKey:AdminID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new team member
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TeamMember model
func (TeamMember) TableName() string {
	return "team_members"
}

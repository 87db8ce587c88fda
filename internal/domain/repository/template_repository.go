package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
)

// TemplateRepository defines the interface for template data
// operations. SetDefault must clear every other default for the owner
// and flag the given template inside one transaction, so at most one
// template per owner is ever default.
type TemplateRepository interface {
	Create(ctx context.Context, template *entity.TemplateConfig) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TemplateConfig, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.TemplateConfig, error)
	Update(ctx context.Context, template *entity.TemplateConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, ownerID, templateID uuid.UUID) error
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*entity.TemplateConfig, error)
}

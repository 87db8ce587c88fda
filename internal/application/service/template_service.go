package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

// TemplateService handles invoice template configuration
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// CreateTemplateInput represents the input for creating a template
type CreateTemplateInput struct {
	OwnerID      uuid.UUID
	Name         string
	Description  string
	Family       enum.TemplateFamily
	PrimaryColor string
	TextColor    string
	BorderColor  string
	FontFamily   string
	LogoVisible  *bool
	Fields       []entity.TemplateField
	ShowNotes    *bool
	ShowTerms    *bool
	ShowPayment  *bool
	Notes        string
	Terms        string
	CustomFields []entity.NamedField
}

// UpdateTemplateInput represents the input for updating a template
type UpdateTemplateInput struct {
	Name         *string
	Description  *string
	Family       *enum.TemplateFamily
	PrimaryColor *string
	TextColor    *string
	BorderColor  *string
	FontFamily   *string
	LogoVisible  *bool
	Fields       []entity.TemplateField
	ShowNotes    *bool
	ShowTerms    *bool
	ShowPayment  *bool
	Notes        *string
	Terms        *string
	CustomFields []entity.NamedField
}

// CreateTemplate creates a new template. The family tag drives layout
// selection; renaming a template never changes how it renders. Unknown
// families are stored as professional.
func (s *TemplateService) CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*entity.TemplateConfig, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Template name is required")
	}

	fields := input.Fields
	if len(fields) == 0 {
		fields = entity.DefaultLineItemFields()
	}

	template := &entity.TemplateConfig{
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		Description:  input.Description,
		Family:       input.Family.OrDefault(),
		PrimaryColor: input.PrimaryColor,
		TextColor:    input.TextColor,
		BorderColor:  input.BorderColor,
		FontFamily:   input.FontFamily,
		LogoVisible:  boolOr(input.LogoVisible, true),
		Fields:       fields,
		ShowNotes:    boolOr(input.ShowNotes, true),
		ShowTerms:    boolOr(input.ShowTerms, true),
		ShowPayment:  boolOr(input.ShowPayment, true),
		Notes:        input.Notes,
		Terms:        input.Terms,
		CustomFields: input.CustomFields,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// ListTemplates returns all templates for an owner
func (s *TemplateService) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]entity.TemplateConfig, error) {
	templates, err := s.templateRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []entity.TemplateConfig{}
	}
	return templates, nil
}

// GetTemplate returns a template by ID, scoped to the owner
func (s *TemplateService) GetTemplate(ctx context.Context, ownerID, id uuid.UUID) (*entity.TemplateConfig, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil || template.OwnerID != ownerID {
		return nil, apperror.NewNotFoundError("Template")
	}
	return template, nil
}

// UpdateTemplate updates a template. The default flag is only changed
// through SetDefaultTemplate so exclusivity stays transactional.
func (s *TemplateService) UpdateTemplate(ctx context.Context, ownerID, id uuid.UUID, input *UpdateTemplateInput) (*entity.TemplateConfig, error) {
	template, err := s.GetTemplate(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Template name is required")
		}
		template.Name = *input.Name
	}
	if input.Description != nil {
		template.Description = *input.Description
	}
	if input.Family != nil {
		template.Family = input.Family.OrDefault()
	}
	if input.PrimaryColor != nil {
		template.PrimaryColor = *input.PrimaryColor
	}
	if input.TextColor != nil {
		template.TextColor = *input.TextColor
	}
	if input.BorderColor != nil {
		template.BorderColor = *input.BorderColor
	}
	if input.FontFamily != nil {
		template.FontFamily = *input.FontFamily
	}
	if input.LogoVisible != nil {
		template.LogoVisible = *input.LogoVisible
	}
	if input.Fields != nil {
		template.Fields = input.Fields
	}
	if input.ShowNotes != nil {
		template.ShowNotes = *input.ShowNotes
	}
	if input.ShowTerms != nil {
		template.ShowTerms = *input.ShowTerms
	}
	if input.ShowPayment != nil {
		template.ShowPayment = *input.ShowPayment
	}
	if input.Notes != nil {
		template.Notes = *input.Notes
	}
	if input.Terms != nil {
		template.Terms = *input.Terms
	}
	if input.CustomFields != nil {
		template.CustomFields = input.CustomFields
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate deletes a template
func (s *TemplateService) DeleteTemplate(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetTemplate(ctx, ownerID, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

// SetDefaultTemplate flags one template as the owner's default. The
// previous default is cleared in the same transaction, so exactly one
// template is default at any time.
func (s *TemplateService) SetDefaultTemplate(ctx context.Context, ownerID, id uuid.UUID) (*entity.TemplateConfig, error) {
	if _, err := s.GetTemplate(ctx, ownerID, id); err != nil {
		return nil, err
	}
	if err := s.templateRepo.SetDefault(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.GetTemplate(ctx, ownerID, id)
}

// GetDefaultTemplate returns the owner's default template, or nil when
// none is flagged
func (s *TemplateService) GetDefaultTemplate(ctx context.Context, ownerID uuid.UUID) (*entity.TemplateConfig, error) {
	return s.templateRepo.GetDefault(ctx, ownerID)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

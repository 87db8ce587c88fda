package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billcraft-api/internal/domain/repository"
)

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *gorm.DB) domainRepo.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *entity.TemplateConfig) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TemplateConfig, error) {
	var template entity.TemplateConfig
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

func (r *templateRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.TemplateConfig, error) {
	var templates []entity.TemplateConfig
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Update(ctx context.Context, template *entity.TemplateConfig) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TemplateConfig{}, "id = ?", id).Error
}

// SetDefault clears every default flag for the owner and sets the given
// template in one transaction, so readers can never observe zero or two
// defaults.
func (r *templateRepository) SetDefault(ctx context.Context, ownerID, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.TemplateConfig{}).
			Where("owner_id = ? AND is_default = ?", ownerID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.TemplateConfig{}).
			Where("id = ? AND owner_id = ?", templateID, ownerID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *templateRepository) GetDefault(ctx context.Context, ownerID uuid.UUID) (*entity.TemplateConfig, error) {
	var template entity.TemplateConfig
	err := r.db.WithContext(ctx).
		First(&template, "owner_id = ? AND is_default = ?", ownerID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

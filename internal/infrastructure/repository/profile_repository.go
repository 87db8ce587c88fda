package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billcraft-api/internal/domain/repository"
)

type companyProfileRepository struct {
	db *gorm.DB
}

// NewCompanyProfileRepository creates a new company profile repository
func NewCompanyProfileRepository(db *gorm.DB) domainRepo.CompanyProfileRepository {
	return &companyProfileRepository{db: db}
}

func (r *companyProfileRepository) Create(ctx context.Context, profile *entity.CompanyProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *companyProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *companyProfileRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.CompanyProfile, error) {
	var profiles []entity.CompanyProfile
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *companyProfileRepository) Update(ctx context.Context, profile *entity.CompanyProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *companyProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CompanyProfile{}, "id = ?", id).Error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) domainRepo.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PaymentMethod{}, "id = ?", id).Error
}

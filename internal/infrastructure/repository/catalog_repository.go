package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billcraft-api/internal/domain/repository"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new catalog service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Service{}, "id = ?", id).Error
}

type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new catalog package repository
func NewPackageRepository(db *gorm.DB) domainRepo.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	var pkg entity.Package
	err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pkg, err
}

func (r *packageRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Package, error) {
	var packages []entity.Package
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&packages).Error
	return packages, err
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *packageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Package{}, "id = ?", id).Error
}

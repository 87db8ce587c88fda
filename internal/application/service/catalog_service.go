package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

// CatalogService handles reusable services and packages
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	packageRepo repository.PackageRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, packageRepo repository.PackageRepository) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		packageRepo: packageRepo,
	}
}

// CreateServiceInput represents the input for creating a catalog service
type CreateServiceInput struct {
	OwnerID   uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
}

// UpdateServiceInput represents the input for updating a catalog service
type UpdateServiceInput struct {
	Name      *string
	UnitPrice *decimal.Decimal
}

// CreateService creates a new catalog service
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Service name is required")
	}

	service := &entity.Service{
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// ListServices returns all catalog services for an owner
func (s *CatalogService) ListServices(ctx context.Context, ownerID uuid.UUID) ([]entity.Service, error) {
	services, err := s.serviceRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []entity.Service{}
	}
	return services, nil
}

// GetService returns a catalog service by ID, scoped to the owner
func (s *CatalogService) GetService(ctx context.Context, ownerID, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil || service.OwnerID != ownerID {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// UpdateService updates a catalog service. Existing invoices keep the
// name and price they snapshotted at add time.
func (s *CatalogService) UpdateService(ctx context.Context, ownerID, id uuid.UUID, input *UpdateServiceInput) (*entity.Service, error) {
	service, err := s.GetService(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Service name is required")
		}
		service.Name = *input.Name
	}
	if input.UnitPrice != nil {
		service.UnitPrice = *input.UnitPrice
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService deletes a catalog service
func (s *CatalogService) DeleteService(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetService(ctx, ownerID, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

// CreatePackageInput represents the input for creating a package
type CreatePackageInput struct {
	OwnerID  uuid.UUID
	Name     string
	Price    decimal.Decimal
	Services []entity.PackageService
}

// UpdatePackageInput represents the input for updating a package
type UpdatePackageInput struct {
	Name     *string
	Price    *decimal.Decimal
	Services []entity.PackageService
}

// CreatePackage creates a new catalog package. The bundled service
// list is descriptive; Price stands alone and may be below the sum of
// the bundle.
func (s *CatalogService) CreatePackage(ctx context.Context, input *CreatePackageInput) (*entity.Package, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Package name is required")
	}

	pkg := &entity.Package{
		OwnerID:  input.OwnerID,
		Name:     input.Name,
		Price:    input.Price,
		Services: input.Services,
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// ListPackages returns all catalog packages for an owner
func (s *CatalogService) ListPackages(ctx context.Context, ownerID uuid.UUID) ([]entity.Package, error) {
	packages, err := s.packageRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []entity.Package{}
	}
	return packages, nil
}

// GetPackage returns a catalog package by ID, scoped to the owner
func (s *CatalogService) GetPackage(ctx context.Context, ownerID, id uuid.UUID) (*entity.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil || pkg.OwnerID != ownerID {
		return nil, apperror.NewNotFoundError("Package")
	}
	return pkg, nil
}

// UpdatePackage updates a catalog package
func (s *CatalogService) UpdatePackage(ctx context.Context, ownerID, id uuid.UUID, input *UpdatePackageInput) (*entity.Package, error) {
	pkg, err := s.GetPackage(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Package name is required")
		}
		pkg.Name = *input.Name
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.Services != nil {
		pkg.Services = input.Services
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// DeletePackage deletes a catalog package
func (s *CatalogService) DeletePackage(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetPackage(ctx, ownerID, id); err != nil {
		return err
	}
	return s.packageRepo.Delete(ctx, id)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
)

// ServiceRepository defines the interface for catalog service data
// operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PackageRepository defines the interface for catalog package data
// operations
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Package, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
}

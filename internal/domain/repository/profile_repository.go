package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
)

// CompanyProfileRepository defines the interface for company profile
// data operations
type CompanyProfileRepository interface {
	Create(ctx context.Context, profile *entity.CompanyProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.CompanyProfile, error)
	Update(ctx context.Context, profile *entity.CompanyProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodRepository defines the interface for payment method
// data operations
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
}

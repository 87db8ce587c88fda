package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/pagination"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	CreatedBy  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
}

// InvoiceRepository defines the interface for invoice data operations.
// Create persists the invoice and its line items atomically: either
// the whole record is written or nothing is. CreateWithNumber reserves
// the next per-owner sequence value inside the same transaction and
// writes it onto the invoice before insert.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateWithNumber(ctx context.Context, invoice *entity.Invoice, format func(seq int64) string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

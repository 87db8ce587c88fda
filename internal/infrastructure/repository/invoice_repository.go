package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
	"github.com/sangkips/billcraft-api/pkg/pagination"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Create(invoice).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("Invoice number already exists")
	}
	return err
}

// CreateWithNumber reserves the owner's next sequence value and inserts
// the invoice in one transaction. The sequence row is locked for the
// duration of the insert, so concurrent finalizes serialize on it and
// can never be handed the same number.
func (r *invoiceRepository) CreateWithNumber(ctx context.Context, invoice *entity.Invoice, format func(seq int64) string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq entity.InvoiceSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "owner_id = ?", invoice.OwnerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = entity.InvoiceSequence{OwnerID: invoice.OwnerID}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		invoice.InvoiceNumber = format(seq.LastValue)
		return tx.Create(invoice).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("Invoice number already exists")
	}
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("CompanyProfile").
		Preload("PaymentMethod").
		Preload("Template").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "invoice_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("owner_id = ?", ownerID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CreatedBy != nil {
		query = query.Where("created_by = ?", *params.CreatedBy)
	}
	if params.DateFrom != nil {
		query = query.Where("created_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("created_at <= ?", *params.DateTo)
	}
	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ? OR client_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

// Update replaces the invoice and its line items as a full overwrite
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.InvoiceLineItem{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		for i := range invoice.Items {
			invoice.Items[i].ID = uuid.Nil
			invoice.Items[i].InvoiceID = invoice.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("Invoice number already exists")
	}
	return err
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}

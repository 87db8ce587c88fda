package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/application/composer"
	"github.com/sangkips/billcraft-api/internal/application/renderer"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

// InvoiceService composes, persists and renders invoices
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	serviceRepo  repository.ServiceRepository
	packageRepo  repository.PackageRepository
	profileRepo  repository.CompanyProfileRepository
	methodRepo   repository.PaymentMethodRepository
	templateRepo repository.TemplateRepository
	htmlRenderer *renderer.HTMLRenderer
	numberPrefix string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	serviceRepo repository.ServiceRepository,
	packageRepo repository.PackageRepository,
	profileRepo repository.CompanyProfileRepository,
	methodRepo repository.PaymentMethodRepository,
	templateRepo repository.TemplateRepository,
	numberPrefix string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		serviceRepo:  serviceRepo,
		packageRepo:  packageRepo,
		profileRepo:  profileRepo,
		methodRepo:   methodRepo,
		templateRepo: templateRepo,
		htmlRenderer: renderer.NewHTMLRenderer(),
		numberPrefix: numberPrefix,
	}
}

// Actor identifies who is making a request: the account owner, or one
// of their team members with a capability map.
type Actor struct {
	AccountID    uuid.UUID
	TeamMemberID *uuid.UUID
	Capabilities map[string]bool
}

// Can reports whether the actor holds a capability. Account owners
// hold every capability implicitly.
func (a Actor) Can(capability string) bool {
	if a.TeamMemberID == nil {
		return true
	}
	return a.Capabilities[capability]
}

// InvoiceItemInput references a catalog entry to snapshot into a line
type InvoiceItemInput struct {
	Type       enum.LineItemType
	CatalogID  uuid.UUID
	Quantity   int
	TimePeriod int
}

// CreateInvoiceInput represents the input for composing an invoice
type CreateInvoiceInput struct {
	InvoiceNumber      string
	ClientName         string
	ClientPhone        *string
	ClientAddress      *string
	ClientEmail        *string
	ClientCustomFields []entity.NamedField
	Items              []InvoiceItemInput
	TaxPercentage      decimal.Decimal
	DiscountType       enum.DiscountType
	DiscountValue      decimal.Decimal
	Platform           *string
	CompanyProfileID   *uuid.UUID
	PaymentMethodID    *uuid.UUID
	PaymentReceivedBy  *string
	TemplateID         *uuid.UUID
	Notes              *string
	Terms              *string
}

// CreateInvoice snapshots the referenced catalog entries, computes
// totals and persists the invoice atomically. Without a client-supplied
// number, the owner's sequence issues the next one inside the insert
// transaction. A supplied number that collides fails with a conflict;
// the caller retries with a new value.
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor Actor, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if !actor.Can("can_create_invoices") {
		return nil, apperror.ErrForbidden
	}

	if err := s.checkReferences(ctx, actor.AccountID, input.CompanyProfileID, input.PaymentMethodID, input.TemplateID); err != nil {
		return nil, err
	}

	cart := composer.New()
	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		timePeriod := item.TimePeriod
		if timePeriod == 0 {
			timePeriod = 1
		}

		switch item.Type {
		case enum.LineItemTypeService:
			svc, err := s.serviceRepo.GetByID(ctx, item.CatalogID)
			if err != nil {
				return nil, err
			}
			if svc == nil || svc.OwnerID != actor.AccountID {
				return nil, apperror.NewNotFoundError("Service")
			}
			if err := cart.AddServiceLine(*svc, quantity, timePeriod); err != nil {
				return nil, err
			}
		case enum.LineItemTypePackage:
			pkg, err := s.packageRepo.GetByID(ctx, item.CatalogID)
			if err != nil {
				return nil, err
			}
			if pkg == nil || pkg.OwnerID != actor.AccountID {
				return nil, apperror.NewNotFoundError("Package")
			}
			if err := cart.AddPackageLine(*pkg, quantity, timePeriod); err != nil {
				return nil, err
			}
		default:
			return nil, apperror.NewValidationError("Unknown line item type")
		}
	}

	invoice, err := cart.Finalize(composer.Draft{
		OwnerID:            actor.AccountID,
		CreatedBy:          actor.TeamMemberID,
		InvoiceNumber:      input.InvoiceNumber,
		ClientName:         input.ClientName,
		ClientPhone:        input.ClientPhone,
		ClientAddress:      input.ClientAddress,
		ClientEmail:        input.ClientEmail,
		ClientCustomFields: input.ClientCustomFields,
		TaxPercentage:      input.TaxPercentage,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		Platform:           input.Platform,
		CompanyProfileID:   input.CompanyProfileID,
		PaymentMethodID:    input.PaymentMethodID,
		PaymentReceivedBy:  input.PaymentReceivedBy,
		TemplateID:         input.TemplateID,
		Notes:              input.Notes,
		Terms:              input.Terms,
	})
	if err != nil {
		return nil, err
	}

	if invoice.InvoiceNumber == "" {
		err = s.invoiceRepo.CreateWithNumber(ctx, invoice, func(seq int64) string {
			return utils.FormatInvoiceNumber(s.numberPrefix, seq)
		})
	} else {
		err = s.invoiceRepo.Create(ctx, invoice)
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// InvoiceListInput represents filters for listing invoices
type InvoiceListInput struct {
	Filter repository.InvoiceFilterParams
}

// ListInvoices lists the account's invoices. Team members holding
// can_view_only_assigned_invoices see only invoices they created.
func (s *InvoiceService) ListInvoices(ctx context.Context, actor Actor, input *InvoiceListInput) ([]entity.Invoice, int64, error) {
	filter := input.Filter
	if actor.TeamMemberID != nil && actor.Capabilities["can_view_only_assigned_invoices"] {
		filter.CreatedBy = actor.TeamMemberID
	}

	invoices, total, err := s.invoiceRepo.List(ctx, actor.AccountID, &filter)
	if err != nil {
		return nil, 0, err
	}
	if invoices == nil {
		invoices = []entity.Invoice{}
	}
	return invoices, total, nil
}

// GetInvoice returns an invoice with its references preloaded
func (s *InvoiceService) GetInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.OwnerID != actor.AccountID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if actor.TeamMemberID != nil && actor.Capabilities["can_view_only_assigned_invoices"] {
		if invoice.CreatedBy == nil || *invoice.CreatedBy != *actor.TeamMemberID {
			return nil, apperror.NewNotFoundError("Invoice")
		}
	}
	return invoice, nil
}

// RawLineItemInput is a fully specified line used on update, where the
// original catalog entry may have changed or been deleted since the
// snapshot was taken.
type RawLineItemInput struct {
	Type            enum.LineItemType
	Name            string
	UnitPrice       decimal.Decimal
	Quantity        int
	TimePeriod      int
	PackageServices []entity.PackageService
}

// UpdateInvoiceInput represents the input for overwriting an invoice
type UpdateInvoiceInput struct {
	InvoiceNumber      string
	ClientName         string
	ClientPhone        *string
	ClientAddress      *string
	ClientEmail        *string
	ClientCustomFields []entity.NamedField
	Items              []RawLineItemInput
	TaxPercentage      decimal.Decimal
	DiscountType       enum.DiscountType
	DiscountValue      decimal.Decimal
	Platform           *string
	CompanyProfileID   *uuid.UUID
	PaymentMethodID    *uuid.UUID
	PaymentReceivedBy  *string
	TemplateID         *uuid.UUID
	Notes              *string
	Terms              *string
	Status             *enum.InvoiceStatus
}

// UpdateInvoice overwrites an invoice with recomputed totals. Updates
// are full replacements; the last writer wins.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	if !actor.Can("can_edit_invoices") {
		return nil, apperror.ErrForbidden
	}

	invoice, err := s.GetInvoice(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.ClientName == "" {
		return nil, apperror.NewValidationError("Invoice cannot be saved",
			apperror.FieldError{Field: "client_name", Message: "client name is required"})
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Invoice cannot be saved",
			apperror.FieldError{Field: "items", Message: "at least one line item is required"})
	}

	if err := s.checkReferences(ctx, actor.AccountID, input.CompanyProfileID, input.PaymentMethodID, input.TemplateID); err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceLineItem, 0, len(input.Items))
	for i, raw := range input.Items {
		if !raw.Type.IsValid() {
			return nil, apperror.NewValidationError("Unknown line item type")
		}
		if raw.Quantity < 1 || raw.TimePeriod < 1 {
			return nil, apperror.NewValidationError("Invalid line item",
				apperror.FieldError{Field: "items", Message: "quantity and time period must be positive integers"})
		}
		items = append(items, entity.InvoiceLineItem{
			Type:            raw.Type,
			Name:            raw.Name,
			UnitPrice:       raw.UnitPrice,
			Quantity:        raw.Quantity,
			TimePeriod:      raw.TimePeriod,
			Total:           composer.LineTotal(raw.UnitPrice, raw.Quantity, raw.TimePeriod),
			PackageServices: raw.PackageServices,
			Position:        i,
		})
	}

	discountType := input.DiscountType
	if !discountType.IsValid() {
		discountType = enum.DiscountTypeFlat
	}
	totals := composer.ComputeTotals(items, input.TaxPercentage, discountType, input.DiscountValue)

	if input.InvoiceNumber != "" {
		invoice.InvoiceNumber = input.InvoiceNumber
	}
	invoice.ClientName = input.ClientName
	invoice.ClientPhone = input.ClientPhone
	invoice.ClientAddress = input.ClientAddress
	invoice.ClientEmail = input.ClientEmail
	invoice.ClientCustomFields = input.ClientCustomFields
	invoice.Items = items
	invoice.TaxPercentage = input.TaxPercentage
	invoice.DiscountType = discountType
	invoice.DiscountValue = input.DiscountValue
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.DiscountAmount = totals.DiscountAmount
	invoice.Total = totals.Total
	invoice.Platform = input.Platform
	invoice.CompanyProfileID = input.CompanyProfileID
	invoice.PaymentMethodID = input.PaymentMethodID
	invoice.PaymentReceivedBy = input.PaymentReceivedBy
	invoice.TemplateID = input.TemplateID
	invoice.Notes = input.Notes
	invoice.Terms = input.Terms
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewValidationError("Unknown invoice status")
		}
		invoice.Status = *input.Status
	}

	// Drop stale preloaded references so the overwrite carries IDs only.
	invoice.CompanyProfile = nil
	invoice.PaymentMethod = nil
	invoice.Template = nil

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, actor, id)
}

// DeleteInvoice deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Can("can_delete_invoices") {
		return apperror.ErrForbidden
	}
	if _, err := s.GetInvoice(ctx, actor, id); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// RenderInvoice projects an invoice into its document tree. A missing
// template falls back to the owner's default; missing profile or
// payment references degrade to placeholders.
func (s *InvoiceService) RenderInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*renderer.Document, error) {
	invoice, err := s.GetInvoice(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	template := invoice.Template
	if template == nil {
		template, err = s.templateRepo.GetDefault(ctx, actor.AccountID)
		if err != nil {
			return nil, err
		}
	}

	return renderer.Render(invoice, template, invoice.CompanyProfile, invoice.PaymentMethod), nil
}

// ExportInvoice renders an invoice to a self-contained HTML artifact
// and returns it with its download filename.
func (s *InvoiceService) ExportInvoice(ctx context.Context, actor Actor, id uuid.UUID) (filename, html string, err error) {
	invoice, err := s.GetInvoice(ctx, actor, id)
	if err != nil {
		return "", "", err
	}

	doc, err := s.RenderInvoice(ctx, actor, id)
	if err != nil {
		return "", "", err
	}

	html, err = s.htmlRenderer.RenderHTML(doc)
	if err != nil {
		return "", "", err
	}
	return utils.ExportFilename(invoice.InvoiceNumber, invoice.ClientName, "html"), html, nil
}

// checkReferences verifies optional references exist and belong to the
// owner before they are written onto an invoice
func (s *InvoiceService) checkReferences(ctx context.Context, ownerID uuid.UUID, profileID, methodID, templateID *uuid.UUID) error {
	if profileID != nil {
		profile, err := s.profileRepo.GetByID(ctx, *profileID)
		if err != nil {
			return err
		}
		if profile == nil || profile.OwnerID != ownerID {
			return apperror.NewNotFoundError("Company profile")
		}
	}
	if methodID != nil {
		method, err := s.methodRepo.GetByID(ctx, *methodID)
		if err != nil {
			return err
		}
		if method == nil || method.OwnerID != ownerID {
			return apperror.NewNotFoundError("Payment method")
		}
	}
	if templateID != nil {
		template, err := s.templateRepo.GetByID(ctx, *templateID)
		if err != nil {
			return err
		}
		if template == nil || template.OwnerID != ownerID {
			return apperror.NewNotFoundError("Template")
		}
	}
	return nil
}

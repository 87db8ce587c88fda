package composer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

// Totals holds the derived monetary fields of an invoice, each rounded
// to 2 decimal places. Total may be negative when the discount exceeds
// subtotal plus tax; callers decide whether to accept that.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// LineTotal computes unit_price * quantity * time_period, rounded to 2
// decimal places.
func LineTotal(unitPrice decimal.Decimal, quantity, timePeriod int) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(int64(timePeriod))).
		Round(2)
}

// ComputeTotals derives subtotal, tax, discount and total from the line
// items and pricing settings. Tax applies to the subtotal only; the
// discount then subtracts from subtotal plus tax. Percentages are taken
// as given, without clamping.
func ComputeTotals(items []entity.InvoiceLineItem, taxPercentage decimal.Decimal, discountType enum.DiscountType, discountValue decimal.Decimal) Totals {
	subtotal := lo.Reduce(items, func(acc decimal.Decimal, item entity.InvoiceLineItem, _ int) decimal.Decimal {
		return acc.Add(item.Total)
	}, decimal.Zero)

	taxAmount := subtotal.Mul(taxPercentage).Div(oneHundred)

	var discountAmount decimal.Decimal
	if discountType == enum.DiscountTypePercentage {
		discountAmount = subtotal.Mul(discountValue).Div(oneHundred)
	} else {
		discountAmount = discountValue
	}

	return Totals{
		Subtotal:       subtotal.Round(2),
		TaxAmount:      taxAmount.Round(2),
		DiscountAmount: discountAmount.Round(2),
		Total:          subtotal.Add(taxAmount).Sub(discountAmount).Round(2),
	}
}

// Composer accumulates line items for an invoice being built. Catalog
// rows are snapshotted at add time, so later catalog edits never reach
// a composed invoice.
type Composer struct {
	items []entity.InvoiceLineItem
}

// New creates an empty composer
func New() *Composer {
	return &Composer{}
}

// Items returns the current line items in position order
func (c *Composer) Items() []entity.InvoiceLineItem {
	return c.items
}

// AddServiceLine snapshots a catalog service into a new line item
func (c *Composer) AddServiceLine(svc entity.Service, quantity, timePeriod int) error {
	if err := validateCounts(quantity, timePeriod); err != nil {
		return err
	}

	c.items = append(c.items, entity.InvoiceLineItem{
		Type:       enum.LineItemTypeService,
		Name:       svc.Name,
		UnitPrice:  svc.UnitPrice,
		Quantity:   quantity,
		TimePeriod: timePeriod,
		Total:      LineTotal(svc.UnitPrice, quantity, timePeriod),
		Position:   len(c.items),
	})
	return nil
}

// AddPackageLine snapshots a catalog package into a new line item. The
// bundled service list is copied for display; only the package price
// participates in the math.
func (c *Composer) AddPackageLine(pkg entity.Package, quantity, timePeriod int) error {
	if err := validateCounts(quantity, timePeriod); err != nil {
		return err
	}

	services := make([]entity.PackageService, len(pkg.Services))
	copy(services, pkg.Services)

	c.items = append(c.items, entity.InvoiceLineItem{
		Type:            enum.LineItemTypePackage,
		Name:            pkg.Name,
		UnitPrice:       pkg.Price,
		Quantity:        quantity,
		TimePeriod:      timePeriod,
		Total:           LineTotal(pkg.Price, quantity, timePeriod),
		PackageServices: services,
		Position:        len(c.items),
	})
	return nil
}

// UpdateLine changes the quantity and/or time period of the line at the
// given position and recomputes its total. Nil leaves a field as is.
func (c *Composer) UpdateLine(position int, quantity, timePeriod *int) error {
	if position < 0 || position >= len(c.items) {
		return apperror.NewNotFoundError("Line item")
	}

	item := &c.items[position]
	newQuantity := item.Quantity
	newPeriod := item.TimePeriod
	if quantity != nil {
		newQuantity = *quantity
	}
	if timePeriod != nil {
		newPeriod = *timePeriod
	}
	if err := validateCounts(newQuantity, newPeriod); err != nil {
		return err
	}

	item.Quantity = newQuantity
	item.TimePeriod = newPeriod
	item.Total = LineTotal(item.UnitPrice, newQuantity, newPeriod)
	return nil
}

// RemoveLine deletes the line at the given position and renumbers the
// remaining items
func (c *Composer) RemoveLine(position int) error {
	if position < 0 || position >= len(c.items) {
		return apperror.NewNotFoundError("Line item")
	}

	c.items = append(c.items[:position], c.items[position+1:]...)
	for i := range c.items {
		c.items[i].Position = i
	}
	return nil
}

// Draft carries everything besides line items that goes into a
// finalized invoice
type Draft struct {
	OwnerID            uuid.UUID
	CreatedBy          *uuid.UUID
	InvoiceNumber      string
	ClientName         string
	ClientPhone        *string
	ClientAddress      *string
	ClientEmail        *string
	ClientCustomFields []entity.NamedField
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

// Finalize validates the draft, computes totals and assembles a draft
// invoice ready for persistence. The cart must contain at least one
// line and the client name must be non-empty.
func (c *Composer) Finalize(d Draft) (*entity.Invoice, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(d.ClientName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client_name", Message: "client name is required"})
	}
	if len(c.items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one line item is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invoice cannot be finalized", fieldErrors...)
	}

	discountType := d.DiscountType
	if !discountType.IsValid() {
		discountType = enum.DiscountTypeFlat
	}

	totals := ComputeTotals(c.items, d.TaxPercentage, discountType, d.DiscountValue)

	items := make([]entity.InvoiceLineItem, len(c.items))
	copy(items, c.items)

	return &entity.Invoice{
		OwnerID:            d.OwnerID,
		CreatedBy:          d.CreatedBy,
		InvoiceNumber:      strings.TrimSpace(d.InvoiceNumber),
		ClientName:         strings.TrimSpace(d.ClientName),
		ClientPhone:        d.ClientPhone,
		ClientAddress:      d.ClientAddress,
		ClientEmail:        d.ClientEmail,
		ClientCustomFields: d.ClientCustomFields,
		TaxPercentage:      d.TaxPercentage,
		DiscountType:       discountType,
		DiscountValue:      d.DiscountValue,
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.TaxAmount,
		DiscountAmount:     totals.DiscountAmount,
		Total:              totals.Total,
		Platform:           d.Platform,
		CompanyProfileID:   d.CompanyProfileID,
		PaymentMethodID:    d.PaymentMethodID,
		PaymentReceivedBy:  d.PaymentReceivedBy,
		TemplateID:         d.TemplateID,
		Notes:              d.Notes,
		Terms:              d.Terms,
		Status:             enum.InvoiceStatusDraft,
		Items:              items,
	}, nil
}

func validateCounts(quantity, timePeriod int) error {
	var fieldErrors []apperror.FieldError
	if quantity < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "quantity must be a positive integer"})
	}
	if timePeriod < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "time_period", Message: "time period must be a positive integer"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("Invalid line item", fieldErrors...)
	}
	return nil
}

package renderer

import (
	"github.com/sangkips/billcraft-api/internal/domain/enum"
)

// Document is the structured visual tree an invoice renders into. The
// same tree backs the on-screen preview and the exported artifact, so
// the two can never diverge.
type Document struct {
	InvoiceNumber string
	Status        string
	IssuedAt      string
	Platform      string

	Family enum.TemplateFamily
	Theme  Theme

	Company CompanyBlock
	Client  ClientBlock

	Columns []Column
	Rows    []Row
	Totals  TotalsBlock

	Payment *PaymentBlock
	Notes   string
	Terms   string
}

// Theme carries the template's visual options
type Theme struct {
	PrimaryColor string
	TextColor    string
	BorderColor  string
	FontFamily   string
	LogoVisible  bool
}

// CompanyBlock is the identity banner at the top of the document.
// Placeholder is set when the invoice has no company profile and the
// block renders a neutral stand-in instead of failing.
type CompanyBlock struct {
	Placeholder  bool
	Name         string
	Email        string
	Address      string
	LogoURL      string
	Tagline      string
	CustomFields []LabeledValue
}

// ClientBlock is the bill-to section
type ClientBlock struct {
	Name         string
	Phone        string
	Address      string
	Email        string
	CustomFields []LabeledValue
}

// LabeledValue is a rendered name/value pair
type LabeledValue struct {
	Label string
	Value string
}

// Column is one line-item table column. Custom marks columns appended
// from the template's custom fields rather than the built-in set.
type Column struct {
	ID     string
	Label  string
	Custom bool
}

// Row is one rendered line item. Cells align with Document.Columns.
// SubItems carries a package's bundled services, informational only.
type Row struct {
	Cells    []string
	SubItems []SubItem
}

// SubItem is one bundled service shown beneath a package row
type SubItem struct {
	Name     string
	Quantity string
}

// TotalsBlock is the computed summary under the line-item table
type TotalsBlock struct {
	Subtotal      string
	TaxLabel      string
	TaxAmount     string
	DiscountLabel string
	Discount      string
	Total         string
}

// PaymentBlock renders the selected payment method. Fields are sorted
// by name so the same invoice always renders the same tree.
type PaymentBlock struct {
	Name       string
	Type       string
	Fields     []LabeledValue
	ReceivedBy string
}

package renderer

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
)

const companyPlaceholder = "No Company Profile Selected"

// Render projects an invoice and its optional references into a
// document tree. It is a pure function of its inputs: the same invoice
// and template always yield the same tree, and missing references
// degrade to placeholders instead of errors.
func Render(inv *entity.Invoice, tpl *entity.TemplateConfig, profile *entity.CompanyProfile, method *entity.PaymentMethod) *Document {
	if tpl == nil {
		tpl = &entity.TemplateConfig{
			Family:      enum.TemplateFamilyProfessional,
			LogoVisible: true,
			Fields:      entity.DefaultLineItemFields(),
			ShowNotes:   true,
			ShowTerms:   true,
			ShowPayment: true,
		}
	}

	doc := &Document{
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		IssuedAt:      inv.CreatedAt.UTC().Format("2006-01-02"),
		Platform:      deref(inv.Platform),
		Family:        tpl.Family.OrDefault(),
		Theme: Theme{
			PrimaryColor: tpl.PrimaryColor,
			TextColor:    tpl.TextColor,
			BorderColor:  tpl.BorderColor,
			FontFamily:   tpl.FontFamily,
			LogoVisible:  tpl.LogoVisible,
		},
		Company: renderCompany(profile),
		Client: ClientBlock{
			Name:         inv.ClientName,
			Phone:        deref(inv.ClientPhone),
			Address:      deref(inv.ClientAddress),
			Email:        deref(inv.ClientEmail),
			CustomFields: namedToLabeled(inv.ClientCustomFields),
		},
	}

	doc.Columns = renderColumns(tpl)
	doc.Rows = renderRows(inv.Items, doc.Columns, inv.ClientCustomFields, tpl.CustomFields)
	doc.Totals = renderTotals(inv)

	if tpl.ShowPayment {
		doc.Payment = renderPayment(method, deref(inv.PaymentReceivedBy))
	}
	if tpl.ShowNotes {
		doc.Notes = firstNonEmpty(deref(inv.Notes), tpl.Notes)
	}
	if tpl.ShowTerms {
		doc.Terms = firstNonEmpty(deref(inv.Terms), tpl.Terms)
	}

	return doc
}

func renderCompany(profile *entity.CompanyProfile) CompanyBlock {
	if profile == nil {
		return CompanyBlock{Placeholder: true, Name: companyPlaceholder}
	}
	return CompanyBlock{
		Name:         profile.Name,
		Email:        profile.Email,
		Address:      deref(profile.Address),
		LogoURL:      deref(profile.LogoURL),
		Tagline:      deref(profile.Tagline),
		CustomFields: namedToLabeled(profile.CustomFields),
	}
}

// renderColumns keeps the template's visible built-in fields in stored
// order, then appends the template custom fields as extra columns.
func renderColumns(tpl *entity.TemplateConfig) []Column {
	fields := tpl.Fields
	if len(fields) == 0 {
		fields = entity.DefaultLineItemFields()
	}

	var columns []Column
	for _, f := range fields {
		if !f.Visible {
			continue
		}
		label := f.Label
		if f.CustomLabel != "" {
			label = f.CustomLabel
		}
		columns = append(columns, Column{ID: f.Name, Label: label})
	}
	for _, cf := range tpl.CustomFields {
		columns = append(columns, Column{ID: cf.Name, Label: cf.Name, Custom: true})
	}
	return columns
}

func renderRows(items []entity.InvoiceLineItem, columns []Column, clientFields []entity.NamedField, templateFields []entity.NamedField) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{Cells: make([]string, len(columns))}
		for i, col := range columns {
			if col.Custom {
				row.Cells[i] = resolveCustomField(col.ID, clientFields, templateFields)
				continue
			}
			row.Cells[i] = builtinCell(col.ID, item)
		}
		for _, ps := range item.PackageServices {
			sub := SubItem{Name: ps.Name}
			if ps.Quantity != nil {
				sub.Quantity = strconv.Itoa(*ps.Quantity)
			}
			row.SubItems = append(row.SubItems, sub)
		}
		rows = append(rows, row)
	}
	return rows
}

func builtinCell(id string, item entity.InvoiceLineItem) string {
	switch id {
	case "description":
		return item.Name
	case "quantity":
		return strconv.Itoa(item.Quantity)
	case "time_period":
		return strconv.Itoa(item.TimePeriod)
	case "unit_price":
		return FormatMoney(item.UnitPrice)
	case "total":
		return FormatMoney(item.Total)
	default:
		return "-"
	}
}

// resolveCustomField resolves a custom column value in three tiers:
// the matching client field, then the template field's own static
// value, then "-".
func resolveCustomField(name string, clientFields []entity.NamedField, templateFields []entity.NamedField) string {
	for _, f := range clientFields {
		if f.Name == name && f.Value != "" {
			return f.Value
		}
	}
	for _, f := range templateFields {
		if f.Name == name && f.Value != "" {
			return f.Value
		}
	}
	return "-"
}

func renderTotals(inv *entity.Invoice) TotalsBlock {
	block := TotalsBlock{
		Subtotal:  FormatMoney(inv.Subtotal),
		TaxLabel:  "Tax (" + FormatPercent(inv.TaxPercentage) + ")",
		TaxAmount: FormatMoney(inv.TaxAmount),
		Discount:  FormatMoney(inv.DiscountAmount),
		Total:     FormatMoney(inv.Total),
	}
	if inv.DiscountType == enum.DiscountTypePercentage {
		block.DiscountLabel = "Discount (" + FormatPercent(inv.DiscountValue) + ")"
	} else {
		block.DiscountLabel = "Discount"
	}
	return block
}

func renderPayment(method *entity.PaymentMethod, receivedBy string) *PaymentBlock {
	if method == nil {
		return nil
	}

	names := make([]string, 0, len(method.Fields))
	for name := range method.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]LabeledValue, 0, len(names))
	for _, name := range names {
		fields = append(fields, LabeledValue{Label: name, Value: method.Fields[name]})
	}

	return &PaymentBlock{
		Name:       method.Name,
		Type:       string(method.Type),
		Fields:     fields,
		ReceivedBy: receivedBy,
	}
}

// FormatMoney formats a monetary value to exactly 2 decimal places
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPercent formats a percentage as an integer with a % suffix,
// keeping the fraction only when the value is not whole.
func FormatPercent(d decimal.Decimal) string {
	if d.IsInteger() {
		return strconv.FormatInt(d.IntPart(), 10) + "%"
	}
	return d.String() + "%"
}

func namedToLabeled(fields []entity.NamedField) []LabeledValue {
	out := make([]LabeledValue, 0, len(fields))
	for _, f := range fields {
		out = append(out, LabeledValue{Label: f.Name, Value: f.Value})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

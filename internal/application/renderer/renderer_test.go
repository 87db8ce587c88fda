package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
)

func strPtr(s string) *string { return &s }

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		InvoiceNumber:  "INV-000007",
		ClientName:     "Acme Corp",
		ClientEmail:    strPtr("billing@acme.test"),
		TaxPercentage:  decimal.NewFromInt(10),
		DiscountType:   enum.DiscountTypePercentage,
		DiscountValue:  decimal.NewFromInt(5),
		Subtotal:       decimal.NewFromInt(200),
		TaxAmount:      decimal.NewFromInt(20),
		DiscountAmount: decimal.NewFromInt(10),
		Total:          decimal.NewFromInt(210),
		Status:         enum.InvoiceStatusDraft,
		CreatedAt:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Items: []entity.InvoiceLineItem{
			{
				Type:       enum.LineItemTypeService,
				Name:       "Design",
				UnitPrice:  decimal.NewFromInt(120),
				Quantity:   1,
				TimePeriod: 1,
				Total:      decimal.NewFromInt(120),
				Position:   0,
			},
			{
				Type:       enum.LineItemTypeService,
				Name:       "Development",
				UnitPrice:  decimal.NewFromInt(80),
				Quantity:   1,
				TimePeriod: 1,
				Total:      decimal.NewFromInt(80),
				Position:   1,
			},
		},
	}
}

func sampleTemplate() *entity.TemplateConfig {
	return &entity.TemplateConfig{
		ID:           uuid.New(),
		Name:         "Professional",
		Family:       enum.TemplateFamilyProfessional,
		PrimaryColor: "#1f2a44",
		LogoVisible:  true,
		Fields:       entity.DefaultLineItemFields(),
		ShowNotes:    true,
		ShowTerms:    true,
		ShowPayment:  true,
	}
}

func TestRenderCustomFieldResolutionOrder(t *testing.T) {
	tpl := sampleTemplate()
	tpl.CustomFields = []entity.NamedField{{Name: "TIN", Value: "DEFAULT"}}

	t.Run("client field wins", func(t *testing.T) {
		inv := sampleInvoice()
		inv.ClientCustomFields = []entity.NamedField{{Name: "TIN", Value: "123-456"}}

		doc := Render(inv, tpl, nil, nil)
		require.NotEmpty(t, doc.Rows)
		assert.Equal(t, "123-456", lastCell(doc.Rows[0]))
	})

	t.Run("template static value as fallback", func(t *testing.T) {
		doc := Render(sampleInvoice(), tpl, nil, nil)
		assert.Equal(t, "DEFAULT", lastCell(doc.Rows[0]))
	})

	t.Run("dash when neither present", func(t *testing.T) {
		bare := sampleTemplate()
		bare.CustomFields = []entity.NamedField{{Name: "TIN"}}
		doc := Render(sampleInvoice(), bare, nil, nil)
		assert.Equal(t, "-", lastCell(doc.Rows[0]))
	})
}

func lastCell(r Row) string {
	return r.Cells[len(r.Cells)-1]
}

func TestRenderColumnVisibilityAndLabels(t *testing.T) {
	tpl := sampleTemplate()
	tpl.Fields = []entity.TemplateField{
		{ID: "description", Name: "description", Label: "Description", Visible: true, CustomLabel: "Item"},
		{ID: "quantity", Name: "quantity", Label: "Qty", Visible: false},
		{ID: "total", Name: "total", Label: "Amount", Visible: true},
	}
	tpl.CustomFields = []entity.NamedField{{Name: "PO Number", Value: "PO-9"}}

	doc := Render(sampleInvoice(), tpl, nil, nil)

	require.Len(t, doc.Columns, 3)
	assert.Equal(t, "Item", doc.Columns[0].Label)
	assert.Equal(t, "Amount", doc.Columns[1].Label)
	assert.Equal(t, "PO Number", doc.Columns[2].Label)
	assert.True(t, doc.Columns[2].Custom)

	assert.Equal(t, []string{"Design", "120.00", "PO-9"}, doc.Rows[0].Cells)
}

func TestRenderMissingProfileUsesPlaceholder(t *testing.T) {
	doc := Render(sampleInvoice(), sampleTemplate(), nil, nil)

	assert.True(t, doc.Company.Placeholder)
	assert.Equal(t, "No Company Profile Selected", doc.Company.Name)
}

func TestRenderPaymentBlock(t *testing.T) {
	method := &entity.PaymentMethod{
		Type: enum.PaymentMethodTypeBank,
		Name: "Main Account",
		Fields: map[string]string{
			"Bank Name":      "First National",
			"Account Number": "12345678",
		},
	}

	t.Run("fields sorted by name", func(t *testing.T) {
		doc := Render(sampleInvoice(), sampleTemplate(), nil, method)
		require.NotNil(t, doc.Payment)
		require.Len(t, doc.Payment.Fields, 2)
		assert.Equal(t, "Account Number", doc.Payment.Fields[0].Label)
		assert.Equal(t, "Bank Name", doc.Payment.Fields[1].Label)
	})

	t.Run("omitted without a method", func(t *testing.T) {
		doc := Render(sampleInvoice(), sampleTemplate(), nil, nil)
		assert.Nil(t, doc.Payment)
	})

	t.Run("omitted when template hides payment", func(t *testing.T) {
		tpl := sampleTemplate()
		tpl.ShowPayment = false
		doc := Render(sampleInvoice(), tpl, nil, method)
		assert.Nil(t, doc.Payment)
	})
}

func TestRenderTotalsFormatting(t *testing.T) {
	inv := sampleInvoice()
	doc := Render(inv, sampleTemplate(), nil, nil)

	assert.Equal(t, "200.00", doc.Totals.Subtotal)
	assert.Equal(t, "Tax (10%)", doc.Totals.TaxLabel)
	assert.Equal(t, "20.00", doc.Totals.TaxAmount)
	assert.Equal(t, "Discount (5%)", doc.Totals.DiscountLabel)
	assert.Equal(t, "10.00", doc.Totals.Discount)
	assert.Equal(t, "210.00", doc.Totals.Total)
}

func TestRenderFlatDiscountLabel(t *testing.T) {
	inv := sampleInvoice()
	inv.DiscountType = enum.DiscountTypeFlat
	doc := Render(inv, sampleTemplate(), nil, nil)
	assert.Equal(t, "Discount", doc.Totals.DiscountLabel)
}

func TestRenderPackageSubItems(t *testing.T) {
	qty := 2
	inv := sampleInvoice()
	inv.Items = []entity.InvoiceLineItem{{
		Type:       enum.LineItemTypePackage,
		Name:       "Starter Bundle",
		UnitPrice:  decimal.NewFromInt(500),
		Quantity:   1,
		TimePeriod: 1,
		Total:      decimal.NewFromInt(500),
		PackageServices: []entity.PackageService{
			{Name: "Hosting", Quantity: &qty},
			{Name: "Support"},
		},
	}}

	doc := Render(inv, sampleTemplate(), nil, nil)
	require.Len(t, doc.Rows, 1)
	require.Len(t, doc.Rows[0].SubItems, 2)
	assert.Equal(t, "Hosting", doc.Rows[0].SubItems[0].Name)
	assert.Equal(t, "2", doc.Rows[0].SubItems[0].Quantity)
	assert.Empty(t, doc.Rows[0].SubItems[1].Quantity)
}

func TestRenderIsDeterministic(t *testing.T) {
	inv := sampleInvoice()
	tpl := sampleTemplate()
	method := &entity.PaymentMethod{
		Type: enum.PaymentMethodTypeBank,
		Name: "Main Account",
		Fields: map[string]string{
			"Bank Name":      "First National",
			"Account Number": "12345678",
			"Routing Number": "000111222",
		},
	}
	profile := &entity.CompanyProfile{Name: "Studio", Email: "hello@studio.test"}

	first := Render(inv, tpl, profile, method)
	second := Render(inv, tpl, profile, method)
	assert.Equal(t, first, second)
}

func TestRenderNilTemplateFallsBackToDefaults(t *testing.T) {
	doc := Render(sampleInvoice(), nil, nil, nil)

	assert.Equal(t, enum.TemplateFamilyProfessional, doc.Family)
	// Default field set hides the time period column.
	for _, col := range doc.Columns {
		assert.NotEqual(t, "time_period", col.ID)
	}
}

func TestRenderUnknownFamilyDegradesToProfessional(t *testing.T) {
	tpl := sampleTemplate()
	tpl.Family = enum.TemplateFamily("neon")
	doc := Render(sampleInvoice(), tpl, nil, nil)
	assert.Equal(t, enum.TemplateFamilyProfessional, doc.Family)
}

func TestHTMLRendererFamilies(t *testing.T) {
	r := NewHTMLRenderer()
	inv := sampleInvoice()

	t.Run("professional layout", func(t *testing.T) {
		doc := Render(inv, sampleTemplate(), nil, nil)
		html, err := r.RenderHTML(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "INV-000007")
		assert.Contains(t, html, "210.00")
		assert.Contains(t, html, "width: 210mm")
		assert.NotContains(t, html, "rotate(35deg)")
	})

	t.Run("minimalist layout", func(t *testing.T) {
		tpl := sampleTemplate()
		tpl.Family = enum.TemplateFamilyMinimalist
		doc := Render(inv, tpl, nil, nil)
		html, err := r.RenderHTML(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "rotate(35deg)")
	})

	t.Run("rejects hostile theme values", func(t *testing.T) {
		tpl := sampleTemplate()
		tpl.PrimaryColor = "red; } body { display:none"
		tpl.FontFamily = "</style><script>"
		doc := Render(inv, tpl, nil, nil)
		html, err := r.RenderHTML(doc)
		require.NoError(t, err)
		assert.False(t, strings.Contains(html, "display:none"))
		assert.False(t, strings.Contains(html, "<script>"))
	})
}

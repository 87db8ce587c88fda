package composer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

func newService(name string, price string) entity.Service {
	return entity.Service{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func newPackage(name string, price string, services ...entity.PackageService) entity.Package {
	return entity.Package{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Services: services,
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		quantity   int
		timePeriod int
		expected   string
	}{
		{"single unit", "50", 1, 1, "50"},
		{"quantity multiplies", "50", 3, 1, "150"},
		{"time period multiplies", "50", 2, 4, "400"},
		{"rounds to 2dp", "0.3333", 3, 1, "1"},
		{"fractional price", "19.99", 2, 1, "39.98"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(decimal.RequireFromString(tt.unitPrice), tt.quantity, tt.timePeriod)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	items := func(totals ...string) []entity.InvoiceLineItem {
		out := make([]entity.InvoiceLineItem, len(totals))
		for i, s := range totals {
			out[i] = entity.InvoiceLineItem{Total: decimal.RequireFromString(s)}
		}
		return out
	}

	tests := []struct {
		name          string
		items         []entity.InvoiceLineItem
		taxPct        string
		discountType  enum.DiscountType
		discountValue string
		subtotal      string
		tax           string
		discount      string
		total         string
	}{
		{
			name:  "tax and percentage discount",
			items: items("120", "80"), taxPct: "10",
			discountType: enum.DiscountTypePercentage, discountValue: "5",
			subtotal: "200", tax: "20", discount: "10", total: "210",
		},
		{
			name:  "flat discount without tax",
			items: items("100"), taxPct: "0",
			discountType: enum.DiscountTypeFlat, discountValue: "15",
			subtotal: "100", tax: "0", discount: "15", total: "85",
		},
		{
			name:  "discount exceeding subtotal goes negative",
			items: items("50"), taxPct: "0",
			discountType: enum.DiscountTypeFlat, discountValue: "80",
			subtotal: "50", tax: "0", discount: "80", total: "-30",
		},
		{
			name:  "percentage over one hundred is not clamped",
			items: items("100"), taxPct: "0",
			discountType: enum.DiscountTypePercentage, discountValue: "150",
			subtotal: "100", tax: "0", discount: "150", total: "-50",
		},
		{
			name:  "empty cart yields zeros",
			items: nil, taxPct: "10",
			discountType: enum.DiscountTypeFlat, discountValue: "0",
			subtotal: "0", tax: "0", discount: "0", total: "0",
		},
		{
			name:  "fractional tax rounds to cents",
			items: items("99.99"), taxPct: "7.25",
			discountType: enum.DiscountTypeFlat, discountValue: "0",
			subtotal: "99.99", tax: "7.25", discount: "0", total: "107.24",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, decimal.RequireFromString(tt.taxPct), tt.discountType, decimal.RequireFromString(tt.discountValue))

			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(got.Subtotal), "subtotal: expected %s, got %s", tt.subtotal, got.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.tax).Equal(got.TaxAmount), "tax: expected %s, got %s", tt.tax, got.TaxAmount)
			assert.True(t, decimal.RequireFromString(tt.discount).Equal(got.DiscountAmount), "discount: expected %s, got %s", tt.discount, got.DiscountAmount)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(got.Total), "total: expected %s, got %s", tt.total, got.Total)
		})
	}
}

func TestComposerAddServiceLine(t *testing.T) {
	c := New()
	svc := newService("Logo Design", "150")

	err := c.AddServiceLine(svc, 2, 1)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, enum.LineItemTypeService, items[0].Type)
	assert.Equal(t, "Logo Design", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 0, items[0].Position)
	assert.True(t, decimal.NewFromInt(300).Equal(items[0].Total))
}

func TestComposerAddServiceLineRejectsNonPositiveCounts(t *testing.T) {
	c := New()
	svc := newService("Logo Design", "150")

	err := c.AddServiceLine(svc, 0, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	err = c.AddServiceLine(svc, 1, -2)
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Empty(t, c.Items())
}

func TestComposerSnapshotIsolation(t *testing.T) {
	c := New()
	svc := newService("Consulting", "100")
	require.NoError(t, c.AddServiceLine(svc, 1, 1))

	// Catalog edits after the add must not reach the composed line.
	svc.Name = "Consulting (renamed)"
	svc.UnitPrice = decimal.NewFromInt(999)

	item := c.Items()[0]
	assert.Equal(t, "Consulting", item.Name)
	assert.True(t, decimal.NewFromInt(100).Equal(item.UnitPrice))
}

func TestComposerAddPackageLine(t *testing.T) {
	qty := 3
	pkg := newPackage("Starter Bundle", "500",
		entity.PackageService{Name: "Hosting", Quantity: &qty},
		entity.PackageService{Name: "Support"},
	)

	c := New()
	require.NoError(t, c.AddPackageLine(pkg, 1, 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, enum.LineItemTypePackage, items[0].Type)
	assert.True(t, decimal.NewFromInt(1000).Equal(items[0].Total))
	require.Len(t, items[0].PackageServices, 2)
	assert.Equal(t, "Hosting", items[0].PackageServices[0].Name)

	// The bundle list is a copy, not a shared slice.
	pkg.Services[0].Name = "changed"
	assert.Equal(t, "Hosting", c.Items()[0].PackageServices[0].Name)
}

func TestComposerUpdateLine(t *testing.T) {
	c := New()
	require.NoError(t, c.AddServiceLine(newService("Retainer", "100"), 1, 1))

	qty := 2
	period := 3
	require.NoError(t, c.UpdateLine(0, &qty, &period))

	item := c.Items()[0]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 3, item.TimePeriod)
	assert.True(t, decimal.NewFromInt(600).Equal(item.Total))

	// Partial update keeps the other field.
	newQty := 5
	require.NoError(t, c.UpdateLine(0, &newQty, nil))
	assert.Equal(t, 3, c.Items()[0].TimePeriod)
	assert.True(t, decimal.NewFromInt(1500).Equal(c.Items()[0].Total))
}

func TestComposerUpdateLineValidation(t *testing.T) {
	c := New()
	require.NoError(t, c.AddServiceLine(newService("Retainer", "100"), 2, 1))

	bad := 0
	err := c.UpdateLine(0, &bad, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	// Failed update leaves the line untouched.
	assert.Equal(t, 2, c.Items()[0].Quantity)

	qty := 1
	err = c.UpdateLine(7, &qty, nil)
	assert.True(t, apperror.IsNotFoundError(err))
}

func TestComposerRemoveLineRenumbers(t *testing.T) {
	c := New()
	require.NoError(t, c.AddServiceLine(newService("A", "10"), 1, 1))
	require.NoError(t, c.AddServiceLine(newService("B", "20"), 1, 1))
	require.NoError(t, c.AddServiceLine(newService("C", "30"), 1, 1))

	require.NoError(t, c.RemoveLine(1))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 1, items[1].Position)

	assert.True(t, apperror.IsNotFoundError(c.RemoveLine(5)))
}

func TestComposerFinalize(t *testing.T) {
	c := New()
	require.NoError(t, c.AddServiceLine(newService("Design", "120"), 1, 1))
	require.NoError(t, c.AddServiceLine(newService("Development", "80"), 1, 1))

	ownerID := uuid.New()
	inv, err := c.Finalize(Draft{
		OwnerID:       ownerID,
		ClientName:    "  Acme Corp  ",
		TaxPercentage: decimal.NewFromInt(10),
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, inv.OwnerID)
	assert.Equal(t, "Acme Corp", inv.ClientName)
	assert.Equal(t, enum.InvoiceStatusDraft, inv.Status)
	assert.True(t, decimal.NewFromInt(200).Equal(inv.Subtotal))
	assert.True(t, decimal.NewFromInt(20).Equal(inv.TaxAmount))
	assert.True(t, decimal.NewFromInt(10).Equal(inv.DiscountAmount))
	assert.True(t, decimal.NewFromInt(210).Equal(inv.Total))
	assert.Len(t, inv.Items, 2)
}

func TestComposerFinalizeDefaultsDiscountType(t *testing.T) {
	c := New()
	require.NoError(t, c.AddServiceLine(newService("Design", "100"), 1, 1))

	inv, err := c.Finalize(Draft{
		OwnerID:       uuid.New(),
		ClientName:    "Acme",
		DiscountType:  enum.DiscountType("coupon"),
		DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.DiscountTypeFlat, inv.DiscountType)
	assert.True(t, decimal.NewFromInt(90).Equal(inv.Total))
}

func TestComposerFinalizeValidation(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		c := New()
		_, err := c.Finalize(Draft{OwnerID: uuid.New(), ClientName: "Acme"})
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	})

	t.Run("blank client name", func(t *testing.T) {
		c := New()
		require.NoError(t, c.AddServiceLine(newService("Design", "100"), 1, 1))
		_, err := c.Finalize(Draft{OwnerID: uuid.New(), ClientName: "   "})
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	})

	t.Run("both missing reports both fields", func(t *testing.T) {
		c := New()
		_, err := c.Finalize(Draft{OwnerID: uuid.New()})
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Len(t, appErr.Errors, 2)
	})
}

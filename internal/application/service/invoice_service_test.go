package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

type invoiceFixture struct {
	svc         *InvoiceService
	invoiceRepo *fakeInvoiceRepo
	serviceRepo *fakeServiceRepo
	packageRepo *fakePackageRepo
	profileRepo *fakeProfileRepo
	methodRepo  *fakeMethodRepo
	tmplRepo    *fakeTemplateRepo
	ownerID     uuid.UUID
}

func newInvoiceFixture() *invoiceFixture {
	invoiceRepo := newFakeInvoiceRepo()
	serviceRepo := newFakeServiceRepo()
	packageRepo := newFakePackageRepo()
	profileRepo := newFakeProfileRepo()
	methodRepo := newFakeMethodRepo()
	tmplRepo := newFakeTemplateRepo()

	invoiceRepo.profiles = profileRepo
	invoiceRepo.methods = methodRepo
	invoiceRepo.templates = tmplRepo

	return &invoiceFixture{
		svc:         NewInvoiceService(invoiceRepo, serviceRepo, packageRepo, profileRepo, methodRepo, tmplRepo, "INV"),
		invoiceRepo: invoiceRepo,
		serviceRepo: serviceRepo,
		packageRepo: packageRepo,
		profileRepo: profileRepo,
		methodRepo:  methodRepo,
		tmplRepo:    tmplRepo,
		ownerID:     uuid.New(),
	}
}

func (f *invoiceFixture) owner() Actor {
	return Actor{AccountID: f.ownerID}
}

func (f *invoiceFixture) seedService(t *testing.T, name, price string) *entity.Service {
	t.Helper()
	svc := &entity.Service{OwnerID: f.ownerID, Name: name, UnitPrice: decimal.RequireFromString(price)}
	require.NoError(t, f.serviceRepo.Create(context.Background(), svc))
	return svc
}

func TestCreateInvoiceIssuesSequentialNumbers(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Logo Design", "250.00")

	input := &CreateInvoiceInput{
		ClientName: "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID, Quantity: 1, TimePeriod: 1},
		},
	}

	first, err := f.svc.CreateInvoice(context.Background(), f.owner(), input)
	require.NoError(t, err)
	second, err := f.svc.CreateInvoice(context.Background(), f.owner(), input)
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", first.InvoiceNumber)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)
	assert.Equal(t, enum.InvoiceStatusDraft, first.Status)
}

func TestCreateInvoiceValidationWritesNothing(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName: "",
		Items:      nil,
	})

	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	appErr := apperror.GetAppError(err)
	assert.Len(t, appErr.Errors, 2)
	assert.Zero(t, f.invoiceRepo.creates, "a rejected draft must not reach the store")
}

func TestCreateInvoiceDuplicateNumberConflicts(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Consulting", "100.00")

	input := &CreateInvoiceInput{
		InvoiceNumber: "INV-000042",
		ClientName:    "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID, Quantity: 1, TimePeriod: 1},
		},
	}

	_, err := f.svc.CreateInvoice(context.Background(), f.owner(), input)
	require.NoError(t, err)

	_, err = f.svc.CreateInvoice(context.Background(), f.owner(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
	assert.Equal(t, 1, f.invoiceRepo.creates)
}

func TestCreateInvoiceSnapshotsCatalogPrices(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Hosting", "30.00")

	invoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName:    "Acme Corp",
		TaxPercentage: decimal.NewFromInt(10),
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID, Quantity: 2, TimePeriod: 3},
		},
	})
	require.NoError(t, err)

	// Mutating the catalog afterwards must not touch the snapshot.
	svc.UnitPrice = decimal.RequireFromString("999.00")
	require.NoError(t, f.serviceRepo.Update(context.Background(), svc))

	reloaded, err := f.svc.GetInvoice(context.Background(), f.owner(), invoice.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "30", reloaded.Items[0].UnitPrice.String())
	assert.Equal(t, "180", reloaded.Items[0].Total.String())
	assert.Equal(t, "180", reloaded.Subtotal.String())
	assert.Equal(t, "18", reloaded.TaxAmount.String())
	assert.Equal(t, "198", reloaded.Total.String())
}

func TestCreateInvoiceRejectsForeignReferences(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")

	otherProfile := &entity.CompanyProfile{OwnerID: uuid.New(), Name: "Not Yours", Email: "x@y.z"}
	require.NoError(t, f.profileRepo.Create(context.Background(), otherProfile))

	_, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName:       "Acme Corp",
		CompanyProfileID: &otherProfile.ID,
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsNotFoundError(err))
}

func TestMemberCapabilityGates(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")
	memberID := uuid.New()

	member := Actor{
		AccountID:    f.ownerID,
		TeamMemberID: &memberID,
		Capabilities: map[string]bool{},
	}

	input := &CreateInvoiceInput{
		ClientName: "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	}

	_, err := f.svc.CreateInvoice(context.Background(), member, input)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	member.Capabilities["can_create_invoices"] = true
	invoice, err := f.svc.CreateInvoice(context.Background(), member, input)
	require.NoError(t, err)
	require.NotNil(t, invoice.CreatedBy)
	assert.Equal(t, memberID, *invoice.CreatedBy)

	err = f.svc.DeleteInvoice(context.Background(), member, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)
}

func TestRestrictedMemberSeesOnlyOwnInvoices(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")
	memberID := uuid.New()

	input := &CreateInvoiceInput{
		ClientName: "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	}

	ownerInvoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), input)
	require.NoError(t, err)

	member := Actor{
		AccountID:    f.ownerID,
		TeamMemberID: &memberID,
		Capabilities: map[string]bool{
			"can_create_invoices":             true,
			"can_view_only_assigned_invoices": true,
		},
	}
	memberInvoice, err := f.svc.CreateInvoice(context.Background(), member, input)
	require.NoError(t, err)

	invoices, total, err := f.svc.ListInvoices(context.Background(), member, &InvoiceListInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, invoices, 1)
	assert.Equal(t, memberInvoice.ID, invoices[0].ID)

	// The owner's invoice reads as missing, not as forbidden.
	_, err = f.svc.GetInvoice(context.Background(), member, ownerInvoice.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFoundError(err))

	// The owner still sees both.
	invoices, total, err = f.svc.ListInvoices(context.Background(), f.owner(), &InvoiceListInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, invoices, 2)
}

func TestRenderRoundTripIsDeterministic(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Logo Design", "250.00")

	profile := &entity.CompanyProfile{OwnerID: f.ownerID, Name: "Studio One", Email: "hello@studio.one"}
	require.NoError(t, f.profileRepo.Create(context.Background(), profile))

	method := &entity.PaymentMethod{
		OwnerID: f.ownerID,
		Type:    enum.PaymentMethodTypeBank,
		Name:    "Main Account",
		Fields:  map[string]string{"Bank Name": "First National", "Account Number": "12345"},
	}
	require.NoError(t, f.methodRepo.Create(context.Background(), method))

	templates := entity.BuiltinTemplates()
	tmpl := &templates[0]
	tmpl.OwnerID = f.ownerID
	require.NoError(t, f.tmplRepo.Create(context.Background(), tmpl))

	invoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName:       "Acme Corp",
		CompanyProfileID: &profile.ID,
		PaymentMethodID:  &method.ID,
		TemplateID:       &tmpl.ID,
		TaxPercentage:    decimal.NewFromInt(10),
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	first, err := f.svc.RenderInvoice(context.Background(), f.owner(), invoice.ID)
	require.NoError(t, err)
	second, err := f.svc.RenderInvoice(context.Background(), f.owner(), invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Studio One", first.Company.Name)
	require.NotNil(t, first.Payment)
	assert.Equal(t, "Main Account", first.Payment.Name)
	assert.Equal(t, "Tax (10%)", first.Totals.TaxLabel)
}

func TestRenderFallsBackToDefaultTemplate(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")

	templates := entity.BuiltinTemplates()
	deflt := &templates[1]
	deflt.OwnerID = f.ownerID
	deflt.IsDefault = true
	require.NoError(t, f.tmplRepo.Create(context.Background(), deflt))

	invoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName: "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	})
	require.NoError(t, err)

	doc, err := f.svc.RenderInvoice(context.Background(), f.owner(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TemplateFamilyMinimalist, doc.Family)
	assert.True(t, doc.Company.Placeholder)
}

func TestExportInvoiceFilenameAndContent(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")

	invoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName: "Acme Corp Ltd",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	})
	require.NoError(t, err)

	filename, html, err := f.svc.ExportInvoice(context.Background(), f.owner(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-000001-acme-corp-ltd.html", filename)
	assert.True(t, strings.Contains(html, "INV-000001"))
	assert.True(t, strings.Contains(html, "Acme Corp Ltd"))
	assert.True(t, strings.Contains(html, "210mm"))
}

func TestUpdateInvoiceRecomputesTotals(t *testing.T) {
	f := newInvoiceFixture()
	svc := f.seedService(t, "Design", "50.00")

	invoice, err := f.svc.CreateInvoice(context.Background(), f.owner(), &CreateInvoiceInput{
		ClientName: "Acme Corp",
		Items: []InvoiceItemInput{
			{Type: enum.LineItemTypeService, CatalogID: svc.ID},
		},
	})
	require.NoError(t, err)

	sent := enum.InvoiceStatusSent
	updated, err := f.svc.UpdateInvoice(context.Background(), f.owner(), invoice.ID, &UpdateInvoiceInput{
		ClientName:    "Acme Corp",
		TaxPercentage: decimal.NewFromInt(5),
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		Status:        &sent,
		Items: []RawLineItemInput{
			{Type: enum.LineItemTypeService, Name: "Design", UnitPrice: decimal.RequireFromString("80.00"), Quantity: 2, TimePeriod: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusSent, updated.Status)
	assert.Equal(t, "160", updated.Subtotal.String())
	assert.Equal(t, "8", updated.TaxAmount.String())
	assert.Equal(t, "16", updated.DiscountAmount.String())
	assert.Equal(t, "152", updated.Total.String())
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "160", updated.Items[0].Total.String())
}

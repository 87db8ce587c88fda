package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

// In-memory repository fakes. They mirror the store semantics the gorm
// implementations provide: GetByID returns (nil, nil) on a miss, Create
// assigns IDs, and the invoice fake enforces number uniqueness and the
// per-owner sequence.

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]entity.Service)}
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	r.services[svc.ID] = *svc
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (r *fakeServiceRepo) List(_ context.Context, ownerID uuid.UUID) ([]entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Service
	for _, svc := range r.services {
		if svc.OwnerID == ownerID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[svc.ID] = *svc
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, id)
	return nil
}

type fakePackageRepo struct {
	mu       sync.Mutex
	packages map[uuid.UUID]entity.Package
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: make(map[uuid.UUID]entity.Package)}
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *entity.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	r.packages[pkg.ID] = *pkg
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg, ok := r.packages[id]
	if !ok {
		return nil, nil
	}
	return &pkg, nil
}

func (r *fakePackageRepo) List(_ context.Context, ownerID uuid.UUID) ([]entity.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Package
	for _, pkg := range r.packages {
		if pkg.OwnerID == ownerID {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) Update(_ context.Context, pkg *entity.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[pkg.ID] = *pkg
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.packages, id)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]entity.CompanyProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]entity.CompanyProfile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (r *fakeProfileRepo) List(_ context.Context, ownerID uuid.UUID) ([]entity.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.CompanyProfile
	for _, profile := range r.profiles {
		if profile.OwnerID == ownerID {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

type fakeMethodRepo struct {
	mu      sync.Mutex
	methods map[uuid.UUID]entity.PaymentMethod
}

func newFakeMethodRepo() *fakeMethodRepo {
	return &fakeMethodRepo{methods: make(map[uuid.UUID]entity.PaymentMethod)}
}

func (r *fakeMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.methods[method.ID] = *method
	return nil
}

func (r *fakeMethodRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	method, ok := r.methods[id]
	if !ok {
		return nil, nil
	}
	return &method, nil
}

func (r *fakeMethodRepo) List(_ context.Context, ownerID uuid.UUID) ([]entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PaymentMethod
	for _, method := range r.methods {
		if method.OwnerID == ownerID {
			out = append(out, method)
		}
	}
	return out, nil
}

func (r *fakeMethodRepo) Update(_ context.Context, method *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[method.ID] = *method
	return nil
}

func (r *fakeMethodRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.methods, id)
	return nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[uuid.UUID]entity.TemplateConfig
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]entity.TemplateConfig)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *entity.TemplateConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	r.templates[template.ID] = *template
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.TemplateConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	template, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	return &template, nil
}

func (r *fakeTemplateRepo) List(_ context.Context, ownerID uuid.UUID) ([]entity.TemplateConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.TemplateConfig
	for _, template := range r.templates {
		if template.OwnerID == ownerID {
			out = append(out, template)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *entity.TemplateConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[template.ID] = *template
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) SetDefault(_ context.Context, ownerID, templateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[templateID]; !ok {
		return apperror.NewNotFoundError("Template")
	}
	for id, template := range r.templates {
		if template.OwnerID != ownerID {
			continue
		}
		template.IsDefault = id == templateID
		r.templates[id] = template
	}
	return nil
}

func (r *fakeTemplateRepo) GetDefault(_ context.Context, ownerID uuid.UUID) (*entity.TemplateConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, template := range r.templates {
		if template.OwnerID == ownerID && template.IsDefault {
			t := template
			return &t, nil
		}
	}
	return nil, nil
}

// fakeInvoiceRepo stores invoices, enforces number uniqueness and
// issues per-owner sequence values. When wired to the other fakes it
// resolves references on GetByID the way the gorm preloads do.
type fakeInvoiceRepo struct {
	mu        sync.Mutex
	invoices  map[uuid.UUID]entity.Invoice
	sequences map[uuid.UUID]int64
	creates   int

	profiles  *fakeProfileRepo
	methods   *fakeMethodRepo
	templates *fakeTemplateRepo
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices:  make(map[uuid.UUID]entity.Invoice),
		sequences: make(map[uuid.UUID]int64),
	}
}

func (r *fakeInvoiceRepo) numberTaken(number string) bool {
	for _, inv := range r.invoices {
		if inv.InvoiceNumber == number {
			return true
		}
	}
	return false
}

func (r *fakeInvoiceRepo) insert(invoice *entity.Invoice) error {
	if r.numberTaken(invoice.InvoiceNumber) {
		return apperror.NewConflictError("Invoice number already exists")
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range invoice.Items {
		if invoice.Items[i].ID == uuid.Nil {
			invoice.Items[i].ID = uuid.New()
		}
		invoice.Items[i].InvoiceID = invoice.ID
	}
	r.invoices[invoice.ID] = *invoice
	r.creates++
	return nil
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(invoice)
}

func (r *fakeInvoiceRepo) CreateWithNumber(_ context.Context, invoice *entity.Invoice, format func(seq int64) string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.sequences[invoice.OwnerID] + 1
	invoice.InvoiceNumber = format(next)
	if err := r.insert(invoice); err != nil {
		return err
	}
	r.sequences[invoice.OwnerID] = next
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	r.mu.Lock()
	invoice, ok := r.invoices[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}

	if r.profiles != nil && invoice.CompanyProfileID != nil {
		invoice.CompanyProfile, _ = r.profiles.GetByID(ctx, *invoice.CompanyProfileID)
	}
	if r.methods != nil && invoice.PaymentMethodID != nil {
		invoice.PaymentMethod, _ = r.methods.GetByID(ctx, *invoice.PaymentMethodID)
	}
	if r.templates != nil && invoice.TemplateID != nil {
		invoice.Template, _ = r.templates.GetByID(ctx, *invoice.TemplateID)
	}
	return &invoice, nil
}

func (r *fakeInvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.InvoiceNumber == number {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, ownerID uuid.UUID, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.OwnerID != ownerID {
			continue
		}
		if params != nil && params.Status != nil && inv.Status != *params.Status {
			continue
		}
		if params != nil && params.CreatedBy != nil {
			if inv.CreatedBy == nil || *inv.CreatedBy != *params.CreatedBy {
				continue
			}
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.ID]; !ok {
		return apperror.NewNotFoundError("Invoice")
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
	return nil
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billcraft-api/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// InvoiceItemRequest references a catalog entry for a new invoice line
type InvoiceItemRequest struct {
	Type       string    `json:"type" binding:"required,oneof=service package"`
	CatalogID  uuid.UUID `json:"catalog_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"omitempty,min=1"`
	TimePeriod int       `json:"time_period" binding:"omitempty,min=1"`
}

// CreateInvoiceRequest represents the create invoice request body
type CreateInvoiceRequest struct {
	InvoiceNumber      string               `json:"invoice_number"`
	ClientName         string               `json:"client_name"`
	ClientPhone        *string              `json:"client_phone"`
	ClientAddress      *string              `json:"client_address"`
	ClientEmail        *string              `json:"client_email" binding:"omitempty,email"`
	ClientCustomFields []NamedFieldRequest  `json:"client_custom_fields"`
	Items              []InvoiceItemRequest `json:"items" binding:"required,dive"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"`
	DiscountType       string               `json:"discount_type"`
	DiscountValue      decimal.Decimal      `json:"discount_value"`
	Platform           *string              `json:"platform"`
	CompanyProfileID   *uuid.UUID           `json:"company_profile_id"`
	PaymentMethodID    *uuid.UUID           `json:"payment_method_id"`
	PaymentReceivedBy  *string              `json:"payment_received_by"`
	TemplateID         *uuid.UUID           `json:"template_id"`
	Notes              *string              `json:"notes"`
	Terms              *string              `json:"terms"`
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItemInput{
			Type:       enum.LineItemType(item.Type),
			CatalogID:  item.CatalogID,
			Quantity:   item.Quantity,
			TimePeriod: item.TimePeriod,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), *actor, &service.CreateInvoiceInput{
		InvoiceNumber:      req.InvoiceNumber,
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
		ClientAddress:      req.ClientAddress,
		ClientEmail:        req.ClientEmail,
		ClientCustomFields: toNamedFields(req.ClientCustomFields),
		Items:              items,
		TaxPercentage:      req.TaxPercentage,
		DiscountType:       enum.DiscountType(req.DiscountType),
		DiscountValue:      req.DiscountValue,
		Platform:           req.Platform,
		CompanyProfileID:   req.CompanyProfileID,
		PaymentMethodID:    req.PaymentMethodID,
		PaymentReceivedBy:  req.PaymentReceivedBy,
		TemplateID:         req.TemplateID,
		Notes:              req.Notes,
		Terms:              req.Terms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}

// List handles GET /invoices with status, date range, search and
// pagination query parameters
func (h *InvoiceHandler) List(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	filter := repository.InvoiceFilterParams{
		Pagination: params,
		Search:     c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.InvoiceStatus(raw)
		if !status.IsValid() {
			response.BadRequest(c, "Unknown invoice status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("created_by"); raw != "" {
		createdBy, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid created_by filter")
			return
		}
		filter.CreatedBy = &createdBy
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return
		}
		// Inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &to
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), *actor, &service.InvoiceListInput{Filter: filter})
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, http.StatusOK, "Invoices retrieved successfully", result)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// RawLineItemRequest is a fully specified line item on update
type RawLineItemRequest struct {
	Type            string                  `json:"type" binding:"required,oneof=service package"`
	Name            string                  `json:"name" binding:"required"`
	UnitPrice       decimal.Decimal         `json:"unit_price"`
	Quantity        int                     `json:"quantity" binding:"required,min=1"`
	TimePeriod      int                     `json:"time_period" binding:"required,min=1"`
	PackageServices []PackageServiceRequest `json:"package_services"`
}

// UpdateInvoiceRequest represents the update invoice request body
type UpdateInvoiceRequest struct {
	InvoiceNumber      string               `json:"invoice_number"`
	ClientName         string               `json:"client_name"`
	ClientPhone        *string              `json:"client_phone"`
	ClientAddress      *string              `json:"client_address"`
	ClientEmail        *string              `json:"client_email" binding:"omitempty,email"`
	ClientCustomFields []NamedFieldRequest  `json:"client_custom_fields"`
	Items              []RawLineItemRequest `json:"items" binding:"required,dive"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"`
	DiscountType       string               `json:"discount_type"`
	DiscountValue      decimal.Decimal      `json:"discount_value"`
	Platform           *string              `json:"platform"`
	CompanyProfileID   *uuid.UUID           `json:"company_profile_id"`
	PaymentMethodID    *uuid.UUID           `json:"payment_method_id"`
	PaymentReceivedBy  *string              `json:"payment_received_by"`
	TemplateID         *uuid.UUID           `json:"template_id"`
	Notes              *string              `json:"notes"`
	Terms              *string              `json:"terms"`
	Status             *string              `json:"status"`
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.RawLineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		var bundled []entity.PackageService
		if item.PackageServices != nil {
			bundled = toPackageServices(item.PackageServices)
		}
		items = append(items, service.RawLineItemInput{
			Type:            enum.LineItemType(item.Type),
			Name:            item.Name,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			TimePeriod:      item.TimePeriod,
			PackageServices: bundled,
		})
	}

	input := &service.UpdateInvoiceInput{
		InvoiceNumber:      req.InvoiceNumber,
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
		ClientAddress:      req.ClientAddress,
		ClientEmail:        req.ClientEmail,
		ClientCustomFields: toNamedFields(req.ClientCustomFields),
		Items:              items,
		TaxPercentage:      req.TaxPercentage,
		DiscountType:       enum.DiscountType(req.DiscountType),
		DiscountValue:      req.DiscountValue,
		Platform:           req.Platform,
		CompanyProfileID:   req.CompanyProfileID,
		PaymentMethodID:    req.PaymentMethodID,
		PaymentReceivedBy:  req.PaymentReceivedBy,
		TemplateID:         req.TemplateID,
		Notes:              req.Notes,
		Terms:              req.Terms,
	}
	if req.Status != nil {
		status := enum.InvoiceStatus(*req.Status)
		input.Status = &status
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), *actor, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice deleted successfully", nil)
}

// Render handles GET /invoices/:id/render, returning the resolved
// document tree the frontend preview consumes
func (h *InvoiceHandler) Render(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.invoiceService.RenderInvoice(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice rendered successfully", doc)
}

// Export handles GET /invoices/:id/export, streaming a self-contained
// HTML document as an attachment
func (h *InvoiceHandler) Export(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	filename, html, err := h.invoiceService.ExportInvoice(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

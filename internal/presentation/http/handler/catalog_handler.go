package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog service and package HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateServiceRequest represents the create service request body.
// UnitPrice arrives as a JSON string and is parsed as a decimal.
type CreateServiceRequest struct {
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateServiceRequest represents the update service request body
type UpdateServiceRequest struct {
	Name      *string          `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateService handles POST /services
func (h *CatalogHandler) CreateService(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		OwnerID:   *accountID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service created successfully", svc)
}

// ListServices handles GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	services, err := h.catalogService.ListServices(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Services retrieved successfully", services)
}

// UpdateService handles PUT /services/:id
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), *accountID, id, &service.UpdateServiceInput{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service updated successfully", svc)
}

// DeleteService handles DELETE /services/:id
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service deleted successfully", nil)
}

// PackageServiceRequest describes one bundled service
type PackageServiceRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity *int   `json:"quantity" binding:"omitempty,min=1"`
}

// CreatePackageRequest represents the create package request body
type CreatePackageRequest struct {
	Name     string                  `json:"name" binding:"required"`
	Price    decimal.Decimal         `json:"price" binding:"required"`
	Services []PackageServiceRequest `json:"services"`
}

// UpdatePackageRequest represents the update package request body
type UpdatePackageRequest struct {
	Name     *string                 `json:"name"`
	Price    *decimal.Decimal        `json:"price"`
	Services []PackageServiceRequest `json:"services"`
}

// CreatePackage handles POST /packages
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pkg, err := h.catalogService.CreatePackage(c.Request.Context(), &service.CreatePackageInput{
		OwnerID:  *accountID,
		Name:     req.Name,
		Price:    req.Price,
		Services: toPackageServices(req.Services),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Package created successfully", pkg)
}

// ListPackages handles GET /packages
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	packages, err := h.catalogService.ListPackages(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Packages retrieved successfully", packages)
}

// UpdatePackage handles PUT /packages/:id
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid package ID")
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdatePackageInput{
		Name:  req.Name,
		Price: req.Price,
	}
	if req.Services != nil {
		input.Services = toPackageServices(req.Services)
	}

	pkg, err := h.catalogService.UpdatePackage(c.Request.Context(), *accountID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Package updated successfully", pkg)
}

// DeletePackage handles DELETE /packages/:id
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid package ID")
		return
	}

	if err := h.catalogService.DeletePackage(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Package deleted successfully", nil)
}

func toPackageServices(reqs []PackageServiceRequest) []entity.PackageService {
	services := make([]entity.PackageService, 0, len(reqs))
	for _, r := range reqs {
		services = append(services, entity.PackageService{Name: r.Name, Quantity: r.Quantity})
	}
	return services
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles company profile and payment method HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// NamedFieldRequest is one custom label/value pair
type NamedFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// CreateProfileRequest represents the create company profile request body
type CreateProfileRequest struct {
	Name         string              `json:"name" binding:"required"`
	Email        string              `json:"email" binding:"required,email"`
	Address      *string             `json:"address"`
	LogoURL      *string             `json:"logo_url"`
	Tagline      *string             `json:"tagline"`
	CustomFields []NamedFieldRequest `json:"custom_fields"`
}

// UpdateProfileCompanyRequest represents the update company profile request body
type UpdateProfileCompanyRequest struct {
	Name         *string             `json:"name"`
	Email        *string             `json:"email" binding:"omitempty,email"`
	Address      *string             `json:"address"`
	LogoURL      *string             `json:"logo_url"`
	Tagline      *string             `json:"tagline"`
	CustomFields []NamedFieldRequest `json:"custom_fields"`
}

// CreateProfile handles POST /company-profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), &service.CreateProfileInput{
		OwnerID:      *accountID,
		Name:         req.Name,
		Email:        req.Email,
		Address:      req.Address,
		LogoURL:      req.LogoURL,
		Tagline:      req.Tagline,
		CustomFields: toNamedFields(req.CustomFields),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Company profile created successfully", profile)
}

// ListProfiles handles GET /company-profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company profiles retrieved successfully", profiles)
}

// UpdateProfile handles PUT /company-profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company profile ID")
		return
	}

	var req UpdateProfileCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProfileInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		LogoURL: req.LogoURL,
		Tagline: req.Tagline,
	}
	if req.CustomFields != nil {
		input.CustomFields = toNamedFields(req.CustomFields)
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), *accountID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company profile updated successfully", profile)
}

// DeleteProfile handles DELETE /company-profiles/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company profile ID")
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company profile deleted successfully", nil)
}

// CreatePaymentMethodRequest represents the create payment method request body
type CreatePaymentMethodRequest struct {
	Type   string            `json:"type" binding:"required"`
	Name   string            `json:"name" binding:"required"`
	Fields map[string]string `json:"fields"`
}

// UpdatePaymentMethodRequest represents the update payment method request body
type UpdatePaymentMethodRequest struct {
	Type   *string           `json:"type"`
	Name   *string           `json:"name"`
	Fields map[string]string `json:"fields"`
}

// CreatePaymentMethod handles POST /payment-methods
func (h *ProfileHandler) CreatePaymentMethod(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := h.profileService.CreatePaymentMethod(c.Request.Context(), &service.CreatePaymentMethodInput{
		OwnerID: *accountID,
		Type:    enum.PaymentMethodType(req.Type),
		Name:    req.Name,
		Fields:  req.Fields,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment method created successfully", method)
}

// ListPaymentMethods handles GET /payment-methods
func (h *ProfileHandler) ListPaymentMethods(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	methods, err := h.profileService.ListPaymentMethods(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment methods retrieved successfully", methods)
}

// UpdatePaymentMethod handles PUT /payment-methods/:id
func (h *ProfileHandler) UpdatePaymentMethod(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdatePaymentMethodInput{
		Name:   req.Name,
		Fields: req.Fields,
	}
	if req.Type != nil {
		t := enum.PaymentMethodType(*req.Type)
		input.Type = &t
	}

	method, err := h.profileService.UpdatePaymentMethod(c.Request.Context(), *accountID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment method updated successfully", method)
}

// DeletePaymentMethod handles DELETE /payment-methods/:id
func (h *ProfileHandler) DeletePaymentMethod(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	if err := h.profileService.DeletePaymentMethod(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment method deleted successfully", nil)
}

func toNamedFields(reqs []NamedFieldRequest) []entity.NamedField {
	fields := make([]entity.NamedField, 0, len(reqs))
	for _, r := range reqs {
		fields = append(fields, entity.NamedField{Name: r.Name, Value: r.Value})
	}
	return fields
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
)

// TemplateHandler handles invoice template HTTP requests
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// TemplateFieldRequest is one line item column toggle
type TemplateFieldRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Visible     bool   `json:"visible"`
	CustomLabel string `json:"custom_label"`
}

// CreateTemplateRequest represents the create template request body
type CreateTemplateRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	Family       string                 `json:"family"`
	PrimaryColor string                 `json:"primary_color"`
	TextColor    string                 `json:"text_color"`
	BorderColor  string                 `json:"border_color"`
	FontFamily   string                 `json:"font_family"`
	LogoVisible  *bool                  `json:"logo_visible"`
	Fields       []TemplateFieldRequest `json:"fields"`
	ShowNotes    *bool                  `json:"show_notes"`
	ShowTerms    *bool                  `json:"show_terms"`
	ShowPayment  *bool                  `json:"show_payment"`
	Notes        string                 `json:"notes"`
	Terms        string                 `json:"terms"`
	CustomFields []NamedFieldRequest    `json:"custom_fields"`
}

// UpdateTemplateRequest represents the update template request body
type UpdateTemplateRequest struct {
	Name         *string                `json:"name"`
	Description  *string                `json:"description"`
	Family       *string                `json:"family"`
	PrimaryColor *string                `json:"primary_color"`
	TextColor    *string                `json:"text_color"`
	BorderColor  *string                `json:"border_color"`
	FontFamily   *string                `json:"font_family"`
	LogoVisible  *bool                  `json:"logo_visible"`
	Fields       []TemplateFieldRequest `json:"fields"`
	ShowNotes    *bool                  `json:"show_notes"`
	ShowTerms    *bool                  `json:"show_terms"`
	ShowPayment  *bool                  `json:"show_payment"`
	Notes        *string                `json:"notes"`
	Terms        *string                `json:"terms"`
	CustomFields []NamedFieldRequest    `json:"custom_fields"`
}

// CreateTemplate handles POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateTemplateInput{
		OwnerID:      *accountID,
		Name:         req.Name,
		Description:  req.Description,
		Family:       enum.TemplateFamily(req.Family),
		PrimaryColor: req.PrimaryColor,
		TextColor:    req.TextColor,
		BorderColor:  req.BorderColor,
		FontFamily:   req.FontFamily,
		LogoVisible:  req.LogoVisible,
		Fields:       toTemplateFields(req.Fields),
		ShowNotes:    req.ShowNotes,
		ShowTerms:    req.ShowTerms,
		ShowPayment:  req.ShowPayment,
		Notes:        req.Notes,
		Terms:        req.Terms,
		CustomFields: toNamedFields(req.CustomFields),
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Template created successfully", template)
}

// ListTemplates handles GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Templates retrieved successfully", templates)
}

// GetTemplate handles GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Template retrieved successfully", template)
}

// UpdateTemplate handles PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateTemplateInput{
		Name:         req.Name,
		Description:  req.Description,
		PrimaryColor: req.PrimaryColor,
		TextColor:    req.TextColor,
		BorderColor:  req.BorderColor,
		FontFamily:   req.FontFamily,
		LogoVisible:  req.LogoVisible,
		ShowNotes:    req.ShowNotes,
		ShowTerms:    req.ShowTerms,
		ShowPayment:  req.ShowPayment,
		Notes:        req.Notes,
		Terms:        req.Terms,
	}
	if req.Family != nil {
		f := enum.TemplateFamily(*req.Family)
		input.Family = &f
	}
	if req.Fields != nil {
		input.Fields = toTemplateFields(req.Fields)
	}
	if req.CustomFields != nil {
		input.CustomFields = toNamedFields(req.CustomFields)
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), *accountID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Template updated successfully", template)
}

// DeleteTemplate handles DELETE /templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Template deleted successfully", nil)
}

// SetDefaultTemplate handles POST /templates/:id/set-default
func (h *TemplateHandler) SetDefaultTemplate(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.SetDefaultTemplate(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Default template updated successfully", template)
}

func toTemplateFields(reqs []TemplateFieldRequest) []entity.TemplateField {
	fields := make([]entity.TemplateField, 0, len(reqs))
	for _, r := range reqs {
		fields = append(fields, entity.TemplateField{
			ID:          r.ID,
			Name:        r.Name,
			Label:       r.Label,
			Visible:     r.Visible,
			CustomLabel: r.CustomLabel,
		})
	}
	return fields
}

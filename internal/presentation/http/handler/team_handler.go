package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
)

// TeamHandler handles team member HTTP requests
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeamMemberRequest represents the create team member request body
type CreateTeamMemberRequest struct {
	Email        string              `json:"email" binding:"required,email"`
	Password     string              `json:"password" binding:"required,min=8"`
	FullName     *string             `json:"full_name"`
	Role         string              `json:"role"`
	Capabilities entity.Capabilities `json:"capabilities"`
}

// UpdateTeamMemberRequest represents the update team member request body
type UpdateTeamMemberRequest struct {
	FullName     *string              `json:"full_name"`
	Role         *string              `json:"role"`
	Password     *string              `json:"password" binding:"omitempty,min=8"`
	Capabilities *entity.Capabilities `json:"capabilities"`
	IsActive     *bool                `json:"is_active"`
}

// Create handles POST /team-members
func (h *TeamHandler) Create(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	member, err := h.teamService.CreateTeamMember(c.Request.Context(), &service.CreateTeamMemberInput{
		AdminID:      *accountID,
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Role:         req.Role,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Team member created successfully", member)
}

// List handles GET /team-members
func (h *TeamHandler) List(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	members, err := h.teamService.ListTeamMembers(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Team members retrieved successfully", members)
}

// Get handles GET /team-members/:id
func (h *TeamHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid team member ID")
		return
	}

	member, err := h.teamService.GetTeamMember(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Team member retrieved successfully", member)
}

// Update handles PUT /team-members/:id
func (h *TeamHandler) Update(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid team member ID")
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	member, err := h.teamService.UpdateTeamMember(c.Request.Context(), *accountID, id, &service.UpdateTeamMemberInput{
		FullName:     req.FullName,
		Role:         req.Role,
		Password:     req.Password,
		Capabilities: req.Capabilities,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Team member updated successfully", member)
}

// Delete handles DELETE /team-members/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid team member ID")
		return
	}

	if err := h.teamService.DeleteTeamMember(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Team member deleted successfully", nil)
}

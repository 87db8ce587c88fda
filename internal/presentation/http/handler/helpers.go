package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/application/service"
)

// GetAccountID extracts the owning account ID from the Gin context
func GetAccountID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("account_id")
	if !exists {
		return nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetTeamMemberID extracts the team member ID from the Gin context,
// nil when the account owner is logged in
func GetTeamMemberID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("team_member_id")
	if !exists {
		return nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetCapabilities extracts the team member's capability map
func GetCapabilities(c *gin.Context) map[string]bool {
	val, exists := c.Get("capabilities")
	if !exists {
		return nil
	}
	caps, ok := val.(map[string]bool)
	if !ok {
		return nil
	}
	return caps
}

// GetActor assembles the request's actor from the Gin context
func GetActor(c *gin.Context) *service.Actor {
	accountID := GetAccountID(c)
	if accountID == nil {
		return nil
	}
	return &service.Actor{
		AccountID:    *accountID,
		TeamMemberID: GetTeamMemberID(c),
		Capabilities: GetCapabilities(c),
	}
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

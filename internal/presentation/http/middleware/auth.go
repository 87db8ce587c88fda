package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

// AccessTokenCookie is the cookie the frontend stores the session in.
// Bearer headers take precedence when both are present.
const AccessTokenCookie = "access_token"

// AuthMiddleware creates a JWT authentication middleware. It accepts a
// Bearer header or the session cookie and sets the actor's identity in
// the Gin context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "Authentication is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		if claims.TeamMemberID != nil {
			c.Set("team_member_id", *claims.TeamMemberID)
			c.Set("capabilities", claims.Capabilities)
		}

		c.Next()
	}
}

// RequireCapability gates a route on a team-member capability. Account
// owners pass unconditionally.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, isMember := c.Get("team_member_id"); !isMember {
			c.Next()
			return
		}

		capsVal, exists := c.Get("capabilities")
		if !exists {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		caps, ok := capsVal.(map[string]bool)
		if !ok || !caps[capability] {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// GetAccountID extracts the owning account ID from the Gin context
func GetAccountID(c *gin.Context) uuid.UUID {
	val, exists := c.Get("account_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billcraft-api/internal/presentation/http/middleware"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup handles account registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &service.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", user)
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles login for account owners and team members
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, out.AccessToken)
	response.OK(c, "Login successful", out)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	response.OK(c, "Logged out successfully", nil)
}

// RefreshRequest represents the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh issues a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, out.AccessToken)
	response.OK(c, "Token refreshed", out)
}

// Me returns the authenticated identity
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if memberID := GetTeamMemberID(c); memberID != nil {
		member, err := h.authService.GetCurrentTeamMember(c.Request.Context(), *memberID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Authenticated", gin.H{"team_member": member})
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Authenticated", gin.H{"user": user})
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Photo    *string `json:"photo"`
}

// UpdateProfile updates the account owner's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	if GetTeamMemberID(c) != nil {
		response.Forbidden(c, "Team members cannot edit the account profile")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.UpdateAccount(c.Request.Context(), *accountID, &service.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
		Photo:    req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile updated successfully", user)
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword changes the account owner's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), *accountID, &service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}

// DeleteAccount removes the owner account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	if GetTeamMemberID(c) != nil {
		response.Forbidden(c, "Team members cannot delete the account")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), *accountID); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	response.OK(c, "Account deleted successfully", nil)
}

// ForgotPasswordRequest represents the forgot password request body
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword issues a reset token
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPasswordRequest represents the reset password request body
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword consumes a reset token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), &service.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password reset successfully", nil)
}

// GoogleLogin redirects to the Google consent screen
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		response.InternalServerError(c, "Failed to generate state")
		return
	}
	state := hex.EncodeToString(stateBytes)

	url, err := h.authService.GetGoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth flow
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		response.BadRequest(c, "Invalid OAuth state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	out, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, out.AccessToken)
	response.OK(c, "Login successful", out)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AccessTokenCookie, token, h.cookieMaxAge, "/", "", false, true)
}

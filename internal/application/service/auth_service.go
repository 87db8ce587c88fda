package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
	"github.com/sangkips/billcraft-api/pkg/email"
	"github.com/sangkips/billcraft-api/pkg/oauth"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

// AuthService handles authentication for account owners and team
// members. Both log in through the same endpoint; a team member's
// token carries the owning account's ID plus their capability map.
type AuthService struct {
	userRepo     repository.UserRepository
	memberRepo   repository.TeamMemberRepository
	resetRepo    repository.PasswordResetTokenRepository
	templateRepo repository.TemplateRepository
	jwtManager   *utils.JWTManager
	emailService *email.EmailService
	googleOAuth  *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	memberRepo repository.TeamMemberRepository,
	resetRepo repository.PasswordResetTokenRepository,
	templateRepo repository.TemplateRepository,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		memberRepo:   memberRepo,
		resetRepo:    resetRepo,
		templateRepo: templateRepo,
		jwtManager:   jwtManager,
		emailService: emailService,
		googleOAuth:  googleOAuth,
	}
}

// SignupInput represents the input for account registration
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// LoginInput represents the input for logging in
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains tokens and the authenticated identity
type LoginOutput struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         *entity.User       `json:"user,omitempty"`
	TeamMember   *entity.TeamMember `json:"team_member,omitempty"`
}

// Signup registers a new account owner and seeds the two built-in
// templates for them
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*entity.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperror.NewValidationError("Email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An account with this email already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: hashed,
		Provider: "local",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.seedBuiltinTemplates(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to seed templates for %s: %v", user.Email, err)
	}

	return user, nil
}

// Login authenticates an account owner or, failing that, a team member
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if !utils.CheckPasswordHash(input.Password, user.Password) {
			return nil, apperror.ErrInvalidCredentials
		}
		return s.issueOwnerTokens(user)
	}

	member, err := s.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if member == nil || !utils.CheckPasswordHash(input.Password, member.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, apperror.NewAppError(403, "This team member account is deactivated")
	}
	return s.issueMemberTokens(member)
}

// RefreshToken issues a new token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	accountID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.issueOwnerTokens(user)
	}

	member, err := s.memberRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueMemberTokens(member)
}

// GetCurrentUser returns the account owner for the given ID
func (s *AuthService) GetCurrentUser(ctx context.Context, accountID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// GetCurrentTeamMember returns the team member for the given ID
func (s *AuthService) GetCurrentTeamMember(ctx context.Context, memberID uuid.UUID) (*entity.TeamMember, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Team member")
	}
	return member, nil
}

// UpdateAccountInput represents the input for updating the owner profile
type UpdateAccountInput struct {
	FullName *string
	Email    *string
	Photo    *string
}

// UpdateAccount updates the account owner's profile
func (s *AuthService) UpdateAccount(ctx context.Context, accountID uuid.UUID, input *UpdateAccountInput) (*entity.User, error) {
	user, err := s.GetCurrentUser(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("An account with this email already exists")
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordInput represents the input for changing a password
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) error {
	user, err := s.GetCurrentUser(ctx, accountID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		return apperror.NewValidationError("New password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the owner account and everything scoped to it
// through soft deletes
func (s *AuthService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.GetCurrentUser(ctx, accountID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, accountID)
}

// ForgotPassword issues a reset token and emails it. It succeeds even
// when the email is unknown so the endpoint cannot be used to probe
// which addresses have accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.resetRepo.DeleteByEmail(ctx, emailAddr); err != nil {
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &entity.PasswordResetToken{
		Email:     emailAddr,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.resetRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendPasswordResetEmail(emailAddr, token); err != nil {
			log.Printf("Warning: failed to send password reset email to %s: %v", emailAddr, err)
		}
	}
	return nil
}

// ResetPasswordInput represents the input for resetting a password
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPassword consumes a valid token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	resetToken, err := s.resetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if resetToken == nil || !resetToken.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}
	if len(input.NewPassword) < 8 {
		return apperror.NewValidationError("New password must be at least 8 characters")
	}

	user, err := s.userRepo.GetByEmail(ctx, resetToken.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.resetRepo.MarkAsUsed(ctx, input.Token)
}

// GetGoogleAuthURL returns the Google consent URL for the given state
func (s *AuthService) GetGoogleAuthURL(state string) (string, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// HandleGoogleCallback exchanges the code, upserts the account and
// issues tokens
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return nil, oauth.ErrOAuthNotConfigured
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := time.Now()
		user = &entity.User{
			FullName:        info.Name,
			Email:           info.Email,
			Provider:        "google",
			ProviderID:      &info.ID,
			Photo:           &info.Picture,
			EmailVerifiedAt: &now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		if err := s.seedBuiltinTemplates(ctx, user.ID); err != nil {
			log.Printf("Warning: failed to seed templates for %s: %v", user.Email, err)
		}
	}

	return s.issueOwnerTokens(user)
}

func (s *AuthService) issueOwnerTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, nil, user.Email, "owner", nil)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) issueMemberTokens(member *entity.TeamMember) (*LoginOutput, error) {
	capabilities := map[string]bool{
		"can_create_invoices":             member.CanCreateInvoices,
		"can_edit_invoices":               member.CanEditInvoices,
		"can_delete_invoices":             member.CanDeleteInvoices,
		"can_view_only_assigned_invoices": member.CanViewOnlyAssignedInvoices,
		"can_manage_catalog":              member.CanManageCatalog,
		"can_manage_profiles":             member.CanManageProfiles,
		"can_manage_templates":            member.CanManageTemplates,
		"can_manage_team":                 member.CanManageTeam,
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(member.AdminID, &member.ID, member.Email, member.Role, capabilities)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TeamMember:   member,
	}, nil
}

func (s *AuthService) seedBuiltinTemplates(ctx context.Context, ownerID uuid.UUID) error {
	templates := entity.BuiltinTemplates()
	for i := range templates {
		templates[i].OwnerID = ownerID
		if err := s.templateRepo.Create(ctx, &templates[i]); err != nil {
			return err
		}
	}
	return nil
}

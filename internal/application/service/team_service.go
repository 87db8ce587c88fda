package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
	"github.com/sangkips/billcraft-api/pkg/email"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

// TeamService manages team members under an owning account
type TeamService struct {
	memberRepo   repository.TeamMemberRepository
	userRepo     repository.UserRepository
	emailService *email.EmailService
}

// NewTeamService creates a new team service
func NewTeamService(memberRepo repository.TeamMemberRepository, userRepo repository.UserRepository, emailService *email.EmailService) *TeamService {
	return &TeamService{
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// CreateTeamMemberInput represents the input for adding a team member
type CreateTeamMemberInput struct {
	AdminID      uuid.UUID
	Email        string
	Password     string
	FullName     *string
	Role         string
	Capabilities entity.Capabilities
}

// UpdateTeamMemberInput represents the input for updating a team member
type UpdateTeamMemberInput struct {
	FullName     *string
	Role         *string
	Password     *string
	Capabilities *entity.Capabilities
	IsActive     *bool
}

// CreateTeamMember adds a member under the admin's account. Emails are
// unique across members and account owners; collisions fail with a
// conflict.
func (s *TeamService) CreateTeamMember(ctx context.Context, input *CreateTeamMemberInput) (*entity.TeamMember, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperror.NewValidationError("Email and password are required")
	}

	existing, err := s.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A team member with this email already exists")
	}
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("This email belongs to an account owner")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	member := &entity.TeamMember{
		AdminID:      input.AdminID,
		Email:        input.Email,
		Password:     hashed,
		FullName:     input.FullName,
		Role:         role,
		Capabilities: input.Capabilities,
		IsActive:     true,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		admin, err := s.userRepo.GetByID(ctx, input.AdminID)
		adminName := "Your team admin"
		if err == nil && admin != nil {
			adminName = admin.FullName
		}
		if err := s.emailService.SendTeamInviteEmail(member.Email, adminName, member.Role); err != nil {
			log.Printf("Warning: failed to send team invite email to %s: %v", member.Email, err)
		}
	}

	return member, nil
}

// ListTeamMembers returns all members under the admin's account
func (s *TeamService) ListTeamMembers(ctx context.Context, adminID uuid.UUID) ([]entity.TeamMember, error) {
	members, err := s.memberRepo.List(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []entity.TeamMember{}
	}
	return members, nil
}

// GetTeamMember returns a member by ID, scoped to the admin's account
func (s *TeamService) GetTeamMember(ctx context.Context, adminID, id uuid.UUID) (*entity.TeamMember, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil || member.AdminID != adminID {
		return nil, apperror.NewNotFoundError("Team member")
	}
	return member, nil
}

// UpdateTeamMember updates a member's profile, capabilities or password
func (s *TeamService) UpdateTeamMember(ctx context.Context, adminID, id uuid.UUID, input *UpdateTeamMemberInput) (*entity.TeamMember, error) {
	member, err := s.GetTeamMember(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		member.FullName = input.FullName
	}
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		member.Password = hashed
	}
	if input.Capabilities != nil {
		member.Capabilities = *input.Capabilities
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteTeamMember removes a member from the admin's account
func (s *TeamService) DeleteTeamMember(ctx context.Context, adminID, id uuid.UUID) error {
	if _, err := s.GetTeamMember(ctx, adminID, id); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, id)
}

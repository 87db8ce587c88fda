package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billcraft-api/internal/domain/repository"
)

type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *gorm.DB) domainRepo.TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *teamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error) {
	var member entity.TeamMember
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *teamMemberRepository) GetByEmail(ctx context.Context, email string) (*entity.TeamMember, error) {
	var member entity.TeamMember
	err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *teamMemberRepository) List(ctx context.Context, adminID uuid.UUID) ([]entity.TeamMember, error) {
	var members []entity.TeamMember
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *teamMemberRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *teamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TeamMember{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
)

// TeamMemberRepository defines the interface for team member data
// operations. Listing is scoped to the owning account.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entity.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error)
	GetByEmail(ctx context.Context, email string) (*entity.TeamMember, error)
	List(ctx context.Context, adminID uuid.UUID) ([]entity.TeamMember, error)
	Update(ctx context.Context, member *entity.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

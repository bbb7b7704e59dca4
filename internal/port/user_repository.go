package port

import (
	"context"

	"github.com/google/uuid"

	"terptickets/internal/domain"
)

// UserRepository defines the persistence contract backing the local
// identity provider.
type UserRepository interface {
	Create(ctx context.Context, user *domain.UserRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) error
}

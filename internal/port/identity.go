package port

import (
	"context"

	"github.com/google/uuid"

	"terptickets/internal/domain"
)

// Identity abstracts the external identity provider. Errors returned by an
// implementation are surfaced to the user verbatim; callers must not
// translate or classify them.
type Identity interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, email, password string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) error
	CurrentUser(ctx context.Context, token string) (*domain.UserRecord, error)
	SignOut(ctx context.Context, token string) error
}

package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/platform/rbac"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	SetRole(ctx context.Context, id uuid.UUID, role rbac.Role) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetGrants(ctx context.Context, id uuid.UUID, grants []rbac.Capability) error
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
}

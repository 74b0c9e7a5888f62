package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/platform/rbac"
)

// User maps to the app_user table. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	Username     string            `db:"username" json:"username"`
	PasswordHash string            `db:"password_hash" json:"-"`
	FullName     string            `db:"full_name" json:"full_name"`
	Role         rbac.Role         `db:"role" json:"role"`
	Active       bool              `db:"active" json:"active"`
	Grants       []rbac.Capability `db:"grants" json:"grants,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// ToActor converts the account into the view access-control checks use.
func (u *User) ToActor() *rbac.Actor {
	grants := make([]rbac.Capability, len(u.Grants))
	copy(grants, u.Grants)
	return &rbac.Actor{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Active:   u.Active,
		Grants:   grants,
	}
}

// Permissions returns the user's effective capability set.
func (u *User) Permissions() []rbac.Capability {
	return rbac.ApplyOverrides(u.Role, u.Grants)
}

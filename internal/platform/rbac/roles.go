package rbac

import (
	"context"

	"github.com/google/uuid"
)

// Role identifies one of the fixed staff roles. The set is closed: a role
// string outside this set resolves to zero capabilities.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RolePharmacist   Role = "pharmacist"
	RoleCashier      Role = "cashier"
	RoleReceptionist Role = "receptionist"
	RoleTherapist    Role = "therapist"
	RoleStaff        Role = "staff"
)

var roleLabels = map[Role]string{
	RoleAdmin:        "Administrator",
	RoleDoctor:       "Medical Doctor",
	RoleNurse:        "Nurse",
	RolePharmacist:   "Pharmacist",
	RoleCashier:      "Cashier",
	RoleReceptionist: "Receptionist",
	RoleTherapist:    "Therapist",
	RoleStaff:        "General Staff",
}

// ParseRole returns the Role for a raw string and whether it is one of the
// known roles.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleLabels[r]
	return r, ok
}

// Valid reports whether the role is one of the enumerated set.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human-readable name for the role, or the raw value when
// the role is unknown.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Roles returns all known roles. The slice is a copy.
func Roles() []Role {
	return []Role{
		RoleAdmin, RoleDoctor, RoleNurse, RolePharmacist,
		RoleCashier, RoleReceptionist, RoleTherapist, RoleStaff,
	}
}

// Actor is an authenticated user as seen by access-control checks. Grants,
// when non-empty, are admin-issued capability overrides that replace the
// role's default set.
type Actor struct {
	ID       uuid.UUID    `json:"id"`
	Username string       `json:"username"`
	Role     Role         `json:"role"`
	Active   bool         `json:"active"`
	Grants   []Capability `json:"grants,omitempty"`
}

type contextKey string

// ActorKey is the context key under which the authenticated actor is stored.
const ActorKey contextKey = "actor"

// ActorFromContext returns the authenticated actor from the context, or nil
// when the request is unauthenticated.
func ActorFromContext(ctx context.Context) *Actor {
	a, _ := ctx.Value(ActorKey).(*Actor)
	return a
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, ActorKey, a)
}

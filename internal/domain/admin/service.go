package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/hms/internal/platform/auth"
	"github.com/clinicore/hms/internal/platform/rbac"
)

// ErrInvalidCredentials is returned for any failed login attempt. The cause
// (unknown user, wrong password, deactivated account) is not disclosed.
var ErrInvalidCredentials = errors.New("invalid username or password")

const minPasswordLength = 8

type Service struct {
	users  Repository
	issuer *auth.TokenIssuer
}

func NewService(users Repository, issuer *auth.TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// CreateUser registers a staff account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, u *User, password string) error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	for _, g := range u.Grants {
		if !g.Valid() {
			return fmt.Errorf("invalid capability: %s", g)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.Active = true
	return s.users.Create(ctx, u)
}

// Authenticate checks credentials and issues a session token. The token
// carries the role at login time; a later role change invalidates it.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Active {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

// SetRole reassigns the account's role. Outstanding tokens for the old role
// stop working at the next request.
func (s *Service) SetRole(ctx context.Context, id uuid.UUID, role rbac.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.SetRole(ctx, id, role)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, active)
}

// SetGrants replaces the account's capability overrides. An empty list
// restores the role defaults.
func (s *Service) SetGrants(ctx context.Context, id uuid.UUID, grants []rbac.Capability) error {
	for _, g := range grants {
		if !g.Valid() {
			return fmt.Errorf("invalid capability: %s", g)
		}
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.SetGrants(ctx, id, grants)
}

func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.SetPassword(ctx, id, string(hash))
}

// ActorByID resolves the current account state for request authentication.
func (s *Service) ActorByID(ctx context.Context, id uuid.UUID) (*rbac.Actor, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.ToActor(), nil
}

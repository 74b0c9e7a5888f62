package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/hms/internal/platform/rbac"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const userCols = `id, username, password_hash, full_name, role, active, grants, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var role string
	var grants []string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &role, &u.Active, &grants, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = rbac.Role(role)
	for _, g := range grants {
		u.Grants = append(u.Grants, rbac.Capability(g))
	}
	return &u, nil
}

func grantStrings(grants []rbac.Capability) []string {
	out := make([]string, len(grants))
	for i, g := range grants {
		out[i] = string(g)
	}
	return out
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO app_user (id, username, password_hash, full_name, role, active, grants)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, u.PasswordHash, u.FullName, string(u.Role), u.Active, grantStrings(u.Grants))
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE username = $1`, username))
}

func (r *repoPG) SetRole(ctx context.Context, id uuid.UUID, role rbac.Role) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_user SET role=$2, updated_at=NOW() WHERE id = $1`, id, string(role))
	return err
}

func (r *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_user SET active=$2, updated_at=NOW() WHERE id = $1`, id, active)
	return err
}

func (r *repoPG) SetGrants(ctx context.Context, id uuid.UUID, grants []rbac.Capability) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_user SET grants=$2, updated_at=NOW() WHERE id = $1`, id, grantStrings(grants))
	return err
}

func (r *repoPG) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE app_user SET password_hash=$2, updated_at=NOW() WHERE id = $1`, id, passwordHash)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_user`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userCols+` FROM app_user ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

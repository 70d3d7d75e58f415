package authz

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warebase/warebase/internal/shared"
)

// Repository defines persistence operations for the grant store.
type Repository interface {
	ActivePermissionNames(ctx context.Context, userID int64, at time.Time) ([]string, error)
	FindUserByUsername(ctx context.Context, username string) (UserRef, error)
	FindPermissionByName(ctx context.Context, name string) (Permission, error)
	CreateGrant(ctx context.Context, grant Grant) error
	ListUsers(ctx context.Context) ([]UserRef, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ActivePermissionNames joins grants against permission names and filters on
// the validity window at the given instant. NULL bounds are open-ended.
func (r *PGRepository) ActivePermissionNames(ctx context.Context, userID int64, at time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN user_permissions up ON up.permission_id = p.id
		WHERE up.user_id = $1
		  AND (up.valid_from IS NULL OR up.valid_from <= $2)
		  AND (up.valid_to IS NULL OR up.valid_to >= $2)`, userID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindUserByUsername resolves a username to its user id. Exact,
// case-sensitive match.
func (r *PGRepository) FindUserByUsername(ctx context.Context, username string) (UserRef, error) {
	var user UserRef
	err := r.pool.QueryRow(ctx,
		`SELECT id, username FROM users WHERE username = $1`, username).
		Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRef{}, shared.ErrNotFound
		}
		return UserRef{}, err
	}
	return user, nil
}

// FindPermissionByName resolves a permission name to its row.
func (r *PGRepository) FindPermissionByName(ctx context.Context, name string) (Permission, error) {
	var perm Permission
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') FROM permissions WHERE name = $1`, name).
		Scan(&perm.ID, &perm.Name, &perm.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, shared.ErrNotFound
		}
		return Permission{}, err
	}
	return perm, nil
}

// CreateGrant inserts a grant row. The insert is a single statement and is
// therefore all-or-nothing. A foreign key violation means the referenced user
// or permission vanished between resolution and insert.
func (r *PGRepository) CreateGrant(ctx context.Context, grant Grant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_permissions (user_id, permission_id, valid_from, valid_to)
		VALUES ($1, $2, $3, $4)`,
		grant.UserID, grant.PermissionID, grant.ValidFrom, grant.ValidTo)
	if err != nil {
		return grantError(err)
	}
	return nil
}

// grantError maps a foreign key violation on the grant insert to not-found;
// the referenced user or permission row is gone.
func grantError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return shared.ErrNotFound
	}
	return err
}

// ListUsers returns all users ordered by id.
func (r *PGRepository) ListUsers(ctx context.Context) ([]UserRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRef
	for rows.Next() {
		var user UserRef
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ListPermissions returns all permissions ordered by name.
func (r *PGRepository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, '') FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []Permission
	for rows.Next() {
		var perm Permission
		if err := rows.Scan(&perm.ID, &perm.Name, &perm.Description); err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, rows.Err()
}

var _ Repository = (*PGRepository)(nil)

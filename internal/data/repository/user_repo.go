package repository

import (
	"context"
	"fmt"

	"store-rating/internal/data/entity"
	"store-rating/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ListUsersParams filters and orders the admin user listing
type ListUsersParams struct {
	Query string
	Role  string
	Sort  string
	Order string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByOwnerCode(ctx context.Context, ownerCode string) (*entity.User, error)
	FindOwners(ctx context.Context) ([]*entity.User, error)
	List(ctx context.Context, params ListUsersParams) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role entity.UserRole) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateOwnerCode(ctx context.Context, id uuid.UUID, ownerCode string) error
}

var userSortColumns = map[string]string{
	"name":    "name",
	"email":   "email",
	"address": "address",
	"role":    "role",
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password, address, role, owner_id,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.Role,
		user.OwnerID,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, address, role, owner_id,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return ur.scanOne(ctx, query, id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, address, role, owner_id,
		       created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return ur.scanOne(ctx, query, email)
}

// FindByOwnerCode looks a user up by the assigned business identifier
func (ur *userRepository) FindByOwnerCode(ctx context.Context, ownerCode string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, address, role, owner_id,
		       created_at, updated_at
		FROM users
		WHERE owner_id = $1
	`

	return ur.scanOne(ctx, query, ownerCode)
}

func (ur *userRepository) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	// QueryRow returns at most one row
	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&user.Role,
		&user.OwnerID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

// FindOwners lists all users holding the OWNER role, ordered by name
func (ur *userRepository) FindOwners(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT id, name, email, password, address, role, owner_id,
		       created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY name ASC
	`

	rows, err := ur.db.Query(ctx, query, entity.RoleOwner)
	if err != nil {
		ur.log.Error("Failed to list owners", zap.Error(err))
		return nil, fmt.Errorf("find owners: %w", err)
	}
	defer rows.Close()

	return ur.scanRows(rows)
}

// List retrieves users matching the optional substring filter and role,
// ordered by an allow-listed column
func (ur *userRepository) List(ctx context.Context, params ListUsersParams) ([]*entity.User, error) {
	query := `
		SELECT id, name, email, password, address, role, owner_id,
		       created_at, updated_at
		FROM users
		WHERE 1=1
	`

	args := []any{}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR address ILIKE $%d)", n, n, n)
	}
	if params.Role != "" {
		args = append(args, params.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}

	query += " " + orderClause(params.Sort, params.Order, userSortColumns, "name")

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to list users",
			zap.Error(err),
			zap.String("query", params.Query),
			zap.String("role", params.Role),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return ur.scanRows(rows)
}

func (ur *userRepository) scanRows(rows pgx.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Address,
			&user.Role,
			&user.OwnerID,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int64
	err := ur.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = $1`

	var count int64
	err := ur.db.QueryRow(ctx, query, role).Scan(&count)
	if err != nil {
		ur.log.Error("Failed to count users by role",
			zap.Error(err),
			zap.String("role", string(role)),
		)
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}

	return count, nil
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		ur.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

// UpdateOwnerCode assigns the business identifier. The unique index on
// owner_id resolves concurrent assignments: the second writer gets
// ErrDuplicate and the first assignment stays in place.
func (ur *userRepository) UpdateOwnerCode(ctx context.Context, id uuid.UUID, ownerCode string) error {
	query := `UPDATE users SET owner_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, ownerCode)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("assign owner id %s: %w", ownerCode, ErrDuplicate)
		}
		ur.log.Error("Failed to assign owner id",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("owner_id", ownerCode),
		)
		return fmt.Errorf("assign owner id %s to user %s: %w", ownerCode, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

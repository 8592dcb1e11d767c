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

// ListStoresParams filters and orders the admin store listing
type ListStoresParams struct {
	Query string
	Sort  string
	Order string
}

// StoreListRow is a public-listing row: the store, its aggregate average
// rating, and the caller's own rating when authenticated.
type StoreListRow struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Address    *string
	AvgRating  float64
	UserRating *int
}

// StoreRatingRow is an admin-listing row with the aggregate average
type StoreRatingRow struct {
	entity.Store
	AvgRating float64
}

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entity.Store, error)
	ListPublic(ctx context.Context, query string, userID *uuid.UUID) ([]*StoreListRow, error)
	List(ctx context.Context, params ListStoresParams) ([]*StoreRatingRow, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var storeSortColumns = map[string]string{
	"name":    "s.name",
	"email":   "s.email",
	"address": "s.address",
}

type storeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStoreRepository(db database.PgxIface, log *zap.Logger) StoreRepository {
	return &storeRepository{
		db:  db,
		log: log.With(zap.String("repository", "store")),
	}
}

func (sr *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, email, address, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := sr.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
		store.CreatedAt,
		store.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create store %s: %w", store.Email, ErrDuplicate)
		}
		sr.log.Error("Failed to create store",
			zap.Error(err),
			zap.String("email", store.Email),
		)
		return fmt.Errorf("create store %s: %w", store.Email, err)
	}

	return nil
}

func (sr *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	return sr.scanOne(ctx, query, id)
}

// FindByOwner returns the single store belonging to the owning user
func (sr *storeRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, created_at, updated_at
		FROM stores
		WHERE owner_id = $1
	`

	return sr.scanOne(ctx, query, ownerUserID)
}

func (sr *storeRepository) scanOne(ctx context.Context, query string, arg any) (*entity.Store, error) {
	var store entity.Store
	err := sr.db.QueryRow(ctx, query, arg).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find store", zap.Error(err))
		return nil, fmt.Errorf("find store: %w", err)
	}

	return &store, nil
}

// ListPublic returns one row per store carrying both the aggregate average
// and the caller's own rating, computed from a single join via a
// conditional aggregate.
func (sr *storeRepository) ListPublic(ctx context.Context, search string, userID *uuid.UUID) ([]*StoreListRow, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address,
		       COALESCE(AVG(r.rating), 0) AS avg_rating,
		       MAX(r.rating) FILTER (WHERE r.user_id = $1) AS user_rating
		FROM stores s
		LEFT JOIN ratings r ON s.id = r.store_id
	`

	args := []any{userID}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` WHERE s.name ILIKE $2 OR s.address ILIKE $2`
	}
	query += ` GROUP BY s.id, s.name, s.email, s.address ORDER BY s.name ASC`

	rows, err := sr.db.Query(ctx, query, args...)
	if err != nil {
		sr.log.Error("Failed to list stores",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("list public stores: %w", err)
	}
	defer rows.Close()

	var stores []*StoreListRow
	for rows.Next() {
		var row StoreListRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Email,
			&row.Address,
			&row.AvgRating,
			&row.UserRating,
		)
		if err != nil {
			sr.log.Error("Failed to scan store row", zap.Error(err))
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, &row)
	}

	if err := rows.Err(); err != nil {
		sr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate stores rows: %w", err)
	}

	return stores, nil
}

// List retrieves stores with their aggregate rating for the admin surface
func (sr *storeRepository) List(ctx context.Context, params ListStoresParams) ([]*StoreRatingRow, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id,
		       s.created_at, s.updated_at,
		       COALESCE(AVG(r.rating), 0) AS avg_rating
		FROM stores s
		LEFT JOIN ratings r ON s.id = r.store_id
	`

	args := []any{}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		query += ` WHERE s.name ILIKE $1 OR s.email ILIKE $1 OR s.address ILIKE $1`
	}
	query += ` GROUP BY s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at`
	query += " " + orderClause(params.Sort, params.Order, storeSortColumns, "s.name")

	rows, err := sr.db.Query(ctx, query, args...)
	if err != nil {
		sr.log.Error("Failed to list stores with ratings",
			zap.Error(err),
			zap.String("query", params.Query),
		)
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []*StoreRatingRow
	for rows.Next() {
		var row StoreRatingRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Email,
			&row.Address,
			&row.OwnerID,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.AvgRating,
		)
		if err != nil {
			sr.log.Error("Failed to scan store rating row", zap.Error(err))
			return nil, fmt.Errorf("scan store rating row: %w", err)
		}
		stores = append(stores, &row)
	}

	if err := rows.Err(); err != nil {
		sr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate stores rows: %w", err)
	}

	return stores, nil
}

func (sr *storeRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM stores`

	var count int64
	err := sr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		sr.log.Error("Failed to count stores", zap.Error(err))
		return 0, fmt.Errorf("count all stores: %w", err)
	}

	return count, nil
}

func (sr *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, email = $3, address = $4, owner_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := sr.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
		store.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update store %s: %w", store.ID.String(), ErrDuplicate)
		}
		sr.log.Error("Failed to update store",
			zap.Error(err),
			zap.String("store_id", store.ID.String()),
		)
		return fmt.Errorf("update store %s: %w", store.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", store.ID.String())
	}

	return nil
}

// Delete removes the store; its ratings go with it via ON DELETE CASCADE
func (sr *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stores WHERE id = $1`

	result, err := sr.db.Exec(ctx, query, id)
	if err != nil {
		sr.log.Error("Failed to delete store",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return fmt.Errorf("delete store %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", id.String())
	}

	sr.log.Info("Store deleted", zap.String("store_id", id.String()))
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserRatingRow is one entry of a user's rating history
type UserRatingRow struct {
	ID           uuid.UUID
	StoreID      uuid.UUID
	Rating       int
	CreatedAt    time.Time
	StoreName    string
	StoreAddress *string
}

// RaterRow is one rater of a store as seen by its owner
type RaterRow struct {
	RatingID uuid.UUID
	Rating   int
	UserID   uuid.UUID
	Name     string
	Email    string
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *entity.Rating) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*UserRatingRow, error)
	RatersByStore(ctx context.Context, storeID uuid.UUID) ([]*RaterRow, error)
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	AverageByOwner(ctx context.Context, ownerUserID uuid.UUID) (float64, error)
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

// Upsert inserts a rating or overwrites the previous one for the same
// (user, store) pair. Last write wins; the composite unique index
// serializes concurrent submissions.
func (rr *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, store_id, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating
	`

	_, err := rr.db.Exec(ctx, query,
		rating.ID,
		rating.UserID,
		rating.StoreID,
		rating.Rating,
		rating.CreatedAt,
	)

	if err != nil {
		rr.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("user_id", rating.UserID.String()),
			zap.String("store_id", rating.StoreID.String()),
		)
		return fmt.Errorf("upsert rating for store %s by user %s: %w",
			rating.StoreID.String(), rating.UserID.String(), err)
	}

	return nil
}

// FindByUser returns the caller's rating history, newest first
func (rr *ratingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*UserRatingRow, error) {
	query := `
		SELECT r.id, r.store_id, r.rating, r.created_at, s.name, s.address
		FROM ratings r
		INNER JOIN stores s ON r.store_id = s.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := rr.db.Query(ctx, query, userID)
	if err != nil {
		rr.log.Error("Failed to find ratings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find ratings by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var ratings []*UserRatingRow
	for rows.Next() {
		var row UserRatingRow
		err := rows.Scan(
			&row.ID,
			&row.StoreID,
			&row.Rating,
			&row.CreatedAt,
			&row.StoreName,
			&row.StoreAddress,
		)
		if err != nil {
			rr.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &row)
	}

	if err := rows.Err(); err != nil {
		rr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ratings rows: %w", err)
	}

	return ratings, nil
}

// RatersByStore lists who rated a store, ordered by rater name
func (rr *ratingRepository) RatersByStore(ctx context.Context, storeID uuid.UUID) ([]*RaterRow, error) {
	query := `
		SELECT r.id, r.rating, u.id, u.name, u.email
		FROM ratings r
		INNER JOIN users u ON r.user_id = u.id
		WHERE r.store_id = $1
		ORDER BY u.name ASC
	`

	rows, err := rr.db.Query(ctx, query, storeID)
	if err != nil {
		rr.log.Error("Failed to find raters by store",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find raters by store %s: %w", storeID.String(), err)
	}
	defer rows.Close()

	var raters []*RaterRow
	for rows.Next() {
		var row RaterRow
		err := rows.Scan(
			&row.RatingID,
			&row.Rating,
			&row.UserID,
			&row.Name,
			&row.Email,
		)
		if err != nil {
			rr.log.Error("Failed to scan rater row", zap.Error(err))
			return nil, fmt.Errorf("scan rater row: %w", err)
		}
		raters = append(raters, &row)
	}

	if err := rows.Err(); err != nil {
		rr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate raters rows: %w", err)
	}

	return raters, nil
}

func (rr *ratingRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE store_id = $1`

	var count int64
	err := rr.db.QueryRow(ctx, query, storeID).Scan(&count)
	if err != nil {
		rr.log.Error("Failed to count ratings by store",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, fmt.Errorf("count ratings by store %s: %w", storeID.String(), err)
	}

	return count, nil
}

func (rr *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings`

	var count int64
	err := rr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		rr.log.Error("Failed to count ratings", zap.Error(err))
		return 0, fmt.Errorf("count all ratings: %w", err)
	}

	return count, nil
}

// AverageByOwner computes the average rating over the owning user's store
// via a left-join aggregate, zero when no ratings exist
func (rr *ratingRepository) AverageByOwner(ctx context.Context, ownerUserID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(AVG(r.rating), 0)
		FROM stores s
		LEFT JOIN ratings r ON s.id = r.store_id
		WHERE s.owner_id = $1
	`

	var average float64
	err := rr.db.QueryRow(ctx, query, ownerUserID).Scan(&average)
	if err != nil {
		rr.log.Error("Failed to compute owner average",
			zap.Error(err),
			zap.String("owner_user_id", ownerUserID.String()),
		)
		return 0, fmt.Errorf("average rating for owner %s: %w", ownerUserID.String(), err)
	}

	return average, nil
}

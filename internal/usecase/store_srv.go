package usecase

import (
	"context"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService covers the public/user surface: browsing and rating
type StoreService interface {
	ListStores(ctx context.Context, search string, userID *uuid.UUID) ([]response.PublicStoreResponse, error)
	SubmitRating(ctx context.Context, userID uuid.UUID, req *request.RateRequest) error
	MyRatings(ctx context.Context, userID uuid.UUID) ([]response.MyRatingResponse, error)
}

type storeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStoreService(repo *repository.Repository, log *zap.Logger) StoreService {
	return &storeService{
		repo: repo,
		log:  log,
	}
}

// ListStores returns every store with its aggregate rating; when the
// caller is authenticated each row also carries their own prior rating.
func (s *storeService) ListStores(ctx context.Context, search string, userID *uuid.UUID) ([]response.PublicStoreResponse, error) {
	rows, err := s.repo.Store.ListPublic(ctx, search, userID)
	if err != nil {
		s.log.Error("Failed to list stores", zap.Error(err), zap.String("search", search))
		return nil, err
	}

	stores := make([]response.PublicStoreResponse, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, response.PublicStoreToResponse(row))
	}

	return stores, nil
}

// SubmitRating creates or overwrites the caller's rating for a store;
// resubmission for the same (user, store) pair is last write wins.
func (s *storeService) SubmitRating(ctx context.Context, userID uuid.UUID, req *request.RateRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Rating validation failed", zap.Any("errors", errs))
		return validationError("%s", utils.FormatValidationErrors(errs))
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return validationError("store_id must be a valid UUID")
	}

	// 2. The rated store must exist
	store, err := s.repo.Store.FindByID(ctx, storeID)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", storeID.String()))
		return err
	}
	if store == nil {
		return notFoundError("Store not found")
	}

	// 3. Upsert
	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		StoreID: storeID,
		Rating:  req.Rating,
	}

	if err := s.repo.Rating.Upsert(ctx, rating); err != nil {
		s.log.Error("Failed to save rating",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("store_id", storeID.String()))
		return err
	}

	s.log.Info("Rating saved",
		zap.String("user_id", userID.String()),
		zap.String("store_id", storeID.String()),
		zap.Int("rating", req.Rating))

	return nil
}

func (s *storeService) MyRatings(ctx context.Context, userID uuid.UUID) ([]response.MyRatingResponse, error) {
	rows, err := s.repo.Rating.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list ratings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	ratings := make([]response.MyRatingResponse, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, response.MyRatingToResponse(row))
	}

	return ratings, nil
}

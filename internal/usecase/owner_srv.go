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

// OwnerService is always scoped to the authenticated owner's user id,
// never to a path parameter.
type OwnerService interface {
	MyStoreRaters(ctx context.Context, ownerUserID uuid.UUID) ([]response.RaterResponse, error)
	MyStoreAverage(ctx context.Context, ownerUserID uuid.UUID) (*response.AverageResponse, error)
	GetMyStore(ctx context.Context, ownerUserID uuid.UUID) (*response.StoreResponse, error)
	UpsertMyStore(ctx context.Context, ownerUserID uuid.UUID, req *request.OwnerStoreRequest) (*response.StoreResponse, bool, error)
	DeleteMyStore(ctx context.Context, ownerUserID uuid.UUID) (*response.DeleteStoreResponse, error)
}

type ownerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOwnerService(repo *repository.Repository, log *zap.Logger) OwnerService {
	return &ownerService{
		repo: repo,
		log:  log,
	}
}

// MyStoreRaters lists the users who rated the owner's store, empty when
// the owner has no store yet
func (s *ownerService) MyStoreRaters(ctx context.Context, ownerUserID uuid.UUID) ([]response.RaterResponse, error) {
	store, err := s.repo.Store.FindByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("Failed to find owner store", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, err
	}
	if store == nil {
		return []response.RaterResponse{}, nil
	}

	rows, err := s.repo.Rating.RatersByStore(ctx, store.ID)
	if err != nil {
		s.log.Error("Failed to list raters", zap.Error(err), zap.String("store_id", store.ID.String()))
		return nil, err
	}

	raters := make([]response.RaterResponse, 0, len(rows))
	for _, row := range rows {
		raters = append(raters, response.RaterToResponse(row))
	}

	return raters, nil
}

func (s *ownerService) MyStoreAverage(ctx context.Context, ownerUserID uuid.UUID) (*response.AverageResponse, error) {
	average, err := s.repo.Rating.AverageByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("Failed to compute average", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, err
	}

	return &response.AverageResponse{Average: average}, nil
}

// GetMyStore returns nil without error when the owner has no store
func (s *ownerService) GetMyStore(ctx context.Context, ownerUserID uuid.UUID) (*response.StoreResponse, error) {
	store, err := s.repo.Store.FindByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("Failed to find owner store", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, err
	}
	if store == nil {
		return nil, nil
	}

	resp := response.StoreToResponse(store)
	return &resp, nil
}

// UpsertMyStore creates the owner's single store or updates it in place.
// The second return value reports whether a store was created.
func (s *ownerService) UpsertMyStore(ctx context.Context, ownerUserID uuid.UUID, req *request.OwnerStoreRequest) (*response.StoreResponse, bool, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Store upsert validation failed", zap.Any("errors", errs))
		return nil, false, validationError("%s", utils.FormatValidationErrors(errs))
	}

	// 2. Find the existing store, if any
	existing, err := s.repo.Store.FindByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("Failed to find owner store", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, false, err
	}

	now := time.Now()

	if existing != nil {
		existing.Name = req.Name
		existing.Email = req.Email
		existing.Address = req.Address
		existing.UpdatedAt = now

		if err := s.repo.Store.Update(ctx, existing); err != nil {
			if isDuplicate(err) {
				return nil, false, conflictError("Store email already exists")
			}
			s.log.Error("Failed to update store", zap.Error(err), zap.String("store_id", existing.ID.String()))
			return nil, false, err
		}

		s.log.Info("Owner store updated",
			zap.String("store_id", existing.ID.String()),
			zap.String("owner_user_id", ownerUserID.String()))

		resp := response.StoreToResponse(existing)
		return &resp, false, nil
	}

	store := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: &ownerUserID,
	}

	// The unique index on the owner reference resolves a concurrent
	// create race: the second writer fails with a conflict.
	if err := s.repo.Store.Create(ctx, store); err != nil {
		if isDuplicate(err) {
			return nil, false, conflictError("Store email already exists")
		}
		s.log.Error("Failed to create store", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, false, err
	}

	s.log.Info("Owner store created",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_user_id", ownerUserID.String()))

	resp := response.StoreToResponse(store)
	return &resp, true, nil
}

// DeleteMyStore removes the owner's store and reports how many ratings
// were cascaded away with it
func (s *ownerService) DeleteMyStore(ctx context.Context, ownerUserID uuid.UUID) (*response.DeleteStoreResponse, error) {
	store, err := s.repo.Store.FindByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("Failed to find owner store", zap.Error(err), zap.String("owner_user_id", ownerUserID.String()))
		return nil, err
	}
	if store == nil {
		return nil, notFoundError("No store found for this owner")
	}

	ratingCount, err := s.repo.Rating.CountByStore(ctx, store.ID)
	if err != nil {
		s.log.Error("Failed to count ratings", zap.Error(err), zap.String("store_id", store.ID.String()))
		return nil, err
	}

	if err := s.repo.Store.Delete(ctx, store.ID); err != nil {
		s.log.Error("Failed to delete store", zap.Error(err), zap.String("store_id", store.ID.String()))
		return nil, err
	}

	s.log.Info("Owner store deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_user_id", ownerUserID.String()),
		zap.Int64("ratings_deleted", ratingCount))

	return &response.DeleteStoreResponse{
		Message: "Store deleted successfully",
		DeletedStore: response.DeletedStore{
			ID:             store.ID.String(),
			Name:           store.Name,
			RatingsDeleted: ratingCount,
		},
	}, nil
}
